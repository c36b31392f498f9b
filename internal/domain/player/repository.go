package player

import "context"

// Repository describes bootstrap persistence needs from use cases.
type Repository interface {
	Bootstrap(ctx context.Context) (Bootstrap, error)
	SaveBootstrap(ctx context.Context, bootstrap Bootstrap) error
}
