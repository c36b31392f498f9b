package gameweek

import "context"

// Repository describes game status and live data persistence needs.
type Repository interface {
	Status(ctx context.Context) (Status, error)
	SaveStatus(ctx context.Context, status Status) error
	Live(ctx context.Context, gw int) (Live, error)
	SaveLive(ctx context.Context, gw int, live Live) error
}
