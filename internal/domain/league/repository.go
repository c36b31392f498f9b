package league

import "context"

// Repository describes league snapshot persistence needs from use cases.
type Repository interface {
	Details(ctx context.Context, leagueID string) (Details, error)
	SaveDetails(ctx context.Context, leagueID string, details Details) error
	// SaveElementStatusRaw persists the element-status document verbatim.
	// Nothing downstream decodes it yet; it is kept alongside the other
	// snapshots for completeness.
	SaveElementStatusRaw(ctx context.Context, leagueID string, raw []byte) error
}
