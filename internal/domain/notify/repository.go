package notify

import "context"

// Repository describes webhook config and ledger persistence.
type Repository interface {
	// Config returns the per-league webhook configuration; the second result
	// is false when no config file exists.
	Config(ctx context.Context, leagueID string) (Config, bool, error)
	Ledger(ctx context.Context, leagueID string) (Ledger, error)
	SaveLedger(ctx context.Context, leagueID string, ledger Ledger) error
}
