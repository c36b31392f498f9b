package trade

import "context"

// Repository describes trade snapshot and tracker persistence.
type Repository interface {
	Feed(ctx context.Context, leagueID string) (Feed, error)
	SaveFeed(ctx context.Context, leagueID string, feed Feed) error

	Tracker(ctx context.Context, leagueID string) (Tracker, error)
	SaveTracker(ctx context.Context, leagueID string, tracker Tracker) error
}
