package transaction

import "context"

// Repository describes transactions snapshot persistence.
//
// The snapshot is stored byte-for-byte as fetched: the change detector
// compares a fresh fetch against it, so any re-encoding on either side would
// produce false positives.
type Repository interface {
	HasSnapshot(ctx context.Context, leagueID string) (bool, error)
	ReadSnapshot(ctx context.Context, leagueID string) ([]byte, error)
	SaveSnapshotRaw(ctx context.Context, leagueID string, raw []byte) error
	Feed(ctx context.Context, leagueID string) (Feed, error)

	WaiverTracker(ctx context.Context, leagueID string) (WaiverTracker, error)
	SaveWaiverTracker(ctx context.Context, leagueID string, tracker WaiverTracker) error
}
