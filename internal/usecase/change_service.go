package usecase

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/draftwatch/draftwatch/internal/platform/logging"
)

// TransactionsFetcher fetches the league transactions document as raw bytes.
type TransactionsFetcher interface {
	TransactionsRaw(ctx context.Context, leagueID string) ([]byte, error)
}

// SnapshotReader reads the persisted transactions snapshot. The change
// detector never writes it; only the pull step does.
type SnapshotReader interface {
	HasSnapshot(ctx context.Context, leagueID string) (bool, error)
	ReadSnapshot(ctx context.Context, leagueID string) ([]byte, error)
}

// UpdateRunner re-derives all league data for a league. Implemented by the
// in-process update pipeline and, optionally, by an external hook command.
type UpdateRunner interface {
	Run(ctx context.Context, leagueID string) error
}

// ChangeService detects remote transaction changes and triggers the update
// pipeline when the fetched feed no longer matches the stored snapshot.
type ChangeService struct {
	fetcher   TransactionsFetcher
	snapshots SnapshotReader
	runner    UpdateRunner
	tempDir   string
	logger    *logging.Logger
}

func NewChangeService(
	fetcher TransactionsFetcher,
	snapshots SnapshotReader,
	runner UpdateRunner,
	tempDir string,
	logger *logging.Logger,
) *ChangeService {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &ChangeService{
		fetcher:   fetcher,
		snapshots: snapshots,
		runner:    runner,
		tempDir:   tempDir,
		logger:    logger,
	}
}

// TempPath returns where the freshly fetched feed is staged for comparison.
// The path is keyed by league only, so concurrent checks of the same league
// race on it; the tool is built for one sequential cron invocation at a time.
func (s *ChangeService) TempPath(leagueID string) string {
	return filepath.Join(s.tempDir, fmt.Sprintf("transactions_%s_temp.json", leagueID))
}

// CheckForUpdates compares the remote transactions feed against the stored
// snapshot and runs the update pipeline when they differ. The snapshot file
// itself is left untouched; the pull step inside the pipeline refreshes it.
func (s *ChangeService) CheckForUpdates(ctx context.Context, leagueID string) error {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	hasSnapshot, err := s.snapshots.HasSnapshot(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("check snapshot for league %s: %w", leagueID, err)
	}

	tempPath := s.TempPath(leagueID)
	if !hasSnapshot {
		// A leftover temp file from an earlier failed run must not survive a
		// precondition failure.
		s.removeTemp(ctx, tempPath)
		return fmt.Errorf(
			"%w: no transactions snapshot for league %s; run the update pipeline once to initialise the data directory",
			ErrPreconditionRequired, leagueID,
		)
	}

	fetched, err := s.fetcher.TransactionsRaw(ctx, leagueID)
	if err != nil {
		// The temp path is deliberately not cleaned here: whatever a previous
		// run left behind stays on disk for post-mortem inspection.
		return fmt.Errorf("fetch transactions for league %s: %w", leagueID, err)
	}
	if err := os.WriteFile(tempPath, fetched, 0o644); err != nil {
		return fmt.Errorf("stage fetched transactions at %s: %w", tempPath, err)
	}

	saved, err := s.snapshots.ReadSnapshot(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("read snapshot for league %s: %w", leagueID, err)
	}

	if bytes.Equal(fetched, saved) {
		s.logger.InfoContext(ctx, "no changes detected", "league_id", leagueID)
		s.removeTemp(ctx, tempPath)
		return nil
	}

	s.logger.InfoContext(ctx, "changes detected, updating all league data", "league_id", leagueID)
	s.removeTemp(ctx, tempPath)

	if err := s.runner.Run(ctx, leagueID); err != nil {
		return fmt.Errorf("update league %s: %w", leagueID, err)
	}

	return nil
}

func (s *ChangeService) removeTemp(ctx context.Context, tempPath string) {
	if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
		s.logger.WarnContext(ctx, "remove temp file failed", "path", tempPath, "error", err)
	}
}
