package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	crerr "github.com/cockroachdb/errors"
	ants "github.com/panjf2000/ants/v2"

	"github.com/draftwatch/draftwatch/internal/domain/gameweek"
	"github.com/draftwatch/draftwatch/internal/domain/league"
	"github.com/draftwatch/draftwatch/internal/domain/player"
	"github.com/draftwatch/draftwatch/internal/domain/scoring"
	"github.com/draftwatch/draftwatch/internal/domain/trade"
	"github.com/draftwatch/draftwatch/internal/domain/transaction"
	"github.com/draftwatch/draftwatch/internal/platform/logging"
)

// LeagueFetcher is the slice of the draft API the pull step needs.
type LeagueFetcher interface {
	BootstrapStatic(ctx context.Context) (player.Bootstrap, error)
	Game(ctx context.Context) (gameweek.Status, error)
	LeagueDetails(ctx context.Context, leagueID string) (league.Details, error)
	ElementStatus(ctx context.Context, leagueID string) ([]byte, error)
	Transactions(ctx context.Context, leagueID string) (transaction.Feed, []byte, error)
	Trades(ctx context.Context, leagueID string) (trade.Feed, error)
	EventLive(ctx context.Context, gw int) (gameweek.Live, error)
	EntryEvent(ctx context.Context, teamID int64, gw int) (scoring.Picks, error)
}

const defaultPullWorkers = 4

// SyncService refreshes every raw document from the draft API: the global
// catalogue, the league snapshots, and per-team picks for each completed
// gameweek.
type SyncService struct {
	api          LeagueFetcher
	leagues      league.Repository
	players      player.Repository
	gameweeks    gameweek.Repository
	transactions transaction.Repository
	trades       trade.Repository
	scoring      scoring.Repository
	maxWorkers   int
	logger       *logging.Logger
}

func NewSyncService(
	api LeagueFetcher,
	leagues league.Repository,
	players player.Repository,
	gameweeks gameweek.Repository,
	transactions transaction.Repository,
	trades trade.Repository,
	scoringRepo scoring.Repository,
	maxWorkers int,
	logger *logging.Logger,
) *SyncService {
	if maxWorkers <= 0 {
		maxWorkers = defaultPullWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &SyncService{
		api:          api,
		leagues:      leagues,
		players:      players,
		gameweeks:    gameweeks,
		transactions: transactions,
		trades:       trades,
		scoring:      scoringRepo,
		maxWorkers:   maxWorkers,
		logger:       logger,
	}
}

// Pull fetches and persists every document for a league. The global and
// league-level documents come first, sequentially; the per-team pick history
// fans out over a bounded worker pool because it is by far the largest batch
// (teams x gameweeks requests).
func (s *SyncService) Pull(ctx context.Context, leagueID string) error {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	bootstrap, err := s.api.BootstrapStatic(ctx)
	if err != nil {
		return crerr.Wrap(err, "pull bootstrap")
	}
	if err := s.players.SaveBootstrap(ctx, bootstrap); err != nil {
		return crerr.Wrap(err, "save bootstrap")
	}

	status, err := s.api.Game(ctx)
	if err != nil {
		return crerr.Wrap(err, "pull game status")
	}
	if err := s.gameweeks.SaveStatus(ctx, status); err != nil {
		return crerr.Wrap(err, "save game status")
	}

	details, err := s.api.LeagueDetails(ctx, leagueID)
	if err != nil {
		return crerr.Wrapf(err, "pull details for league %s", leagueID)
	}
	if err := s.leagues.SaveDetails(ctx, leagueID, details); err != nil {
		return crerr.Wrapf(err, "save details for league %s", leagueID)
	}

	elementStatus, err := s.api.ElementStatus(ctx, leagueID)
	if err != nil {
		return crerr.Wrapf(err, "pull element-status for league %s", leagueID)
	}
	if err := s.leagues.SaveElementStatusRaw(ctx, leagueID, elementStatus); err != nil {
		return crerr.Wrapf(err, "save element-status for league %s", leagueID)
	}

	// The transactions snapshot is written byte-for-byte as fetched; the
	// change detector compares raw bytes against it on the next check.
	_, rawTransactions, err := s.api.Transactions(ctx, leagueID)
	if err != nil {
		return crerr.Wrapf(err, "pull transactions for league %s", leagueID)
	}
	if err := s.transactions.SaveSnapshotRaw(ctx, leagueID, rawTransactions); err != nil {
		return crerr.Wrapf(err, "save transactions for league %s", leagueID)
	}

	tradeFeed, err := s.api.Trades(ctx, leagueID)
	if err != nil {
		return crerr.Wrapf(err, "pull trades for league %s", leagueID)
	}
	if err := s.trades.SaveFeed(ctx, leagueID, tradeFeed); err != nil {
		return crerr.Wrapf(err, "save trades for league %s", leagueID)
	}

	completed := status.Completed()
	if completed < 1 {
		s.logger.InfoContext(ctx, "no completed gameweeks yet, skipping live and pick history", "league_id", leagueID)
		return nil
	}

	for gw := 1; gw <= completed; gw++ {
		live, err := s.api.EventLive(ctx, gw)
		if err != nil {
			return crerr.Wrapf(err, "pull live data for gameweek %d", gw)
		}
		if err := s.gameweeks.SaveLive(ctx, gw, live); err != nil {
			return crerr.Wrapf(err, "save live data for gameweek %d", gw)
		}
	}

	if err := s.pullPicks(ctx, leagueID, details.TeamIDs(), completed); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "pull complete",
		"league_id", leagueID,
		"teams", len(details.Entries),
		"completed_gameweeks", completed,
	)

	return nil
}

func (s *SyncService) pullPicks(ctx context.Context, leagueID string, teamIDs []int64, completed int) error {
	pool, err := ants.NewPool(s.maxWorkers)
	if err != nil {
		return crerr.Wrap(err, "create pull worker pool")
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	record := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for _, teamID := range teamIDs {
		for gw := 1; gw <= completed; gw++ {
			teamID, gw := teamID, gw
			wg.Add(1)
			submitErr := pool.Submit(func() {
				defer wg.Done()
				picks, err := s.api.EntryEvent(ctx, teamID, gw)
				if err != nil {
					record(crerr.Wrapf(err, "pull picks for team %d gameweek %d", teamID, gw))
					return
				}
				if err := s.scoring.SavePicks(ctx, leagueID, teamID, gw, picks); err != nil {
					record(crerr.Wrapf(err, "save picks for team %d gameweek %d", teamID, gw))
				}
			})
			if submitErr != nil {
				wg.Done()
				record(crerr.Wrap(submitErr, "submit pick fetch"))
			}
		}
	}
	wg.Wait()

	return firstErr
}
