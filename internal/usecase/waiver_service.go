package usecase

import (
	"context"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/draftwatch/draftwatch/internal/domain/gameweek"
	"github.com/draftwatch/draftwatch/internal/domain/league"
	"github.com/draftwatch/draftwatch/internal/domain/player"
	"github.com/draftwatch/draftwatch/internal/domain/transaction"
	"github.com/draftwatch/draftwatch/internal/platform/cache"
	"github.com/draftwatch/draftwatch/internal/platform/logging"
)

// WaiverService derives the waiver tracker: every accepted waiver and
// free-agent move, enriched with full-season points series for the player in
// and the player out, plus the head-to-head delta at the effective gameweek.
type WaiverService struct {
	leagues      league.Repository
	gameweeks    gameweek.Repository
	transactions transaction.Repository
	stats        *statsLoader
	logger       *logging.Logger
}

func NewWaiverService(
	leagues league.Repository,
	players player.Repository,
	gameweeks gameweek.Repository,
	transactions transaction.Repository,
	cacheStore *cache.Store,
	logger *logging.Logger,
) *WaiverService {
	if logger == nil {
		logger = logging.Default()
	}

	return &WaiverService{
		leagues:      leagues,
		gameweeks:    gameweeks,
		transactions: transactions,
		stats:        newStatsLoader(players, gameweeks, cacheStore),
		logger:       logger,
	}
}

// Track rebuilds the waiver tracker from the stored transactions snapshot.
// Records are keyed by the move's 1-based position in the feed, so a record's
// key never changes as new moves append.
func (s *WaiverService) Track(ctx context.Context, leagueID string) error {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	feed, err := s.transactions.Feed(ctx, leagueID)
	if err != nil {
		return crerr.Wrapf(err, "read transactions for league %s", leagueID)
	}
	details, err := s.leagues.Details(ctx, leagueID)
	if err != nil {
		return crerr.Wrapf(err, "read details for league %s", leagueID)
	}
	status, err := s.gameweeks.Status(ctx)
	if err != nil {
		return crerr.Wrap(err, "read game status")
	}
	completed := status.Completed()

	tracker := transaction.WaiverTracker{Info: make(map[int]transaction.WaiverRecord)}
	accepted := 0
	for i, tx := range feed.Transactions {
		if !tx.Accepted() {
			continue
		}
		accepted++

		record, err := s.buildRecord(ctx, details, tx, completed)
		if err != nil {
			return err
		}
		tracker.Info[i+1] = record
	}

	if err := s.transactions.SaveWaiverTracker(ctx, leagueID, tracker); err != nil {
		return crerr.Wrapf(err, "save waiver tracker for league %s", leagueID)
	}

	s.logger.InfoContext(ctx, "waiver tracker rebuilt",
		"league_id", leagueID,
		"accepted_moves", accepted,
		"total_moves", len(feed.Transactions),
	)

	return nil
}

func (s *WaiverService) buildRecord(
	ctx context.Context,
	details league.Details,
	tx transaction.Transaction,
	completed int,
) (transaction.WaiverRecord, error) {
	entry, _ := details.EntryByID(tx.Entry)
	record := transaction.WaiverRecord{
		Team:            entry.EntryName,
		TeamID:          tx.Entry,
		Kind:            tx.Kind,
		EffectiveGW:     tx.Event,
		PlayerOut:       tx.ElementOut,
		PlayerIn:        tx.ElementIn,
		PlayerInPoints:  []int{},
		PlayerOutPoints: []int{},
	}

	// The series always starts at gameweek 1 so consumers can index it by
	// gw-1. The 1W and relative fields are the effective gameweek only.
	for gw := 1; gw <= completed; gw++ {
		live, err := s.stats.liveFor(ctx, gw)
		if err != nil {
			return transaction.WaiverRecord{}, err
		}
		inPoints := live.PointsFor(tx.ElementIn)
		outPoints := live.PointsFor(tx.ElementOut)
		record.PlayerInPoints = append(record.PlayerInPoints, inPoints)
		record.PlayerOutPoints = append(record.PlayerOutPoints, outPoints)

		if gw == tx.Event {
			record.PlayerIn1WPerformance = inPoints
			record.PlayerOut1WPerformance = outPoints
			record.RelativePerformance = inPoints - outPoints
		}
	}

	return record, nil
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
