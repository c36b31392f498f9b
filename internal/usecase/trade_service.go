package usecase

import (
	"context"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/draftwatch/draftwatch/internal/domain/gameweek"
	"github.com/draftwatch/draftwatch/internal/domain/league"
	"github.com/draftwatch/draftwatch/internal/domain/player"
	"github.com/draftwatch/draftwatch/internal/domain/trade"
	"github.com/draftwatch/draftwatch/internal/platform/cache"
	"github.com/draftwatch/draftwatch/internal/platform/logging"
)

// TradeService derives the trade tracker: every completed trade with the
// per-gameweek performance of each player on both sides since the trade took
// effect.
type TradeService struct {
	leagues   league.Repository
	gameweeks gameweek.Repository
	trades    trade.Repository
	stats     *statsLoader
	logger    *logging.Logger
}

func NewTradeService(
	leagues league.Repository,
	players player.Repository,
	gameweeks gameweek.Repository,
	trades trade.Repository,
	cacheStore *cache.Store,
	logger *logging.Logger,
) *TradeService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TradeService{
		leagues:   leagues,
		gameweeks: gameweeks,
		trades:    trades,
		stats:     newStatsLoader(players, gameweeks, cacheStore),
		logger:    logger,
	}
}

// Track rebuilds the trade tracker from the stored trades snapshot. Records
// are keyed by the trade's 1-based position in the feed.
func (s *TradeService) Track(ctx context.Context, leagueID string) error {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	feed, err := s.trades.Feed(ctx, leagueID)
	if err != nil {
		return crerr.Wrapf(err, "read trades for league %s", leagueID)
	}
	details, err := s.leagues.Details(ctx, leagueID)
	if err != nil {
		return crerr.Wrapf(err, "read details for league %s", leagueID)
	}
	status, err := s.gameweeks.Status(ctx)
	if err != nil {
		return crerr.Wrap(err, "read game status")
	}
	byID, err := s.stats.playersByID(ctx)
	if err != nil {
		return err
	}
	completed := status.Completed()

	tracker := trade.Tracker{Info: make(map[int]trade.Record)}
	tracked := 0
	for i, tr := range feed.Trades {
		if !tr.Completed() {
			continue
		}
		tracked++

		record, err := s.buildRecord(ctx, details, byID, tr, completed)
		if err != nil {
			return err
		}
		tracker.Info[i+1] = record
	}

	if err := s.trades.SaveTracker(ctx, leagueID, tracker); err != nil {
		return crerr.Wrapf(err, "save trade tracker for league %s", leagueID)
	}

	s.logger.InfoContext(ctx, "trade tracker rebuilt",
		"league_id", leagueID,
		"completed_trades", tracked,
		"total_trades", len(feed.Trades),
	)

	return nil
}

func (s *TradeService) buildRecord(
	ctx context.Context,
	details league.Details,
	byID map[int64]player.Player,
	tr trade.Trade,
	completed int,
) (trade.Record, error) {
	from, _ := details.EntryByID(tr.OfferedEntry)
	to, _ := details.EntryByID(tr.ReceivedEntry)

	record := trade.Record{
		TeamFrom:        from.EntryName,
		TeamTo:          to.EntryName,
		EffectiveGW:     tr.Event,
		State:           tr.State,
		PlayersOffered:  make(map[int64]trade.PlayerPerformance, len(tr.Items)),
		PlayersReceived: make(map[int64]trade.PlayerPerformance, len(tr.Items)),
	}

	for _, item := range tr.Items {
		// element_out leaves the offering team, element_in arrives there.
		offered, err := s.performanceSince(ctx, byID, item.ElementOut, tr.Event, completed)
		if err != nil {
			return trade.Record{}, err
		}
		received, err := s.performanceSince(ctx, byID, item.ElementIn, tr.Event, completed)
		if err != nil {
			return trade.Record{}, err
		}
		record.PlayersOffered[item.ElementOut] = offered
		record.PlayersReceived[item.ElementIn] = received
	}

	return record, nil
}

func (s *TradeService) performanceSince(
	ctx context.Context,
	byID map[int64]player.Player,
	playerID int64,
	fromGW int,
	completed int,
) (trade.PlayerPerformance, error) {
	perf := trade.PlayerPerformance{
		PlayerName: byID[playerID].FullName(),
		Gameweeks:  make(map[int]trade.GameweekPoints),
	}

	for gw := fromGW; gw <= completed; gw++ {
		live, err := s.stats.liveFor(ctx, gw)
		if err != nil {
			return trade.PlayerPerformance{}, err
		}
		points := live.PointsFor(playerID)
		perf.Gameweeks[gw] = trade.GameweekPoints{Points: points}
		perf.TotalPoints += points
	}

	return perf, nil
}
