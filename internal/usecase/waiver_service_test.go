package usecase

import (
	"errors"
	"testing"

	"github.com/draftwatch/draftwatch/internal/domain/transaction"
	"github.com/draftwatch/draftwatch/internal/platform/cache"
	"github.com/draftwatch/draftwatch/internal/platform/logging"
)

func TestWaiverService_Track(t *testing.T) {
	leagues, players, gameweeks, _ := seedScoringFixture(t)

	transactions := newMemTransactions()
	transactions.feed["77"] = transaction.Feed{Transactions: []transaction.Transaction{
		{Entry: 1, Kind: transaction.KindWaiver, Event: 1, ElementIn: 103, ElementOut: 102, Result: transaction.ResultAccepted},
		{Entry: 2, Kind: transaction.KindFreeAgent, Event: 2, ElementIn: 202, ElementOut: 203, Result: "r"},
		{Entry: 2, Kind: transaction.KindFreeAgent, Event: 2, ElementIn: 201, ElementOut: 203, Result: transaction.ResultAccepted},
	}}

	svc := NewWaiverService(leagues, players, gameweeks, transactions, cache.NewStore(0), logging.NewNop())
	if err := svc.Track(t.Context(), "77"); err != nil {
		t.Fatalf("track failed: %v", err)
	}

	tracker := transactions.tracker["77"]
	if len(tracker.Info) != 2 {
		t.Fatalf("expected 2 tracked moves, got %d", len(tracker.Info))
	}
	if _, ok := tracker.Info[2]; ok {
		t.Fatalf("rejected moves must not be tracked")
	}

	first := tracker.Info[1]
	if first.Team != "Alpha" || first.TeamID != 1 {
		t.Fatalf("record 1 team: %+v", first)
	}
	if len(first.PlayerInPoints) != 2 || first.PlayerInPoints[0] != 8 || first.PlayerInPoints[1] != 2 {
		t.Fatalf("record 1 player-in points: %v", first.PlayerInPoints)
	}
	if len(first.PlayerOutPoints) != 2 || first.PlayerOutPoints[0] != 5 || first.PlayerOutPoints[1] != 0 {
		t.Fatalf("record 1 player-out points: %v", first.PlayerOutPoints)
	}
	if first.PlayerIn1WPerformance != 8 || first.PlayerOut1WPerformance != 5 {
		t.Fatalf("record 1 first-week performance: in=%d out=%d", first.PlayerIn1WPerformance, first.PlayerOut1WPerformance)
	}
	// Relative performance is the effective-gameweek delta only, not the
	// summed series: 8-5, not (8+2)-(5+0).
	if first.RelativePerformance != 3 {
		t.Fatalf("record 1 relative performance: got=%d want=3", first.RelativePerformance)
	}

	// Record keys are feed positions, so the third entry keeps key 3 even
	// though the second was rejected.
	third := tracker.Info[3]
	if third.Kind != transaction.KindFreeAgent || third.EffectiveGW != 2 {
		t.Fatalf("record 3: %+v", third)
	}
	// The series covers every completed gameweek from 1, even for moves that
	// took effect later, so consumers can index it by gw-1.
	if len(third.PlayerInPoints) != 2 || third.PlayerInPoints[0] != 1 || third.PlayerInPoints[1] != 5 {
		t.Fatalf("record 3 player-in points: %v", third.PlayerInPoints)
	}
	if len(third.PlayerOutPoints) != 2 || third.PlayerOutPoints[0] != 10 || third.PlayerOutPoints[1] != 1 {
		t.Fatalf("record 3 player-out points: %v", third.PlayerOutPoints)
	}
	if third.PlayerIn1WPerformance != 5 || third.PlayerOut1WPerformance != 1 {
		t.Fatalf("record 3 first-week performance: in=%d out=%d", third.PlayerIn1WPerformance, third.PlayerOut1WPerformance)
	}
	if third.RelativePerformance != 4 {
		t.Fatalf("record 3 relative performance: got=%d want=4", third.RelativePerformance)
	}
}

func TestWaiverService_Track_EmptyLeagueID(t *testing.T) {
	leagues, players, gameweeks, _ := seedScoringFixture(t)
	svc := NewWaiverService(leagues, players, gameweeks, newMemTransactions(), cache.NewStore(0), logging.NewNop())

	if err := svc.Track(t.Context(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestWaiverService_Track_EmptyFeed(t *testing.T) {
	leagues, players, gameweeks, _ := seedScoringFixture(t)
	transactions := newMemTransactions()

	svc := NewWaiverService(leagues, players, gameweeks, transactions, cache.NewStore(0), logging.NewNop())
	if err := svc.Track(t.Context(), "77"); err != nil {
		t.Fatalf("track failed: %v", err)
	}

	tracker := transactions.tracker["77"]
	if len(tracker.Info) != 0 {
		t.Fatalf("expected empty tracker, got %d records", len(tracker.Info))
	}
}
