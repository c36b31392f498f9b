package usecase

import (
	"testing"

	"github.com/draftwatch/draftwatch/internal/domain/trade"
	"github.com/draftwatch/draftwatch/internal/platform/cache"
	"github.com/draftwatch/draftwatch/internal/platform/logging"
)

func TestTradeService_Track(t *testing.T) {
	leagues, players, gameweeks, _ := seedScoringFixture(t)

	trades := newMemTrades()
	trades.feed["77"] = trade.Feed{Trades: []trade.Trade{
		{
			OfferedEntry:  1,
			ReceivedEntry: 2,
			Event:         2,
			State:         trade.StateProcessed,
			Items:         []trade.Item{{ElementIn: 203, ElementOut: 103}},
		},
		{
			OfferedEntry:  2,
			ReceivedEntry: 1,
			Event:         2,
			State:         trade.StateProposed,
			Items:         []trade.Item{{ElementIn: 101, ElementOut: 201}},
		},
	}}

	svc := NewTradeService(leagues, players, gameweeks, trades, cache.NewStore(0), logging.NewNop())
	if err := svc.Track(t.Context(), "77"); err != nil {
		t.Fatalf("track failed: %v", err)
	}

	tracker := trades.tracker["77"]
	if len(tracker.Info) != 1 {
		t.Fatalf("only completed trades are tracked, got %d records", len(tracker.Info))
	}

	record := tracker.Info[1]
	if record.TeamFrom != "Alpha" || record.TeamTo != "Beta" {
		t.Fatalf("record teams: from=%s to=%s", record.TeamFrom, record.TeamTo)
	}
	if record.State != trade.StateProcessed || record.EffectiveGW != 2 {
		t.Fatalf("record state/gw: %+v", record)
	}

	offered := record.PlayersOffered[103]
	if offered.PlayerName != "Mia Mid" || offered.TotalPoints != 2 {
		t.Fatalf("offered player performance: %+v", offered)
	}
	if offered.Gameweeks[2].Points != 2 {
		t.Fatalf("offered player gw 2 points: %+v", offered.Gameweeks)
	}

	received := record.PlayersReceived[203]
	if received.PlayerName != "Max Engine" || received.TotalPoints != 1 {
		t.Fatalf("received player performance: %+v", received)
	}

	if tracker.MostRecentID() != 1 {
		t.Fatalf("most recent trade id: got=%d want=1", tracker.MostRecentID())
	}
}

func TestTradeService_Track_EmptyFeed(t *testing.T) {
	leagues, players, gameweeks, _ := seedScoringFixture(t)
	trades := newMemTrades()

	svc := NewTradeService(leagues, players, gameweeks, trades, cache.NewStore(0), logging.NewNop())
	if err := svc.Track(t.Context(), "77"); err != nil {
		t.Fatalf("track failed: %v", err)
	}
	if len(trades.tracker["77"].Info) != 0 {
		t.Fatalf("expected empty tracker")
	}
}
