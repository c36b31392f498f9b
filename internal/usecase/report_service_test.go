package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/draftwatch/draftwatch/internal/domain/transaction"
	"github.com/draftwatch/draftwatch/internal/platform/cache"
	"github.com/draftwatch/draftwatch/internal/platform/logging"
)

func TestReportService_LeagueTable(t *testing.T) {
	leagues, players, gameweeks, scoringRepo := seedScoringFixture(t)
	scoringSvc := NewScoringService(leagues, players, gameweeks, scoringRepo, cache.NewStore(0), logging.NewNop())
	if err := scoringSvc.ProcessPoints(t.Context(), "77"); err != nil {
		t.Fatalf("seed adjusted stats: %v", err)
	}

	transactions := newMemTransactions()
	trades := newMemTrades()
	svc := NewReportService(leagues, players, gameweeks, transactions, trades, scoringRepo, cache.NewStore(0), logging.NewNop())

	out, err := svc.LeagueTable(t.Context(), "77", 1)
	if err != nil {
		t.Fatalf("render table: %v", err)
	}
	if !strings.Contains(out, "Test League - Gameweek 1") {
		t.Fatalf("missing title: %s", out)
	}
	alpha := strings.Index(out, "Alpha")
	beta := strings.Index(out, "Beta")
	if alpha < 0 || beta < 0 || alpha > beta {
		t.Fatalf("teams not listed in rank order:\n%s", out)
	}
	if !strings.Contains(out, "Ann Archer") {
		t.Fatalf("manager name missing:\n%s", out)
	}
}

func TestReportService_LeagueTable_DefaultsToLatestCompleted(t *testing.T) {
	leagues, players, gameweeks, scoringRepo := seedScoringFixture(t)
	scoringSvc := NewScoringService(leagues, players, gameweeks, scoringRepo, cache.NewStore(0), logging.NewNop())
	if err := scoringSvc.ProcessPoints(t.Context(), "77"); err != nil {
		t.Fatalf("seed adjusted stats: %v", err)
	}

	svc := NewReportService(leagues, players, gameweeks, newMemTransactions(), newMemTrades(), scoringRepo, cache.NewStore(0), logging.NewNop())

	out, err := svc.LeagueTable(t.Context(), "77", 0)
	if err != nil {
		t.Fatalf("render table: %v", err)
	}
	if !strings.Contains(out, "Gameweek 2") {
		t.Fatalf("expected latest completed gameweek in title:\n%s", out)
	}
}

func TestReportService_LeagueTable_MissingAdjustedStats(t *testing.T) {
	leagues, players, gameweeks, _ := seedScoringFixture(t)
	svc := NewReportService(leagues, players, gameweeks, newMemTransactions(), newMemTrades(), newMemScoring(), cache.NewStore(0), logging.NewNop())

	_, err := svc.LeagueTable(t.Context(), "77", 1)
	if !errors.Is(err, ErrPreconditionRequired) {
		t.Fatalf("expected ErrPreconditionRequired, got %v", err)
	}
}

func TestReportService_WaiverReport(t *testing.T) {
	leagues, players, gameweeks, _ := seedScoringFixture(t)
	transactions := newMemTransactions()
	transactions.tracker["77"] = transaction.WaiverTracker{Info: map[int]transaction.WaiverRecord{
		1: {
			Team:                "Alpha",
			Kind:                transaction.KindWaiver,
			EffectiveGW:         1,
			PlayerIn:            103,
			PlayerOut:           102,
			PlayerInPoints:      []int{8, 2},
			PlayerOutPoints:     []int{5, 0},
			RelativePerformance: 3,
		},
	}}

	svc := NewReportService(leagues, players, gameweeks, transactions, newMemTrades(), newMemScoring(), cache.NewStore(0), logging.NewNop())

	out, err := svc.WaiverReport(t.Context(), "77")
	if err != nil {
		t.Fatalf("render report: %v", err)
	}
	for _, want := range []string{"Test League", "Alpha", "Waiver", "Mia Mid", "Dan Wall"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestReportService_WaiverSummary(t *testing.T) {
	leagues, players, gameweeks, _ := seedScoringFixture(t)
	transactions := newMemTransactions()
	transactions.tracker["77"] = transaction.WaiverTracker{Info: map[int]transaction.WaiverRecord{
		2: {
			Team:        "Beta",
			Kind:        transaction.KindFreeAgent,
			EffectiveGW: 2,
			PlayerIn:    201,
			PlayerOut:   203,
		},
	}}

	svc := NewReportService(leagues, players, gameweeks, transactions, newMemTrades(), newMemScoring(), cache.NewStore(0), logging.NewNop())

	out, err := svc.WaiverSummary(t.Context(), "77", 2)
	if err != nil {
		t.Fatalf("render summary: %v", err)
	}
	for _, want := range []string{"Free Agent", "Beta", "Kit Gloves", "Max Engine", "GW 2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q: %s", want, out)
		}
	}

	if _, err := svc.WaiverSummary(t.Context(), "77", 9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for untracked record, got %v", err)
	}
}
