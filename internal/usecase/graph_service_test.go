package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/draftwatch/draftwatch/internal/domain/trade"
	"github.com/draftwatch/draftwatch/internal/platform/cache"
	"github.com/draftwatch/draftwatch/internal/platform/logging"
)

type memArtifacts struct {
	html []byte
	path string
}

func (m *memArtifacts) SaveProgressionHTML(_ context.Context, leagueID string, html []byte) (string, error) {
	m.html = html
	m.path = leagueID + "_data/league_positions_progression.html"
	return m.path, nil
}

func (m *memArtifacts) SaveTradePerformanceHTML(_ context.Context, leagueID string, html []byte) (string, error) {
	m.html = html
	m.path = leagueID + "_data/trade_performance.html"
	return m.path, nil
}

type stubOpener struct {
	opened []string
	err    error
}

func (s *stubOpener) Open(_ context.Context, path string) error {
	s.opened = append(s.opened, path)
	return s.err
}

func TestGraphService_RenderProgression(t *testing.T) {
	leagues, players, gameweeks, scoringRepo := seedScoringFixture(t)
	scoringSvc := NewScoringService(leagues, players, gameweeks, scoringRepo, cache.NewStore(0), logging.NewNop())
	if err := scoringSvc.ProcessPoints(t.Context(), "77"); err != nil {
		t.Fatalf("seed adjusted stats: %v", err)
	}

	artifacts := &memArtifacts{}
	opener := &stubOpener{}
	svc := NewGraphService(leagues, scoringRepo, newMemTrades(), artifacts, opener, logging.NewNop())

	path, err := svc.RenderProgression(t.Context(), "77", true)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if path != artifacts.path {
		t.Fatalf("returned path mismatch: %s vs %s", path, artifacts.path)
	}

	page := string(artifacts.html)
	for _, want := range []string{"Test League", "Alpha", "Beta", "<polyline", "<svg"} {
		if !strings.Contains(page, want) {
			t.Fatalf("page missing %q", want)
		}
	}

	if len(opener.opened) != 1 || opener.opened[0] != path {
		t.Fatalf("page should be opened once: %+v", opener.opened)
	}
}

func TestGraphService_RenderProgression_NoOpen(t *testing.T) {
	leagues, players, gameweeks, scoringRepo := seedScoringFixture(t)
	scoringSvc := NewScoringService(leagues, players, gameweeks, scoringRepo, cache.NewStore(0), logging.NewNop())
	if err := scoringSvc.ProcessPoints(t.Context(), "77"); err != nil {
		t.Fatalf("seed adjusted stats: %v", err)
	}

	opener := &stubOpener{}
	svc := NewGraphService(leagues, scoringRepo, newMemTrades(), &memArtifacts{}, opener, logging.NewNop())

	if _, err := svc.RenderProgression(t.Context(), "77", false); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(opener.opened) != 0 {
		t.Fatalf("viewer must not open when disabled")
	}
}

func TestGraphService_RenderProgression_MissingAdjustedStats(t *testing.T) {
	leagues, _, _, _ := seedScoringFixture(t)
	svc := NewGraphService(leagues, newMemScoring(), newMemTrades(), &memArtifacts{}, &stubOpener{}, logging.NewNop())

	_, err := svc.RenderProgression(t.Context(), "77", false)
	if !errors.Is(err, ErrPreconditionRequired) {
		t.Fatalf("expected ErrPreconditionRequired, got %v", err)
	}
}

// A failing viewer must not fail the render; the page is already on disk.
func TestGraphService_RenderProgression_OpenFailureIgnored(t *testing.T) {
	leagues, players, gameweeks, scoringRepo := seedScoringFixture(t)
	scoringSvc := NewScoringService(leagues, players, gameweeks, scoringRepo, cache.NewStore(0), logging.NewNop())
	if err := scoringSvc.ProcessPoints(t.Context(), "77"); err != nil {
		t.Fatalf("seed adjusted stats: %v", err)
	}

	opener := &stubOpener{err: errors.New("no display")}
	svc := NewGraphService(leagues, scoringRepo, newMemTrades(), &memArtifacts{}, opener, logging.NewNop())

	if _, err := svc.RenderProgression(t.Context(), "77", true); err != nil {
		t.Fatalf("viewer failure must not fail the render: %v", err)
	}
}

func TestGraphService_RenderTradePerformance(t *testing.T) {
	leagues, _, _, scoringRepo := seedScoringFixture(t)

	trades := newMemTrades()
	trades.tracker["77"] = trade.Tracker{Info: map[int]trade.Record{
		1: {
			TeamFrom:    "Alpha",
			TeamTo:      "Beta",
			EffectiveGW: 2,
			PlayersOffered: map[int64]trade.PlayerPerformance{
				103: {PlayerName: "Mia Mid", TotalPoints: 2, Gameweeks: map[int]trade.GameweekPoints{2: {Points: 2}}},
			},
			PlayersReceived: map[int64]trade.PlayerPerformance{
				203: {PlayerName: "Max Engine", TotalPoints: 1, Gameweeks: map[int]trade.GameweekPoints{2: {Points: 1}}},
			},
		},
	}}

	artifacts := &memArtifacts{}
	opener := &stubOpener{}
	svc := NewGraphService(leagues, scoringRepo, trades, artifacts, opener, logging.NewNop())

	path, err := svc.RenderTradePerformance(t.Context(), "77", true)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if path != artifacts.path {
		t.Fatalf("returned path mismatch: %s vs %s", path, artifacts.path)
	}

	page := string(artifacts.html)
	for _, want := range []string{"Test League", "Trade 1", "Mia Mid", "Max Engine", "<svg", "<polyline"} {
		if !strings.Contains(page, want) {
			t.Fatalf("page missing %q", want)
		}
	}
	// Received players are drawn dashed to show the direction they moved.
	if !strings.Contains(page, "stroke-dasharray=\"6,4\"") {
		t.Fatalf("received player line should be dashed:\n%s", page)
	}

	if len(opener.opened) != 1 || opener.opened[0] != path {
		t.Fatalf("page should be opened once: %+v", opener.opened)
	}
}

func TestGraphService_RenderTradePerformance_NoTrackedTrades(t *testing.T) {
	leagues, _, _, scoringRepo := seedScoringFixture(t)
	svc := NewGraphService(leagues, scoringRepo, newMemTrades(), &memArtifacts{}, &stubOpener{}, logging.NewNop())

	_, err := svc.RenderTradePerformance(t.Context(), "77", false)
	if !errors.Is(err, ErrPreconditionRequired) {
		t.Fatalf("expected ErrPreconditionRequired, got %v", err)
	}
}
