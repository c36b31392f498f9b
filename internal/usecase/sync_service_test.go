package usecase

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/draftwatch/draftwatch/internal/domain/gameweek"
	"github.com/draftwatch/draftwatch/internal/domain/league"
	"github.com/draftwatch/draftwatch/internal/domain/player"
	"github.com/draftwatch/draftwatch/internal/domain/scoring"
	"github.com/draftwatch/draftwatch/internal/domain/trade"
	"github.com/draftwatch/draftwatch/internal/domain/transaction"
	"github.com/draftwatch/draftwatch/internal/platform/logging"
)

type stubAPI struct {
	mu         sync.Mutex
	details    league.Details
	rawTx      []byte
	pickErr    error
	pickCalls  int
	liveCalls  int
	completed  int
	inProgress bool
}

func (s *stubAPI) BootstrapStatic(_ context.Context) (player.Bootstrap, error) {
	return player.Bootstrap{Elements: []player.Player{{ID: 1}}}, nil
}

func (s *stubAPI) Game(_ context.Context) (gameweek.Status, error) {
	return gameweek.Status{CurrentEvent: s.completed, CurrentEventFinished: !s.inProgress}, nil
}

func (s *stubAPI) LeagueDetails(_ context.Context, _ string) (league.Details, error) {
	return s.details, nil
}

func (s *stubAPI) ElementStatus(_ context.Context, _ string) ([]byte, error) {
	return []byte(`{"element_status":[]}`), nil
}

func (s *stubAPI) Transactions(_ context.Context, _ string) (transaction.Feed, []byte, error) {
	return transaction.Feed{}, s.rawTx, nil
}

func (s *stubAPI) Trades(_ context.Context, _ string) (trade.Feed, error) {
	return trade.Feed{}, nil
}

func (s *stubAPI) EventLive(_ context.Context, _ int) (gameweek.Live, error) {
	s.mu.Lock()
	s.liveCalls++
	s.mu.Unlock()
	return gameweek.Live{}, nil
}

func (s *stubAPI) EntryEvent(_ context.Context, _ int64, _ int) (scoring.Picks, error) {
	s.mu.Lock()
	s.pickCalls++
	s.mu.Unlock()
	if s.pickErr != nil {
		return scoring.Picks{}, s.pickErr
	}
	return scoring.Picks{Picks: []scoring.Pick{{Element: 1, Position: 1}}}, nil
}

func newSyncFixture(api *stubAPI) (*SyncService, *memLeagues, *memTransactions, *memScoring) {
	leagues := newMemLeagues()
	transactions := newMemTransactions()
	scoringRepo := newMemScoring()
	svc := NewSyncService(
		api, leagues, &memPlayers{}, newMemGameweeks(gameweek.Status{}),
		transactions, newMemTrades(), scoringRepo, 2, logging.NewNop(),
	)
	return svc, leagues, transactions, scoringRepo
}

func TestSyncService_Pull(t *testing.T) {
	rawTx := []byte("{\"transactions\": []}\n")
	api := &stubAPI{
		completed: 3,
		rawTx:     rawTx,
		details: league.Details{Entries: []league.Entry{
			{EntryID: 1, EntryName: "Alpha"},
			{EntryID: 2, EntryName: "Beta"},
		}},
	}
	svc, leagues, transactions, scoringRepo := newSyncFixture(api)

	if err := svc.Pull(t.Context(), "77"); err != nil {
		t.Fatalf("pull failed: %v", err)
	}

	if _, ok := leagues.details["77"]; !ok {
		t.Fatalf("details not saved")
	}
	// The snapshot must be the exact bytes the API served; the change
	// detector depends on that.
	if !bytes.Equal(transactions.snapshot["77"], rawTx) {
		t.Fatalf("snapshot altered: %q", transactions.snapshot["77"])
	}
	if api.liveCalls != 3 {
		t.Fatalf("expected 3 live fetches, got %d", api.liveCalls)
	}
	if api.pickCalls != 6 {
		t.Fatalf("expected 2 teams x 3 gameweeks pick fetches, got %d", api.pickCalls)
	}
	if len(scoringRepo.picks) != 6 {
		t.Fatalf("expected 6 pick documents, got %d", len(scoringRepo.picks))
	}
}

func TestSyncService_Pull_NoCompletedGameweeks(t *testing.T) {
	api := &stubAPI{
		completed:  1,
		inProgress: true,
		rawTx:      []byte("{}"),
		details:    league.Details{Entries: []league.Entry{{EntryID: 1}}},
	}
	svc, _, _, scoringRepo := newSyncFixture(api)

	if err := svc.Pull(t.Context(), "77"); err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if api.liveCalls != 0 || api.pickCalls != 0 {
		t.Fatalf("live and pick history must wait for a completed gameweek: live=%d picks=%d", api.liveCalls, api.pickCalls)
	}
	if len(scoringRepo.picks) != 0 {
		t.Fatalf("no pick documents expected")
	}
}

func TestSyncService_Pull_PickFetchFailure(t *testing.T) {
	pickErr := errors.New("entry fetch failed")
	api := &stubAPI{
		completed: 2,
		rawTx:     []byte("{}"),
		pickErr:   pickErr,
		details:   league.Details{Entries: []league.Entry{{EntryID: 1}}},
	}
	svc, _, _, _ := newSyncFixture(api)

	if err := svc.Pull(t.Context(), "77"); !errors.Is(err, pickErr) {
		t.Fatalf("expected pick fetch error, got %v", err)
	}
}

func TestSyncService_Pull_EmptyLeagueID(t *testing.T) {
	svc, _, _, _ := newSyncFixture(&stubAPI{})
	if err := svc.Pull(t.Context(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
