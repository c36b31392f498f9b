package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/draftwatch/draftwatch/internal/domain/gameweek"
	"github.com/draftwatch/draftwatch/internal/domain/league"
	"github.com/draftwatch/draftwatch/internal/domain/notify"
	"github.com/draftwatch/draftwatch/internal/domain/player"
	"github.com/draftwatch/draftwatch/internal/domain/scoring"
	"github.com/draftwatch/draftwatch/internal/domain/trade"
	"github.com/draftwatch/draftwatch/internal/domain/transaction"
)

// In-memory repositories shared by the service tests.

type memLeagues struct {
	details       map[string]league.Details
	elementStatus map[string][]byte
}

func newMemLeagues() *memLeagues {
	return &memLeagues{
		details:       make(map[string]league.Details),
		elementStatus: make(map[string][]byte),
	}
}

func (m *memLeagues) Details(_ context.Context, leagueID string) (league.Details, error) {
	d, ok := m.details[leagueID]
	if !ok {
		return league.Details{}, fmt.Errorf("%w: details for league %s", ErrNotFound, leagueID)
	}
	return d, nil
}

func (m *memLeagues) SaveDetails(_ context.Context, leagueID string, details league.Details) error {
	m.details[leagueID] = details
	return nil
}

func (m *memLeagues) SaveElementStatusRaw(_ context.Context, leagueID string, raw []byte) error {
	m.elementStatus[leagueID] = raw
	return nil
}

type memPlayers struct {
	bootstrap player.Bootstrap
}

func (m *memPlayers) Bootstrap(_ context.Context) (player.Bootstrap, error) {
	return m.bootstrap, nil
}

func (m *memPlayers) SaveBootstrap(_ context.Context, bootstrap player.Bootstrap) error {
	m.bootstrap = bootstrap
	return nil
}

type memGameweeks struct {
	status gameweek.Status
	live   map[int]gameweek.Live
}

func newMemGameweeks(status gameweek.Status) *memGameweeks {
	return &memGameweeks{
		status: status,
		live:   make(map[int]gameweek.Live),
	}
}

func (m *memGameweeks) Status(_ context.Context) (gameweek.Status, error) {
	return m.status, nil
}

func (m *memGameweeks) SaveStatus(_ context.Context, status gameweek.Status) error {
	m.status = status
	return nil
}

func (m *memGameweeks) Live(_ context.Context, gw int) (gameweek.Live, error) {
	live, ok := m.live[gw]
	if !ok {
		return gameweek.Live{}, fmt.Errorf("%w: live data for gameweek %d", ErrNotFound, gw)
	}
	return live, nil
}

func (m *memGameweeks) SaveLive(_ context.Context, gw int, live gameweek.Live) error {
	m.live[gw] = live
	return nil
}

type memTransactions struct {
	snapshot map[string][]byte
	feed     map[string]transaction.Feed
	tracker  map[string]transaction.WaiverTracker
}

func newMemTransactions() *memTransactions {
	return &memTransactions{
		snapshot: make(map[string][]byte),
		feed:     make(map[string]transaction.Feed),
		tracker:  make(map[string]transaction.WaiverTracker),
	}
}

func (m *memTransactions) HasSnapshot(_ context.Context, leagueID string) (bool, error) {
	_, ok := m.snapshot[leagueID]
	return ok, nil
}

func (m *memTransactions) ReadSnapshot(_ context.Context, leagueID string) ([]byte, error) {
	raw, ok := m.snapshot[leagueID]
	if !ok {
		return nil, fmt.Errorf("%w: transactions snapshot for league %s", ErrNotFound, leagueID)
	}
	return raw, nil
}

func (m *memTransactions) SaveSnapshotRaw(_ context.Context, leagueID string, raw []byte) error {
	m.snapshot[leagueID] = raw
	return nil
}

func (m *memTransactions) Feed(_ context.Context, leagueID string) (transaction.Feed, error) {
	return m.feed[leagueID], nil
}

func (m *memTransactions) WaiverTracker(_ context.Context, leagueID string) (transaction.WaiverTracker, error) {
	tracker, ok := m.tracker[leagueID]
	if !ok {
		return transaction.WaiverTracker{Info: map[int]transaction.WaiverRecord{}}, nil
	}
	return tracker, nil
}

func (m *memTransactions) SaveWaiverTracker(_ context.Context, leagueID string, tracker transaction.WaiverTracker) error {
	m.tracker[leagueID] = tracker
	return nil
}

type memTrades struct {
	feed    map[string]trade.Feed
	tracker map[string]trade.Tracker
}

func newMemTrades() *memTrades {
	return &memTrades{
		feed:    make(map[string]trade.Feed),
		tracker: make(map[string]trade.Tracker),
	}
}

func (m *memTrades) Feed(_ context.Context, leagueID string) (trade.Feed, error) {
	return m.feed[leagueID], nil
}

func (m *memTrades) SaveFeed(_ context.Context, leagueID string, feed trade.Feed) error {
	m.feed[leagueID] = feed
	return nil
}

func (m *memTrades) Tracker(_ context.Context, leagueID string) (trade.Tracker, error) {
	tracker, ok := m.tracker[leagueID]
	if !ok {
		return trade.Tracker{Info: map[int]trade.Record{}}, nil
	}
	return tracker, nil
}

func (m *memTrades) SaveTracker(_ context.Context, leagueID string, tracker trade.Tracker) error {
	m.tracker[leagueID] = tracker
	return nil
}

type memScoring struct {
	picks    map[string]scoring.Picks
	adjusted map[string]scoring.TeamGameweek
}

func newMemScoring() *memScoring {
	return &memScoring{
		picks:    make(map[string]scoring.Picks),
		adjusted: make(map[string]scoring.TeamGameweek),
	}
}

func teamGWKey(leagueID string, teamID int64, gw int) string {
	return fmt.Sprintf("%s/%d/%d", leagueID, teamID, gw)
}

func (m *memScoring) Picks(_ context.Context, leagueID string, teamID int64, gw int) (scoring.Picks, error) {
	picks, ok := m.picks[teamGWKey(leagueID, teamID, gw)]
	if !ok {
		return scoring.Picks{}, fmt.Errorf("%w: picks for team %d gameweek %d", ErrNotFound, teamID, gw)
	}
	return picks, nil
}

func (m *memScoring) SavePicks(_ context.Context, leagueID string, teamID int64, gw int, picks scoring.Picks) error {
	m.picks[teamGWKey(leagueID, teamID, gw)] = picks
	return nil
}

func (m *memScoring) Adjusted(_ context.Context, leagueID string, teamID int64, gw int) (scoring.TeamGameweek, error) {
	doc, ok := m.adjusted[teamGWKey(leagueID, teamID, gw)]
	if !ok {
		return scoring.TeamGameweek{}, fmt.Errorf("%w: adjusted stats for team %d gameweek %d", ErrNotFound, teamID, gw)
	}
	return doc, nil
}

func (m *memScoring) SaveAdjusted(_ context.Context, leagueID string, teamID int64, gw int, stats scoring.TeamGameweek) error {
	m.adjusted[teamGWKey(leagueID, teamID, gw)] = stats
	return nil
}

func (m *memScoring) AdjustedGameweeks(_ context.Context, leagueID string, teamID int64) ([]int, error) {
	var out []int
	for _, doc := range m.adjusted {
		if doc.TeamID == teamID {
			out = append(out, doc.Gameweek)
		}
	}
	sort.Ints(out)
	return out, nil
}

type memNotify struct {
	cfg    notify.Config
	found  bool
	ledger notify.Ledger
	saves  int
}

func (m *memNotify) Config(_ context.Context, _ string) (notify.Config, bool, error) {
	return m.cfg, m.found, nil
}

func (m *memNotify) Ledger(_ context.Context, _ string) (notify.Ledger, error) {
	if m.ledger == nil {
		return notify.NewLedger(), nil
	}
	return m.ledger, nil
}

func (m *memNotify) SaveLedger(_ context.Context, _ string, ledger notify.Ledger) error {
	m.ledger = ledger
	m.saves++
	return nil
}
