package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/valyala/bytebufferpool"

	"github.com/draftwatch/draftwatch/internal/domain/gameweek"
	"github.com/draftwatch/draftwatch/internal/domain/league"
	"github.com/draftwatch/draftwatch/internal/domain/player"
	"github.com/draftwatch/draftwatch/internal/domain/scoring"
	"github.com/draftwatch/draftwatch/internal/domain/trade"
	"github.com/draftwatch/draftwatch/internal/domain/transaction"
	"github.com/draftwatch/draftwatch/internal/platform/cache"
	"github.com/draftwatch/draftwatch/internal/platform/logging"
)

// ReportService renders human-readable views over the derived documents:
// league tables, waiver reports, and trade reports. Output is plain text so
// it works both in a terminal and inside a Discord code block.
type ReportService struct {
	leagues      league.Repository
	gameweeks    gameweek.Repository
	transactions transaction.Repository
	trades       trade.Repository
	scoring      scoring.Repository
	stats        *statsLoader
	logger       *logging.Logger
}

func NewReportService(
	leagues league.Repository,
	players player.Repository,
	gameweeks gameweek.Repository,
	transactions transaction.Repository,
	trades trade.Repository,
	scoringRepo scoring.Repository,
	cacheStore *cache.Store,
	logger *logging.Logger,
) *ReportService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ReportService{
		leagues:      leagues,
		gameweeks:    gameweeks,
		transactions: transactions,
		trades:       trades,
		scoring:      scoringRepo,
		stats:        newStatsLoader(players, gameweeks, cacheStore),
		logger:       logger,
	}
}

// LeagueTable renders the standings as of a gameweek, ordered by cumulative
// points. A gw of zero means the latest completed gameweek.
func (s *ReportService) LeagueTable(ctx context.Context, leagueID string, gw int) (string, error) {
	docs, details, gw, err := s.adjustedForGameweek(ctx, leagueID, gw)
	if err != nil {
		return "", err
	}

	sort.Slice(docs, func(a, b int) bool { return docs[a].LeagueRank < docs[b].LeagueRank })

	t := table.NewWriter()
	t.SetTitle("%s - Gameweek %d", details.DisplayName(leagueID), gw)
	t.AppendHeader(table.Row{"Rank", "Team", "Manager", "GW", "Total"})
	for _, doc := range docs {
		t.AppendRow(table.Row{doc.LeagueRank, doc.TeamName, doc.Manager, doc.WeekPoints, doc.TotalPoints})
	}
	t.SetStyle(table.StyleLight)

	return t.Render(), nil
}

// OptimalLeagueTable renders the standings as if every manager had fielded
// their best legal eleven each week.
func (s *ReportService) OptimalLeagueTable(ctx context.Context, leagueID string, gw int) (string, error) {
	docs, details, gw, err := s.adjustedForGameweek(ctx, leagueID, gw)
	if err != nil {
		return "", err
	}

	sort.Slice(docs, func(a, b int) bool { return docs[a].OptimalLeagueRank < docs[b].OptimalLeagueRank })

	t := table.NewWriter()
	t.SetTitle("%s - Optimal Standings - Gameweek %d", details.DisplayName(leagueID), gw)
	t.AppendHeader(table.Row{"Rank", "Team", "GW Optimal", "Total Optimal", "Points Left On Bench"})
	for _, doc := range docs {
		t.AppendRow(table.Row{
			doc.OptimalLeagueRank,
			doc.TeamName,
			doc.OptimalPoints,
			doc.TotalOptimalPoints,
			doc.TotalOptimalPoints - doc.TotalPoints,
		})
	}
	t.SetStyle(table.StyleLight)

	return t.Render(), nil
}

// WaiverReport renders the full waiver history: one row per accepted move
// with how the swap has worked out since.
func (s *ReportService) WaiverReport(ctx context.Context, leagueID string) (string, error) {
	tracker, err := s.transactions.WaiverTracker(ctx, leagueID)
	if err != nil {
		return "", crerr.Wrapf(err, "read waiver tracker for league %s", leagueID)
	}
	details, err := s.leagues.Details(ctx, leagueID)
	if err != nil {
		return "", crerr.Wrapf(err, "read details for league %s", leagueID)
	}
	byID, err := s.stats.playersByID(ctx)
	if err != nil {
		return "", err
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fmt.Fprintf(buf, "Waiver and free agent history for %s\n\n", details.DisplayName(leagueID))

	if len(tracker.Info) == 0 {
		buf.WriteString("No accepted moves yet.\n")
		return buf.String(), nil
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Team", "Type", "GW", "In", "Out", "In Pts", "Out Pts", "Net"})
	for _, id := range sortedKeys(tracker.Info) {
		record := tracker.Info[id]
		t.AppendRow(table.Row{
			id,
			record.Team,
			moveKindLabel(record.Kind),
			record.EffectiveGW,
			byID[record.PlayerIn].FullName(),
			byID[record.PlayerOut].FullName(),
			sumSince(record.PlayerInPoints, record.EffectiveGW),
			sumSince(record.PlayerOutPoints, record.EffectiveGW),
			record.RelativePerformance,
		})
	}
	t.SetStyle(table.StyleLight)
	buf.WriteString(t.Render())
	buf.WriteString("\n")

	return buf.String(), nil
}

// TradeReport renders every completed trade with both sides' performance
// since the trade took effect.
func (s *ReportService) TradeReport(ctx context.Context, leagueID string) (string, error) {
	tracker, err := s.trades.Tracker(ctx, leagueID)
	if err != nil {
		return "", crerr.Wrapf(err, "read trade tracker for league %s", leagueID)
	}
	details, err := s.leagues.Details(ctx, leagueID)
	if err != nil {
		return "", crerr.Wrapf(err, "read details for league %s", leagueID)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fmt.Fprintf(buf, "Trade history for %s\n\n", details.DisplayName(leagueID))

	if len(tracker.Info) == 0 {
		buf.WriteString("No completed trades yet.\n")
		return buf.String(), nil
	}

	for _, id := range sortedKeys(tracker.Info) {
		record := tracker.Info[id]
		fmt.Fprintf(buf, "Trade %d: %s -> %s (effective GW %d)\n", id, record.TeamFrom, record.TeamTo, record.EffectiveGW)

		t := table.NewWriter()
		t.AppendHeader(table.Row{"Side", "Player", "Points Since"})
		for _, playerID := range sortedInt64Keys(record.PlayersOffered) {
			perf := record.PlayersOffered[playerID]
			t.AppendRow(table.Row{"Offered", perf.PlayerName, perf.TotalPoints})
		}
		for _, playerID := range sortedInt64Keys(record.PlayersReceived) {
			perf := record.PlayersReceived[playerID]
			t.AppendRow(table.Row{"Received", perf.PlayerName, perf.TotalPoints})
		}
		t.SetStyle(table.StyleLight)
		buf.WriteString(t.Render())
		buf.WriteString("\n\n")
	}

	return strings.TrimRight(buf.String(), "\n") + "\n", nil
}

// WaiverSummary renders a single tracked waiver or free-agent move as a
// short message.
func (s *ReportService) WaiverSummary(ctx context.Context, leagueID string, recordID int) (string, error) {
	tracker, err := s.transactions.WaiverTracker(ctx, leagueID)
	if err != nil {
		return "", crerr.Wrapf(err, "read waiver tracker for league %s", leagueID)
	}
	record, ok := tracker.Info[recordID]
	if !ok {
		return "", fmt.Errorf("%w: waiver record %d is not tracked", ErrNotFound, recordID)
	}
	byID, err := s.stats.playersByID(ctx)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s accepted: %s signed %s and released %s (effective GW %d)",
		moveKindLabel(record.Kind),
		record.Team,
		byID[record.PlayerIn].FullName(),
		byID[record.PlayerOut].FullName(),
		record.EffectiveGW,
	), nil
}

// TradeSummary renders a single tracked trade as a short message.
func (s *ReportService) TradeSummary(ctx context.Context, leagueID string, tradeID int) (string, error) {
	tracker, err := s.trades.Tracker(ctx, leagueID)
	if err != nil {
		return "", crerr.Wrapf(err, "read trade tracker for league %s", leagueID)
	}
	record, ok := tracker.Info[tradeID]
	if !ok {
		return "", fmt.Errorf("%w: trade %d is not tracked", ErrNotFound, tradeID)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fmt.Fprintf(buf, "Trade completed: %s -> %s, effective GW %d\n", record.TeamFrom, record.TeamTo, record.EffectiveGW)
	for _, playerID := range sortedInt64Keys(record.PlayersOffered) {
		fmt.Fprintf(buf, "  %s moves to %s\n", record.PlayersOffered[playerID].PlayerName, record.TeamTo)
	}
	for _, playerID := range sortedInt64Keys(record.PlayersReceived) {
		fmt.Fprintf(buf, "  %s moves to %s\n", record.PlayersReceived[playerID].PlayerName, record.TeamFrom)
	}

	return buf.String(), nil
}

func (s *ReportService) adjustedForGameweek(ctx context.Context, leagueID string, gw int) ([]scoring.TeamGameweek, league.Details, int, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, league.Details{}, 0, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	if gw <= 0 {
		status, err := s.gameweeks.Status(ctx)
		if err != nil {
			return nil, league.Details{}, 0, crerr.Wrap(err, "read game status")
		}
		gw = status.Completed()
	}
	if gw < 1 {
		return nil, league.Details{}, 0, fmt.Errorf("%w: no completed gameweeks yet", ErrPreconditionRequired)
	}

	details, err := s.leagues.Details(ctx, leagueID)
	if err != nil {
		return nil, league.Details{}, 0, crerr.Wrapf(err, "read details for league %s", leagueID)
	}

	docs := make([]scoring.TeamGameweek, 0, len(details.Entries))
	for _, teamID := range details.TeamIDs() {
		doc, err := s.scoring.Adjusted(ctx, leagueID, teamID, gw)
		if err != nil {
			return nil, league.Details{}, 0, fmt.Errorf(
				"%w: no adjusted stats for team %d gameweek %d; run the points step first",
				ErrPreconditionRequired, teamID, gw,
			)
		}
		docs = append(docs, doc)
	}

	return docs, details, gw, nil
}

func moveKindLabel(kind string) string {
	switch kind {
	case transaction.KindWaiver:
		return "Waiver"
	case transaction.KindFreeAgent:
		return "Free Agent"
	default:
		return kind
	}
}

// sumSince totals a points series from the effective gameweek onwards. The
// series is indexed by gameweek starting at 1.
func sumSince(points []int, effectiveGW int) int {
	start := effectiveGW - 1
	if start < 0 {
		start = 0
	}
	if start >= len(points) {
		return 0
	}
	return sum(points[start:])
}

func sortedKeys[V any](m map[int]V) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

func sortedInt64Keys(m map[int64]trade.PlayerPerformance) []int64 {
	out := make([]int64, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
