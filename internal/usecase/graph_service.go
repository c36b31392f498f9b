package usecase

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/draftwatch/draftwatch/internal/domain/league"
	"github.com/draftwatch/draftwatch/internal/domain/scoring"
	"github.com/draftwatch/draftwatch/internal/domain/trade"
	"github.com/draftwatch/draftwatch/internal/platform/logging"
)

// ArtifactStore persists rendered pages next to the league data.
type ArtifactStore interface {
	SaveProgressionHTML(ctx context.Context, leagueID string, html []byte) (string, error)
	SaveTradePerformanceHTML(ctx context.Context, leagueID string, html []byte) (string, error)
}

// PageOpener opens a rendered page in the system viewer.
type PageOpener interface {
	Open(ctx context.Context, path string) error
}

// GraphService renders chart pages over the derived documents: the
// league-position progression and per-trade player performance.
type GraphService struct {
	leagues   league.Repository
	scoring   scoring.Repository
	trades    trade.Repository
	artifacts ArtifactStore
	opener    PageOpener
	logger    *logging.Logger
}

func NewGraphService(
	leagues league.Repository,
	scoringRepo scoring.Repository,
	trades trade.Repository,
	artifacts ArtifactStore,
	opener PageOpener,
	logger *logging.Logger,
) *GraphService {
	if logger == nil {
		logger = logging.Default()
	}

	return &GraphService{
		leagues:   leagues,
		scoring:   scoringRepo,
		trades:    trades,
		artifacts: artifacts,
		opener:    opener,
		logger:    logger,
	}
}

// RenderProgression builds the page, writes it into the league directory,
// and returns its path. With open set, the page is also handed to the
// system viewer.
func (s *GraphService) RenderProgression(ctx context.Context, leagueID string, open bool) (string, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return "", fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	details, err := s.leagues.Details(ctx, leagueID)
	if err != nil {
		return "", crerr.Wrapf(err, "read details for league %s", leagueID)
	}

	series, maxGW, err := s.collectSeries(ctx, leagueID, details)
	if err != nil {
		return "", err
	}
	if maxGW < 1 {
		return "", fmt.Errorf(
			"%w: no adjusted stats for league %s; run the points step first",
			ErrPreconditionRequired, leagueID,
		)
	}

	page, err := renderProgressionPage(details.DisplayName(leagueID), series, maxGW, len(details.Entries))
	if err != nil {
		return "", crerr.Wrap(err, "render progression page")
	}

	path, err := s.artifacts.SaveProgressionHTML(ctx, leagueID, page)
	if err != nil {
		return "", crerr.Wrapf(err, "save progression page for league %s", leagueID)
	}
	s.logger.InfoContext(ctx, "progression page written", "league_id", leagueID, "path", path)

	if open && s.opener != nil {
		if err := s.opener.Open(ctx, path); err != nil {
			s.logger.WarnContext(ctx, "open progression page failed", "path", path, "error", err)
		}
	}

	return path, nil
}

// RenderTradePerformance builds one chart per completed trade showing the
// cumulative points of every traded player since the trade took effect,
// writes the page into the league directory, and returns its path.
func (s *GraphService) RenderTradePerformance(ctx context.Context, leagueID string, open bool) (string, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return "", fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	details, err := s.leagues.Details(ctx, leagueID)
	if err != nil {
		return "", crerr.Wrapf(err, "read details for league %s", leagueID)
	}
	tracker, err := s.trades.Tracker(ctx, leagueID)
	if err != nil {
		return "", crerr.Wrapf(err, "read trade tracker for league %s", leagueID)
	}
	if len(tracker.Info) == 0 {
		return "", fmt.Errorf(
			"%w: no tracked trades for league %s; run the trades step first",
			ErrPreconditionRequired, leagueID,
		)
	}

	page, err := renderTradePerformancePage(details.DisplayName(leagueID), tracker)
	if err != nil {
		return "", crerr.Wrap(err, "render trade performance page")
	}

	path, err := s.artifacts.SaveTradePerformanceHTML(ctx, leagueID, page)
	if err != nil {
		return "", crerr.Wrapf(err, "save trade performance page for league %s", leagueID)
	}
	s.logger.InfoContext(ctx, "trade performance page written", "league_id", leagueID, "path", path)

	if open && s.opener != nil {
		if err := s.opener.Open(ctx, path); err != nil {
			s.logger.WarnContext(ctx, "open trade performance page failed", "path", path, "error", err)
		}
	}

	return path, nil
}

type rankSeries struct {
	teamName string
	ranks    map[int]int
}

func (s *GraphService) collectSeries(ctx context.Context, leagueID string, details league.Details) ([]rankSeries, int, error) {
	series := make([]rankSeries, 0, len(details.Entries))
	maxGW := 0

	for _, teamID := range details.TeamIDs() {
		gws, err := s.scoring.AdjustedGameweeks(ctx, leagueID, teamID)
		if err != nil {
			return nil, 0, crerr.Wrapf(err, "list adjusted gameweeks for team %d", teamID)
		}

		entry, _ := details.EntryByID(teamID)
		one := rankSeries{
			teamName: entry.EntryName,
			ranks:    make(map[int]int, len(gws)),
		}
		for _, gw := range gws {
			doc, err := s.scoring.Adjusted(ctx, leagueID, teamID, gw)
			if err != nil {
				return nil, 0, crerr.Wrapf(err, "read adjusted stats for team %d gameweek %d", teamID, gw)
			}
			one.ranks[gw] = doc.LeagueRank
			if gw > maxGW {
				maxGW = gw
			}
		}
		series = append(series, one)
	}

	return series, maxGW, nil
}

// Chart geometry. The SVG is a fixed-size canvas; ranks grow downwards so
// rank 1 sits at the top.
const (
	chartWidth    = 960
	chartHeight   = 540
	chartPadLeft  = 60
	chartPadRight = 200
	chartPadTop   = 40
	chartPadBot   = 50
)

var seriesPalette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
	"#aec7e8", "#ffbb78",
}

type chartLine struct {
	Name   string
	Color  string
	Dash   string
	Points string
	LabelY float64
}

type chartAxisTick struct {
	Label string
	X     float64
	Y     float64
}

type progressionPage struct {
	Title  string
	Width  int
	Height int
	PlotX0 float64
	PlotY0 float64
	PlotX1 float64
	PlotY1 float64
	Lines  []chartLine
	XTicks []chartAxisTick
	YTicks []chartAxisTick
}

var progressionTemplate = template.Must(template.New("progression").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
h1 { font-size: 1.3em; }
.tick { font-size: 12px; fill: #444; }
.legend { font-size: 13px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<svg width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}">
<rect x="0" y="0" width="{{.Width}}" height="{{.Height}}" fill="#fff"/>
<line x1="{{.PlotX0}}" y1="{{.PlotY1}}" x2="{{.PlotX1}}" y2="{{.PlotY1}}" stroke="#888"/>
<line x1="{{.PlotX0}}" y1="{{.PlotY0}}" x2="{{.PlotX0}}" y2="{{.PlotY1}}" stroke="#888"/>
{{- range .XTicks}}
<text class="tick" x="{{.X}}" y="{{.Y}}" text-anchor="middle">{{.Label}}</text>
{{- end}}
{{- range .YTicks}}
<text class="tick" x="{{.X}}" y="{{.Y}}" text-anchor="end">{{.Label}}</text>
{{- end}}
{{- range .Lines}}
<polyline fill="none" stroke="{{.Color}}" stroke-width="2" points="{{.Points}}"/>
<text class="legend" x="{{$.PlotX1}}" y="{{.LabelY}}" dx="8" fill="{{.Color}}">{{.Name}}</text>
{{- end}}
</svg>
</body>
</html>
`))

func renderProgressionPage(title string, series []rankSeries, maxGW, teamCount int) ([]byte, error) {
	if teamCount < 1 {
		teamCount = 1
	}

	page := progressionPage{
		Title:  title + " - League Position Progression",
		Width:  chartWidth,
		Height: chartHeight,
		PlotX0: chartPadLeft,
		PlotY0: chartPadTop,
		PlotX1: chartWidth - chartPadRight,
		PlotY1: chartHeight - chartPadBot,
	}

	xFor := func(gw int) float64 {
		if maxGW <= 1 {
			return page.PlotX0
		}
		return page.PlotX0 + (page.PlotX1-page.PlotX0)*float64(gw-1)/float64(maxGW-1)
	}
	yFor := func(rank int) float64 {
		if teamCount <= 1 {
			return (page.PlotY0 + page.PlotY1) / 2
		}
		return page.PlotY0 + (page.PlotY1-page.PlotY0)*float64(rank-1)/float64(teamCount-1)
	}

	for gw := 1; gw <= maxGW; gw++ {
		page.XTicks = append(page.XTicks, chartAxisTick{
			Label: fmt.Sprintf("%d", gw),
			X:     xFor(gw),
			Y:     page.PlotY1 + 20,
		})
	}
	for rank := 1; rank <= teamCount; rank++ {
		page.YTicks = append(page.YTicks, chartAxisTick{
			Label: fmt.Sprintf("%d", rank),
			X:     page.PlotX0 - 8,
			Y:     yFor(rank) + 4,
		})
	}

	for i, one := range series {
		var points []string
		lastY := (page.PlotY0 + page.PlotY1) / 2
		for gw := 1; gw <= maxGW; gw++ {
			rank, ok := one.ranks[gw]
			if !ok {
				continue
			}
			y := yFor(rank)
			points = append(points, fmt.Sprintf("%.1f,%.1f", xFor(gw), y))
			lastY = y
		}
		page.Lines = append(page.Lines, chartLine{
			Name:   one.teamName,
			Color:  seriesPalette[i%len(seriesPalette)],
			Points: strings.Join(points, " "),
			LabelY: lastY + 4,
		})
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := progressionTemplate.Execute(buf, page); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}

// Trade charts are shorter than the progression chart since a page stacks one
// per trade.
const tradeChartHeight = 360

// Offered players keep solid lines, received players dashed, matching the
// direction each player moved.
const receivedDash = "6,4"

type tradeChart struct {
	Heading string
	Width   int
	Height  int
	PlotX0  float64
	PlotY0  float64
	PlotX1  float64
	PlotY1  float64
	MarkX   float64
	Lines   []chartLine
	XTicks  []chartAxisTick
	YTicks  []chartAxisTick
}

type tradePerformancePage struct {
	Title  string
	Charts []tradeChart
}

var tradePerformanceTemplate = template.Must(template.New("tradeperf").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
h1 { font-size: 1.3em; }
h2 { font-size: 1.05em; margin-top: 1.5em; }
.tick { font-size: 12px; fill: #444; }
.legend { font-size: 13px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{- range $chart := .Charts}}
<h2>{{.Heading}}</h2>
<svg width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}">
<rect x="0" y="0" width="{{.Width}}" height="{{.Height}}" fill="#fff"/>
<line x1="{{.PlotX0}}" y1="{{.PlotY1}}" x2="{{.PlotX1}}" y2="{{.PlotY1}}" stroke="#888"/>
<line x1="{{.PlotX0}}" y1="{{.PlotY0}}" x2="{{.PlotX0}}" y2="{{.PlotY1}}" stroke="#888"/>
<line x1="{{.MarkX}}" y1="{{.PlotY0}}" x2="{{.MarkX}}" y2="{{.PlotY1}}" stroke="#d62728" stroke-dasharray="4,4"/>
{{- range .XTicks}}
<text class="tick" x="{{.X}}" y="{{.Y}}" text-anchor="middle">{{.Label}}</text>
{{- end}}
{{- range .YTicks}}
<text class="tick" x="{{.X}}" y="{{.Y}}" text-anchor="end">{{.Label}}</text>
{{- end}}
{{- range .Lines}}
<polyline fill="none" stroke="{{.Color}}" stroke-width="2"{{if .Dash}} stroke-dasharray="{{.Dash}}"{{end}} points="{{.Points}}"/>
<text class="legend" x="{{$chart.PlotX1}}" y="{{.LabelY}}" dx="8" fill="{{.Color}}">{{.Name}}</text>
{{- end}}
</svg>
{{- end}}
</body>
</html>
`))

type tradeChartSeries struct {
	name   string
	dashed bool
	points map[int]int
}

func renderTradePerformancePage(title string, tracker trade.Tracker) ([]byte, error) {
	page := tradePerformancePage{Title: title + " - Trade Performance"}

	for _, id := range sortedKeys(tracker.Info) {
		record := tracker.Info[id]
		page.Charts = append(page.Charts, buildTradeChart(id, record))
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := tradePerformanceTemplate.Execute(buf, page); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}

func buildTradeChart(id int, record trade.Record) tradeChart {
	var series []tradeChartSeries
	for _, playerID := range sortedInt64Keys(record.PlayersOffered) {
		perf := record.PlayersOffered[playerID]
		series = append(series, tradeChartSeries{
			name:   fmt.Sprintf("%s (%s -> %s)", perf.PlayerName, record.TeamFrom, record.TeamTo),
			points: gameweekPoints(perf),
		})
	}
	for _, playerID := range sortedInt64Keys(record.PlayersReceived) {
		perf := record.PlayersReceived[playerID]
		series = append(series, tradeChartSeries{
			name:   fmt.Sprintf("%s (%s -> %s)", perf.PlayerName, record.TeamTo, record.TeamFrom),
			dashed: true,
			points: gameweekPoints(perf),
		})
	}

	minGW := record.EffectiveGW
	if minGW < 1 {
		minGW = 1
	}
	maxGW := minGW
	maxPts := 1
	for _, one := range series {
		total := 0
		for gw := minGW; gw <= highestGameweek(one.points, minGW); gw++ {
			total += one.points[gw]
			if gw > maxGW {
				maxGW = gw
			}
		}
		if total > maxPts {
			maxPts = total
		}
	}

	chart := tradeChart{
		Heading: fmt.Sprintf("Trade %d: %s <-> %s (effective GW %d)", id, record.TeamFrom, record.TeamTo, record.EffectiveGW),
		Width:   chartWidth,
		Height:  tradeChartHeight,
		PlotX0:  chartPadLeft,
		PlotY0:  chartPadTop,
		PlotX1:  chartWidth - chartPadRight,
		PlotY1:  tradeChartHeight - chartPadBot,
	}

	xFor := func(gw int) float64 {
		if maxGW <= minGW {
			return chart.PlotX0
		}
		return chart.PlotX0 + (chart.PlotX1-chart.PlotX0)*float64(gw-minGW)/float64(maxGW-minGW)
	}
	yFor := func(pts int) float64 {
		return chart.PlotY1 - (chart.PlotY1-chart.PlotY0)*float64(pts)/float64(maxPts)
	}
	chart.MarkX = xFor(minGW)

	for gw := minGW; gw <= maxGW; gw++ {
		chart.XTicks = append(chart.XTicks, chartAxisTick{
			Label: fmt.Sprintf("%d", gw),
			X:     xFor(gw),
			Y:     chart.PlotY1 + 20,
		})
	}
	step := (maxPts + 5) / 6
	if step < 1 {
		step = 1
	}
	for pts := 0; pts <= maxPts; pts += step {
		chart.YTicks = append(chart.YTicks, chartAxisTick{
			Label: fmt.Sprintf("%d", pts),
			X:     chart.PlotX0 - 8,
			Y:     yFor(pts) + 4,
		})
	}

	for i, one := range series {
		var points []string
		total := 0
		lastY := chart.PlotY1
		for gw := minGW; gw <= maxGW; gw++ {
			pts, ok := one.points[gw]
			if !ok {
				continue
			}
			total += pts
			y := yFor(total)
			points = append(points, fmt.Sprintf("%.1f,%.1f", xFor(gw), y))
			lastY = y
		}
		line := chartLine{
			Name:   one.name,
			Color:  seriesPalette[i%len(seriesPalette)],
			Points: strings.Join(points, " "),
			LabelY: lastY + 4,
		}
		if one.dashed {
			line.Dash = receivedDash
		}
		chart.Lines = append(chart.Lines, line)
	}

	return chart
}

func gameweekPoints(perf trade.PlayerPerformance) map[int]int {
	out := make(map[int]int, len(perf.Gameweeks))
	for gw, haul := range perf.Gameweeks {
		out[gw] = haul.Points
	}
	return out
}

func highestGameweek(points map[int]int, fallback int) int {
	highest := fallback
	for gw := range points {
		if gw > highest {
			highest = gw
		}
	}
	return highest
}
