package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/draftwatch/draftwatch/internal/domain/gameweek"
	"github.com/draftwatch/draftwatch/internal/domain/league"
	"github.com/draftwatch/draftwatch/internal/domain/player"
	"github.com/draftwatch/draftwatch/internal/domain/scoring"
	"github.com/draftwatch/draftwatch/internal/platform/cache"
	"github.com/draftwatch/draftwatch/internal/platform/logging"
)

// ScoringService derives the adjusted per-team, per-gameweek documents from
// the raw picks and live data the pull step stored.
type ScoringService struct {
	leagues   league.Repository
	gameweeks gameweek.Repository
	scoring   scoring.Repository
	stats     *statsLoader
	logger    *logging.Logger
}

func NewScoringService(
	leagues league.Repository,
	players player.Repository,
	gameweeks gameweek.Repository,
	scoringRepo scoring.Repository,
	cacheStore *cache.Store,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScoringService{
		leagues:   leagues,
		gameweeks: gameweeks,
		scoring:   scoringRepo,
		stats:     newStatsLoader(players, gameweeks, cacheStore),
		logger:    logger,
	}
}

// ProcessPoints rebuilds the adjusted documents for every team and every
// completed gameweek. The rebuild is sequential by gameweek because each
// document carries running totals from the one before it; a full rebuild
// also means a late stat correction in an old gameweek propagates forward.
func (s *ScoringService) ProcessPoints(ctx context.Context, leagueID string) error {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	status, err := s.gameweeks.Status(ctx)
	if err != nil {
		return crerr.Wrap(err, "read game status")
	}
	completed := status.Completed()
	if completed < 1 {
		s.logger.InfoContext(ctx, "no completed gameweeks yet, nothing to score", "league_id", leagueID)
		return nil
	}

	details, err := s.leagues.Details(ctx, leagueID)
	if err != nil {
		return crerr.Wrapf(err, "read details for league %s", leagueID)
	}
	byID, err := s.stats.playersByID(ctx)
	if err != nil {
		return err
	}

	teamIDs := details.TeamIDs()
	previous := make(map[int64]scoring.TeamGameweek, len(teamIDs))

	for gw := 1; gw <= completed; gw++ {
		live, err := s.stats.liveFor(ctx, gw)
		if err != nil {
			return err
		}

		current := make([]scoring.TeamGameweek, 0, len(teamIDs))
		for _, teamID := range teamIDs {
			doc, err := s.buildTeamGameweek(ctx, leagueID, details, byID, live, teamID, gw, previous[teamID])
			if err != nil {
				return err
			}
			current = append(current, doc)
		}

		rankTeams(current)

		for _, doc := range current {
			if err := s.scoring.SaveAdjusted(ctx, leagueID, doc.TeamID, gw, doc); err != nil {
				return crerr.Wrapf(err, "save adjusted stats for team %d gameweek %d", doc.TeamID, gw)
			}
			previous[doc.TeamID] = doc
		}

		s.logger.DebugContext(ctx, "gameweek scored", "league_id", leagueID, "gameweek", gw)
	}

	s.logger.InfoContext(ctx, "scoring complete",
		"league_id", leagueID,
		"teams", len(teamIDs),
		"completed_gameweeks", completed,
	)

	return nil
}

func (s *ScoringService) buildTeamGameweek(
	ctx context.Context,
	leagueID string,
	details league.Details,
	byID map[int64]player.Player,
	live gameweek.Live,
	teamID int64,
	gw int,
	prev scoring.TeamGameweek,
) (scoring.TeamGameweek, error) {
	picks, err := s.scoring.Picks(ctx, leagueID, teamID, gw)
	if err != nil {
		return scoring.TeamGameweek{}, crerr.Wrapf(err, "read picks for team %d gameweek %d", teamID, gw)
	}

	entry, _ := details.EntryByID(teamID)
	doc := scoring.TeamGameweek{
		TeamID:       teamID,
		TeamName:     entry.EntryName,
		Manager:      entry.ManagerName(),
		Gameweek:     gw,
		MaxFormation: scoring.MaxByPosition,
		MinFormation: scoring.MinByPosition,
		PlayerLines:  make([]scoring.PlayerLine, 0, len(picks.Picks)),
	}

	for _, pick := range picks.Picks {
		info := byID[pick.Element]
		line := scoring.PlayerLine{
			Element:      pick.Element,
			Position:     pick.Position,
			FirstName:    info.FirstName,
			SecondName:   info.SecondName,
			TruePosition: info.Position,
			Points:       live.PointsFor(pick.Element),
			Benched:      !pick.Starts(),
		}
		doc.PlayerLines = append(doc.PlayerLines, line)

		if line.Benched {
			doc.BenchedPoints += line.Points
		} else {
			doc.WeekPoints += line.Points
			if pos := line.TruePosition - 1; pos >= 0 && pos < player.PositionCount {
				doc.Formation[pos]++
			}
		}
	}

	doc.OptimalPoints = scoring.OptimalPoints(doc.PlayerLines)
	doc.TotalPoints = prev.TotalPoints + doc.WeekPoints
	doc.TotalOptimalPoints = prev.TotalOptimalPoints + doc.OptimalPoints
	doc.CumulativeStats = accumulateStats(prev.CumulativeStats, doc.PlayerLines)

	return doc, nil
}

// accumulateStats folds one gameweek's lines into the running per-player
// totals. Players keep their slot once seen even after leaving the squad, so
// the season history of departed players survives.
func accumulateStats(prev map[int64]scoring.CumulativePlayerStat, lines []scoring.PlayerLine) map[int64]scoring.CumulativePlayerStat {
	out := make(map[int64]scoring.CumulativePlayerStat, len(prev)+len(lines))
	for id, stat := range prev {
		out[id] = stat
	}

	for _, line := range lines {
		stat, ok := out[line.Element]
		if !ok {
			stat = scoring.CumulativePlayerStat{
				FirstName:  line.FirstName,
				SecondName: line.SecondName,
			}
		}
		if line.Benched {
			stat.TotalBenchedPoints += line.Points
		} else {
			stat.TotalPoints += line.Points
		}
		out[line.Element] = stat
	}

	return out
}

// rankTeams assigns league ranks for one gameweek, by cumulative points and
// cumulative optimal points. Ties share a rank.
func rankTeams(docs []scoring.TeamGameweek) {
	assign := func(points func(scoring.TeamGameweek) int, set func(*scoring.TeamGameweek, int)) {
		order := make([]int, len(docs))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return points(docs[order[a]]) > points(docs[order[b]])
		})

		rank := 0
		lastPoints := 0
		for pos, idx := range order {
			p := points(docs[idx])
			if pos == 0 || p != lastPoints {
				rank = pos + 1
				lastPoints = p
			}
			set(&docs[idx], rank)
		}
	}

	assign(
		func(d scoring.TeamGameweek) int { return d.TotalPoints },
		func(d *scoring.TeamGameweek, r int) { d.LeagueRank = r },
	)
	assign(
		func(d scoring.TeamGameweek) int { return d.TotalOptimalPoints },
		func(d *scoring.TeamGameweek, r int) { d.OptimalLeagueRank = r },
	)
}
