package scoring

import "github.com/draftwatch/draftwatch/internal/domain/player"

// A squad has 15 picks; positions 1-11 start, 12-15 are the bench.
const StartingSlots = 11

// Picks mirrors one entry/{team}/event/{gw} document.
type Picks struct {
	Picks []Pick `json:"picks"`
}

type Pick struct {
	Element  int64 `json:"element"`
	Position int   `json:"position"`
}

func (p Pick) Starts() bool {
	return p.Position <= StartingSlots
}

// PlayerLine is one pick enriched with identity and gameweek points.
type PlayerLine struct {
	Element      int64  `json:"element"`
	Position     int    `json:"position"`
	FirstName    string `json:"first_name"`
	SecondName   string `json:"second_name"`
	TruePosition int    `json:"true_position"`
	Points       int    `json:"points"`
	Benched      bool   `json:"benched"`
}

// CumulativePlayerStat accumulates a player's contribution to a team across
// the season, split by started and benched appearances.
type CumulativePlayerStat struct {
	FirstName          string `json:"first_name"`
	SecondName         string `json:"second_name"`
	TotalPoints        int    `json:"total_points"`
	TotalBenchedPoints int    `json:"total_benched_points"`
}

// TeamGameweek is the adjusted per-team, per-gameweek document the rest of
// the pipeline (tables, graphs, reports) is built on. Field names follow the
// on-disk format, which predates this implementation.
type TeamGameweek struct {
	TeamID             int64                          `json:"team_id"`
	TeamName           string                         `json:"team_name"`
	Manager            string                         `json:"team_captain"`
	Gameweek           int                            `json:"gameweek"`
	Formation          [player.PositionCount]int      `json:"team_formation"`
	MaxFormation       [player.PositionCount]int      `json:"max_formation"`
	MinFormation       [player.PositionCount]int      `json:"min_formation"`
	WeekPoints         int                            `json:"week_points"`
	BenchedPoints      int                            `json:"benched_points"`
	OptimalPoints      int                            `json:"optimal_points"`
	LeagueRank         int                            `json:"league_rank"`
	OptimalLeagueRank  int                            `json:"optimal_league_rank"`
	TotalPoints        int                            `json:"total_points"`
	TotalOptimalPoints int                            `json:"total_optimal_points"`
	PlayerLines        []PlayerLine                   `json:"player_stats"`
	CumulativeStats    map[int64]CumulativePlayerStat `json:"total_player_stats"`
}

// MaxByPosition and MinByPosition bound how many players of each position a
// starting eleven may field, indexed by element_type - 1.
var (
	MaxByPosition = [player.PositionCount]int{1, 5, 5, 3}
	MinByPosition = [player.PositionCount]int{1, 3, 2, 1}
)
