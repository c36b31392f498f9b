package scoring

import "context"

// Repository describes pick and adjusted-stat persistence per team and
// gameweek.
type Repository interface {
	Picks(ctx context.Context, leagueID string, teamID int64, gw int) (Picks, error)
	SavePicks(ctx context.Context, leagueID string, teamID int64, gw int, picks Picks) error

	Adjusted(ctx context.Context, leagueID string, teamID int64, gw int) (TeamGameweek, error)
	SaveAdjusted(ctx context.Context, leagueID string, teamID int64, gw int, stats TeamGameweek) error
	// AdjustedGameweeks lists the gameweeks a team has adjusted data for, in
	// ascending order.
	AdjustedGameweeks(ctx context.Context, leagueID string, teamID int64) ([]int, error)
}
