package scoring

import (
	"sort"

	"github.com/draftwatch/draftwatch/internal/domain/player"
)

// LegalFormations enumerates every starting-eleven shape the game allows,
// as [goalkeepers, defenders, midfielders, forwards].
var LegalFormations = [][player.PositionCount]int{
	{1, 3, 5, 2},
	{1, 3, 4, 3},
	{1, 4, 5, 1},
	{1, 4, 4, 2},
	{1, 4, 3, 3},
	{1, 5, 4, 1},
	{1, 5, 3, 2},
	{1, 5, 2, 3},
}

// OptimalPoints returns the maximum points the squad could have scored with
// perfect selection: for each legal formation, take the top scorers per
// position and keep the best total.
func OptimalPoints(lines []PlayerLine) int {
	var squad [player.PositionCount][]int
	for _, line := range lines {
		pos := line.TruePosition - 1
		if pos < 0 || pos >= player.PositionCount {
			continue
		}
		squad[pos] = append(squad[pos], line.Points)
	}

	for pos := range squad {
		sort.Sort(sort.Reverse(sort.IntSlice(squad[pos])))
	}

	best := 0
	for _, formation := range LegalFormations {
		total := 0
		for pos, take := range formation {
			if take > len(squad[pos]) {
				take = len(squad[pos])
			}
			for _, points := range squad[pos][:take] {
				total += points
			}
		}
		if total > best {
			best = total
		}
	}

	return best
}
