package player

import "strings"

// Positions use the API's element_type numbering.
const (
	PositionGoalkeeper = 1
	PositionDefender   = 2
	PositionMidfielder = 3
	PositionForward    = 4

	PositionCount = 4
)

// Player is one bootstrap element.
type Player struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"first_name"`
	SecondName string `json:"second_name"`
	Position   int    `json:"element_type"`
}

func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.SecondName)
}

// Bootstrap mirrors the bootstrap-static document, reduced to the fields the
// pipeline reads.
type Bootstrap struct {
	Elements []Player `json:"elements"`
}

func (b Bootstrap) ByID() map[int64]Player {
	out := make(map[int64]Player, len(b.Elements))
	for _, item := range b.Elements {
		out[item.ID] = item
	}
	return out
}
