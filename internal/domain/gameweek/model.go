package gameweek

import "strconv"

// Status mirrors the game document describing where the season currently is.
type Status struct {
	CurrentEvent         int  `json:"current_event"`
	CurrentEventFinished bool `json:"current_event_finished"`
	NextEvent            int  `json:"next_event"`
}

// Completed returns the newest gameweek whose results are final. An
// in-progress gameweek does not count until the API marks it finished.
func (s Status) Completed() int {
	if !s.CurrentEventFinished {
		return s.CurrentEvent - 1
	}
	return s.CurrentEvent
}

// Live mirrors one event/{gw}/live document. Element keys are stringified
// player ids, as served by the API.
type Live struct {
	Elements map[string]LiveElement `json:"elements"`
}

type LiveElement struct {
	Stats LiveStats `json:"stats"`
}

type LiveStats struct {
	TotalPoints int `json:"total_points"`
	Minutes     int `json:"minutes"`
}

// PointsFor returns the gameweek points for a player, zero when the player
// did not exist in that gameweek (mid-season signings).
func (l Live) PointsFor(playerID int64) int {
	element, ok := l.Elements[strconv.FormatInt(playerID, 10)]
	if !ok {
		return 0
	}
	return element.Stats.TotalPoints
}

func (l Live) Has(playerID int64) bool {
	_, ok := l.Elements[strconv.FormatInt(playerID, 10)]
	return ok
}
