package trade

// Trade states as served by the draft API.
const (
	StateProposed  = "o"
	StateAccepted  = "a"
	StateProcessed = "p"
)

// Feed mirrors the league trades document.
type Feed struct {
	Trades []Trade `json:"trades"`
}

// Trade is an offer between two entries, possibly covering several players.
type Trade struct {
	OfferedEntry  int64  `json:"offered_entry"`
	ReceivedEntry int64  `json:"received_entry"`
	Event         int    `json:"event"`
	State         string `json:"state"`
	Items         []Item `json:"tradeitem_set"`
}

type Item struct {
	ElementIn  int64 `json:"element_in"`
	ElementOut int64 `json:"element_out"`
}

// Completed reports whether the trade went through and should be tracked.
func (t Trade) Completed() bool {
	return t.State == StateAccepted || t.State == StateProcessed
}

// GameweekPoints is a player's haul in a single gameweek.
type GameweekPoints struct {
	Points int `json:"points"`
}

// PlayerPerformance tracks one traded player from the trade's effective
// gameweek onwards.
type PlayerPerformance struct {
	PlayerName  string                 `json:"player_name"`
	TotalPoints int                    `json:"total_points"`
	Gameweeks   map[int]GameweekPoints `json:"gameweeks"`
}

// Record is one completed trade with per-player performance on both sides.
type Record struct {
	TeamFrom        string                      `json:"team_from"`
	TeamTo          string                      `json:"team_to"`
	EffectiveGW     int                         `json:"effective_gw"`
	State           string                      `json:"state"`
	PlayersOffered  map[int64]PlayerPerformance `json:"players_offered"`
	PlayersReceived map[int64]PlayerPerformance `json:"players_received"`
}

// Tracker is the derived trade history document, keyed by the trade's
// 1-based position in the feed.
type Tracker struct {
	Info map[int]Record `json:"trade_info"`
}

// MostRecentID returns the highest tracked trade id, zero when none exist.
func (t Tracker) MostRecentID() int {
	most := 0
	for id := range t.Info {
		if id > most {
			most = id
		}
	}
	return most
}
