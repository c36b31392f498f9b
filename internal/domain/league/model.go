package league

import (
	"sort"
	"strings"
)

// Details mirrors the draft API league details document.
type Details struct {
	League  Info    `json:"league"`
	Entries []Entry `json:"league_entries"`
}

// Info identifies the league itself.
type Info struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Entry is one manager's team inside the league.
type Entry struct {
	EntryID         int64  `json:"entry_id"`
	EntryName       string `json:"entry_name"`
	PlayerFirstName string `json:"player_first_name"`
	PlayerLastName  string `json:"player_last_name"`
}

func (e Entry) ManagerName() string {
	return strings.TrimSpace(e.PlayerFirstName + " " + e.PlayerLastName)
}

// TeamIDs returns every entry id in the league in ascending order so callers
// iterate deterministically.
func (d Details) TeamIDs() []int64 {
	out := make([]int64, 0, len(d.Entries))
	for _, entry := range d.Entries {
		out = append(out, entry.EntryID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

func (d Details) EntryByID(teamID int64) (Entry, bool) {
	for _, entry := range d.Entries {
		if entry.EntryID == teamID {
			return entry, true
		}
	}
	return Entry{}, false
}

// DisplayName falls back to a generic label when the details document carries
// no league name.
func (d Details) DisplayName(leagueID string) string {
	name := strings.TrimSpace(d.League.Name)
	if name != "" {
		return name
	}
	return "League " + leagueID
}
