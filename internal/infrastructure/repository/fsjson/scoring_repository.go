package fsjson

import (
	"context"
	"os"
	"sort"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/draftwatch/draftwatch/internal/domain/scoring"
)

type ScoringRepo struct {
	store *Store
}

func NewScoringRepo(store *Store) *ScoringRepo {
	return &ScoringRepo{store: store}
}

func (r *ScoringRepo) Picks(_ context.Context, leagueID string, teamID int64, gw int) (scoring.Picks, error) {
	var out scoring.Picks
	if err := r.store.readJSON(r.store.layout.PicksPath(leagueID, teamID, gw), &out); err != nil {
		return scoring.Picks{}, err
	}
	return out, nil
}

func (r *ScoringRepo) SavePicks(_ context.Context, leagueID string, teamID int64, gw int, picks scoring.Picks) error {
	return r.store.writeJSON(r.store.layout.PicksPath(leagueID, teamID, gw), picks)
}

func (r *ScoringRepo) Adjusted(_ context.Context, leagueID string, teamID int64, gw int) (scoring.TeamGameweek, error) {
	var out scoring.TeamGameweek
	if err := r.store.readJSON(r.store.layout.AdjustedPath(leagueID, teamID, gw), &out); err != nil {
		return scoring.TeamGameweek{}, err
	}
	return out, nil
}

func (r *ScoringRepo) SaveAdjusted(_ context.Context, leagueID string, teamID int64, gw int, stats scoring.TeamGameweek) error {
	return r.store.writeJSON(r.store.layout.AdjustedPath(leagueID, teamID, gw), stats)
}

func (r *ScoringRepo) AdjustedGameweeks(_ context.Context, leagueID string, teamID int64) ([]int, error) {
	entries, err := os.ReadDir(r.store.layout.TeamDir(leagueID, teamID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, crerr.Wrapf(err, "list team directory for team %d", teamID)
	}

	out := make([]int, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "gw_") || !strings.HasSuffix(name, "_adjusted.json") {
			continue
		}
		gw, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "gw_"), "_adjusted.json"))
		if err != nil {
			continue
		}
		out = append(out, gw)
	}
	sort.Ints(out)

	return out, nil
}
