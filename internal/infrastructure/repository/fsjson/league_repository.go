package fsjson

import (
	"context"

	"github.com/draftwatch/draftwatch/internal/domain/league"
)

type LeagueRepo struct {
	store *Store
}

func NewLeagueRepo(store *Store) *LeagueRepo {
	return &LeagueRepo{store: store}
}

func (r *LeagueRepo) Details(_ context.Context, leagueID string) (league.Details, error) {
	var out league.Details
	if err := r.store.readJSON(r.store.layout.DetailsPath(leagueID), &out); err != nil {
		return league.Details{}, err
	}
	return out, nil
}

func (r *LeagueRepo) SaveDetails(_ context.Context, leagueID string, details league.Details) error {
	return r.store.writeJSON(r.store.layout.DetailsPath(leagueID), details)
}

func (r *LeagueRepo) SaveElementStatusRaw(_ context.Context, leagueID string, raw []byte) error {
	return r.store.writeRaw(r.store.layout.ElementStatusPath(leagueID), raw)
}
