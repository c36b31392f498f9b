package fsjson

import (
	"context"

	"github.com/draftwatch/draftwatch/internal/domain/gameweek"
)

type GameweekRepo struct {
	store *Store
}

func NewGameweekRepo(store *Store) *GameweekRepo {
	return &GameweekRepo{store: store}
}

func (r *GameweekRepo) Status(_ context.Context) (gameweek.Status, error) {
	var out gameweek.Status
	if err := r.store.readJSON(r.store.layout.GamePath(), &out); err != nil {
		return gameweek.Status{}, err
	}
	return out, nil
}

func (r *GameweekRepo) SaveStatus(_ context.Context, status gameweek.Status) error {
	return r.store.writeJSON(r.store.layout.GamePath(), status)
}

func (r *GameweekRepo) Live(_ context.Context, gw int) (gameweek.Live, error) {
	var out gameweek.Live
	if err := r.store.readJSON(r.store.layout.LivePath(gw), &out); err != nil {
		return gameweek.Live{}, err
	}
	return out, nil
}

func (r *GameweekRepo) SaveLive(_ context.Context, gw int, live gameweek.Live) error {
	return r.store.writeJSON(r.store.layout.LivePath(gw), live)
}
