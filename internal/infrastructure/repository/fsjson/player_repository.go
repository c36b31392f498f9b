package fsjson

import (
	"context"

	"github.com/draftwatch/draftwatch/internal/domain/player"
)

type PlayerRepo struct {
	store *Store
}

func NewPlayerRepo(store *Store) *PlayerRepo {
	return &PlayerRepo{store: store}
}

func (r *PlayerRepo) Bootstrap(_ context.Context) (player.Bootstrap, error) {
	var out player.Bootstrap
	if err := r.store.readJSON(r.store.layout.BootstrapPath(), &out); err != nil {
		return player.Bootstrap{}, err
	}
	return out, nil
}

func (r *PlayerRepo) SaveBootstrap(_ context.Context, bootstrap player.Bootstrap) error {
	return r.store.writeJSON(r.store.layout.BootstrapPath(), bootstrap)
}
