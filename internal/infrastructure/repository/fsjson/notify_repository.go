package fsjson

import (
	"context"

	"github.com/draftwatch/draftwatch/internal/domain/notify"
)

type NotifyRepo struct {
	store *Store
}

func NewNotifyRepo(store *Store) *NotifyRepo {
	return &NotifyRepo{store: store}
}

func (r *NotifyRepo) Config(_ context.Context, leagueID string) (notify.Config, bool, error) {
	path := r.store.layout.DiscordConfigPath(leagueID)
	exists, err := fileExists(path)
	if err != nil {
		return notify.Config{}, false, err
	}
	if !exists {
		return notify.Config{}, false, nil
	}

	var out notify.Config
	if err := r.store.readJSON(path, &out); err != nil {
		return notify.Config{}, false, err
	}
	return out, true, nil
}

func (r *NotifyRepo) Ledger(_ context.Context, leagueID string) (notify.Ledger, error) {
	path := r.store.layout.SentUpdatesPath(leagueID)
	exists, err := fileExists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		// First run for this league: nothing has been delivered yet.
		return notify.NewLedger(), nil
	}

	var out notify.Ledger
	if err := r.store.readJSON(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *NotifyRepo) SaveLedger(_ context.Context, leagueID string, ledger notify.Ledger) error {
	return r.store.writeJSON(r.store.layout.SentUpdatesPath(leagueID), ledger)
}
