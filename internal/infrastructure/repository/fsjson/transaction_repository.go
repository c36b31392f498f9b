package fsjson

import (
	"context"
	"os"

	crerr "github.com/cockroachdb/errors"

	"github.com/draftwatch/draftwatch/internal/domain/transaction"
)

type TransactionRepo struct {
	store *Store
}

func NewTransactionRepo(store *Store) *TransactionRepo {
	return &TransactionRepo{store: store}
}

func (r *TransactionRepo) HasSnapshot(_ context.Context, leagueID string) (bool, error) {
	return fileExists(r.store.layout.TransactionsPath(leagueID))
}

func (r *TransactionRepo) ReadSnapshot(_ context.Context, leagueID string) ([]byte, error) {
	raw, err := os.ReadFile(r.store.layout.TransactionsPath(leagueID))
	if err != nil {
		return nil, crerr.Wrapf(err, "read transactions snapshot for league %s", leagueID)
	}
	return raw, nil
}

func (r *TransactionRepo) SaveSnapshotRaw(_ context.Context, leagueID string, raw []byte) error {
	return r.store.writeRaw(r.store.layout.TransactionsPath(leagueID), raw)
}

func (r *TransactionRepo) Feed(_ context.Context, leagueID string) (transaction.Feed, error) {
	var out transaction.Feed
	if err := r.store.readJSON(r.store.layout.TransactionsPath(leagueID), &out); err != nil {
		return transaction.Feed{}, err
	}
	return out, nil
}

func (r *TransactionRepo) WaiverTracker(_ context.Context, leagueID string) (transaction.WaiverTracker, error) {
	var out transaction.WaiverTracker
	if err := r.store.readJSON(r.store.layout.WaiverTrackerPath(leagueID), &out); err != nil {
		return transaction.WaiverTracker{}, err
	}
	return out, nil
}

func (r *TransactionRepo) SaveWaiverTracker(_ context.Context, leagueID string, tracker transaction.WaiverTracker) error {
	return r.store.writeJSON(r.store.layout.WaiverTrackerPath(leagueID), tracker)
}
