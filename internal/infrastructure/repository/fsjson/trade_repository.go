package fsjson

import (
	"context"

	"github.com/draftwatch/draftwatch/internal/domain/trade"
)

type TradeRepo struct {
	store *Store
}

func NewTradeRepo(store *Store) *TradeRepo {
	return &TradeRepo{store: store}
}

func (r *TradeRepo) Feed(_ context.Context, leagueID string) (trade.Feed, error) {
	var out trade.Feed
	if err := r.store.readJSON(r.store.layout.TradesPath(leagueID), &out); err != nil {
		return trade.Feed{}, err
	}
	return out, nil
}

func (r *TradeRepo) SaveFeed(_ context.Context, leagueID string, feed trade.Feed) error {
	return r.store.writeJSON(r.store.layout.TradesPath(leagueID), feed)
}

func (r *TradeRepo) Tracker(_ context.Context, leagueID string) (trade.Tracker, error) {
	var out trade.Tracker
	if err := r.store.readJSON(r.store.layout.TradeTrackerPath(leagueID), &out); err != nil {
		return trade.Tracker{}, err
	}
	return out, nil
}

func (r *TradeRepo) SaveTracker(_ context.Context, leagueID string, tracker trade.Tracker) error {
	return r.store.writeJSON(r.store.layout.TradeTrackerPath(leagueID), tracker)
}
