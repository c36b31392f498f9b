package usecase

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"

	"github.com/draftwatch/draftwatch/internal/domain/gameweek"
	"github.com/draftwatch/draftwatch/internal/domain/player"
	"github.com/draftwatch/draftwatch/internal/platform/cache"
)

// statsLoader serves the bootstrap index and live-gameweek documents through
// the shared cache. Scoring and both trackers walk every gameweek, so the
// same documents would otherwise be decoded once per team per service.
type statsLoader struct {
	players   player.Repository
	gameweeks gameweek.Repository
	cache     *cache.Store
}

func newStatsLoader(players player.Repository, gameweeks gameweek.Repository, cacheStore *cache.Store) *statsLoader {
	if cacheStore == nil {
		cacheStore = cache.NewStore(0)
	}
	return &statsLoader{
		players:   players,
		gameweeks: gameweeks,
		cache:     cacheStore,
	}
}

func (l *statsLoader) playersByID(ctx context.Context) (map[int64]player.Player, error) {
	value, err := l.cache.GetOrLoad(ctx, "bootstrap_by_id", func(ctx context.Context) (any, error) {
		bootstrap, err := l.players.Bootstrap(ctx)
		if err != nil {
			return nil, crerr.Wrap(err, "read bootstrap")
		}
		return bootstrap.ByID(), nil
	})
	if err != nil {
		return nil, err
	}
	return value.(map[int64]player.Player), nil
}

func (l *statsLoader) liveFor(ctx context.Context, gw int) (gameweek.Live, error) {
	value, err := l.cache.GetOrLoad(ctx, fmt.Sprintf("live_gw_%d", gw), func(ctx context.Context) (any, error) {
		live, err := l.gameweeks.Live(ctx, gw)
		if err != nil {
			return nil, crerr.Wrapf(err, "read live data for gameweek %d", gw)
		}
		return live, nil
	})
	if err != nil {
		return gameweek.Live{}, err
	}
	return value.(gameweek.Live), nil
}
