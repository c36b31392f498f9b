package fsjson

import "context"

// ArtifactRepo persists rendered pages that sit alongside the JSON documents:
// the position-progression and trade-performance charts.
type ArtifactRepo struct {
	store *Store
}

func NewArtifactRepo(store *Store) *ArtifactRepo {
	return &ArtifactRepo{store: store}
}

// SaveProgressionHTML writes the rendered page and returns its path so the
// caller can hand it to the system viewer.
func (r *ArtifactRepo) SaveProgressionHTML(_ context.Context, leagueID string, html []byte) (string, error) {
	path := r.store.layout.ProgressionHTMLPath(leagueID)
	if err := r.store.writeRaw(path, html); err != nil {
		return "", err
	}
	return path, nil
}

// SaveTradePerformanceHTML writes the rendered trade charts page and returns
// its path.
func (r *ArtifactRepo) SaveTradePerformanceHTML(_ context.Context, leagueID string, html []byte) (string, error) {
	path := r.store.layout.TradePerformanceHTMLPath(leagueID)
	if err := r.store.writeRaw(path, html); err != nil {
		return "", err
	}
	return path, nil
}
