package transaction

// Result and kind codes as served by the draft API.
const (
	ResultAccepted = "a"

	KindWaiver    = "w"
	KindFreeAgent = "f"
)

// Feed mirrors the league transactions document.
type Feed struct {
	Transactions []Transaction `json:"transactions"`
}

// Transaction is a single waiver or free-agent move.
type Transaction struct {
	Entry      int64  `json:"entry"`
	Kind       string `json:"kind"`
	Event      int    `json:"event"`
	ElementIn  int64  `json:"element_in"`
	ElementOut int64  `json:"element_out"`
	Result     string `json:"result"`
}

func (t Transaction) Accepted() bool {
	return t.Result == ResultAccepted
}

// WaiverRecord is one accepted move enriched with performance tracking. The
// points slices are indexed by gameweek starting at 1.
type WaiverRecord struct {
	Team                   string `json:"team"`
	TeamID                 int64  `json:"team_id"`
	Kind                   string `json:"kind"`
	EffectiveGW            int    `json:"effective_gw"`
	PlayerOut              int64  `json:"player_out"`
	PlayerIn               int64  `json:"player_in"`
	PlayerInPoints         []int  `json:"player_in_points"`
	PlayerOutPoints        []int  `json:"player_out_points"`
	PlayerIn1WPerformance  int    `json:"player_in_1w_performance"`
	PlayerOut1WPerformance int    `json:"player_out_1w_performance"`
	RelativePerformance    int    `json:"relative_performance"`
}

// WaiverTracker is the derived waiver history document. Keys are 1-based
// positions of the transaction in the feed, so records stay identifiable
// across regenerations.
type WaiverTracker struct {
	Info map[int]WaiverRecord `json:"waiver_info"`
}
