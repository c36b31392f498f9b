package notify

// Webhook kinds, used both as config keys and as ledger keys.
const (
	KindTable          = "table_webhook"
	KindTableOptimal   = "table_optimal_webhook"
	KindWaiverReport   = "waiver_report_webhook"
	KindTradeTracker   = "trade_tracker_webhook"
	KindWaiverTracker  = "waiver_tracker_webhook"
	KindFreeAgentAlert = "trade_free_agent_alert"
)

// Kinds lists every supported webhook kind.
var Kinds = []string{
	KindTable,
	KindTableOptimal,
	KindWaiverReport,
	KindTradeTracker,
	KindWaiverTracker,
	KindFreeAgentAlert,
}

// Config holds per-league Discord webhook URLs. Empty entries disable the
// corresponding update kind.
type Config struct {
	TableWebhook         string `json:"table_webhook" validate:"omitempty,url"`
	TableOptimalWebhook  string `json:"table_optimal_webhook" validate:"omitempty,url"`
	WaiverReportWebhook  string `json:"waiver_report_webhook" validate:"omitempty,url"`
	TradeTrackerWebhook  string `json:"trade_tracker_webhook" validate:"omitempty,url"`
	WaiverTrackerWebhook string `json:"waiver_tracker_webhook" validate:"omitempty,url"`
	FreeAgentAlert       string `json:"trade_free_agent_alert" validate:"omitempty,url"`
}

// URLFor returns the configured webhook URL for a kind, empty when disabled.
func (c Config) URLFor(kind string) string {
	switch kind {
	case KindTable:
		return c.TableWebhook
	case KindTableOptimal:
		return c.TableOptimalWebhook
	case KindWaiverReport:
		return c.WaiverReportWebhook
	case KindTradeTracker:
		return c.TradeTrackerWebhook
	case KindWaiverTracker:
		return c.WaiverTrackerWebhook
	case KindFreeAgentAlert:
		return c.FreeAgentAlert
	default:
		return ""
	}
}

// Enabled reports whether at least one webhook is configured.
func (c Config) Enabled() bool {
	for _, kind := range Kinds {
		if c.URLFor(kind) != "" {
			return true
		}
	}
	return false
}

// Ledger records, per webhook kind, the update ids (gameweeks or trade ids)
// that have already been delivered. It survives partial failures: an id is
// only appended after a successful send.
type Ledger map[string][]int

// LastSent returns the highest delivered id for a kind, zero when nothing
// has been sent yet.
func (l Ledger) LastSent(kind string) int {
	last := 0
	for _, id := range l[kind] {
		if id > last {
			last = id
		}
	}
	return last
}

// MarkSent appends an id to a kind's history.
func (l Ledger) MarkSent(kind string, id int) {
	l[kind] = append(l[kind], id)
}

// NewLedger builds an empty ledger with a slot for every kind, matching the
// structure written on first use.
func NewLedger() Ledger {
	out := make(Ledger, len(Kinds))
	for _, kind := range Kinds {
		out[kind] = []int{}
	}
	return out
}
