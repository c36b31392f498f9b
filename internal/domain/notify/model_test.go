package notify

import "testing"

func TestLedgerLastSent(t *testing.T) {
	ledger := NewLedger()
	if ledger.LastSent(KindTable) != 0 {
		t.Fatalf("fresh ledger should report zero")
	}

	ledger.MarkSent(KindTable, 1)
	ledger.MarkSent(KindTable, 3)
	ledger.MarkSent(KindTable, 2)
	if got := ledger.LastSent(KindTable); got != 3 {
		t.Fatalf("last sent: got=%d want=3", got)
	}
	if ledger.LastSent(KindTradeTracker) != 0 {
		t.Fatalf("other kinds must be unaffected")
	}
}

func TestConfigURLForAndEnabled(t *testing.T) {
	var cfg Config
	if cfg.Enabled() {
		t.Fatalf("empty config is disabled")
	}

	cfg.WaiverReportWebhook = "https://discord.com/api/webhooks/1/abc"
	if !cfg.Enabled() {
		t.Fatalf("config with one webhook is enabled")
	}
	if cfg.URLFor(KindWaiverReport) != cfg.WaiverReportWebhook {
		t.Fatalf("url lookup failed")
	}
	if cfg.URLFor(KindTable) != "" {
		t.Fatalf("unset kinds must be empty")
	}
	if cfg.URLFor("bogus") != "" {
		t.Fatalf("unknown kinds must be empty")
	}
}
