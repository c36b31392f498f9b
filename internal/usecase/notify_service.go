package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	crerr "github.com/cockroachdb/errors"
	validator "github.com/go-playground/validator/v10"

	"github.com/draftwatch/draftwatch/internal/domain/gameweek"
	"github.com/draftwatch/draftwatch/internal/domain/notify"
	"github.com/draftwatch/draftwatch/internal/domain/trade"
	"github.com/draftwatch/draftwatch/internal/domain/transaction"
	"github.com/draftwatch/draftwatch/internal/platform/logging"
)

// WebhookSender posts messages to a Discord webhook.
type WebhookSender interface {
	Send(ctx context.Context, webhookURL, content string) error
	SendWithAttachment(ctx context.Context, webhookURL, content, filename string, attachment []byte) error
}

// ReportRenderer is the slice of the report service notifications need.
type ReportRenderer interface {
	LeagueTable(ctx context.Context, leagueID string, gw int) (string, error)
	OptimalLeagueTable(ctx context.Context, leagueID string, gw int) (string, error)
	WaiverReport(ctx context.Context, leagueID string) (string, error)
	WaiverSummary(ctx context.Context, leagueID string, recordID int) (string, error)
	TradeSummary(ctx context.Context, leagueID string, tradeID int) (string, error)
}

// NotifyService delivers league updates to configured Discord webhooks. The
// per-league ledger records what has already been sent, so a run after
// downtime catches up and nothing is delivered twice. Ids are gameweeks for
// the table and report kinds, and tracker record ids for the rest.
type NotifyService struct {
	config       notify.Repository
	gameweeks    gameweek.Repository
	transactions transaction.Repository
	trades       trade.Repository
	reports      ReportRenderer
	sender       WebhookSender
	validate     *validator.Validate
	logger       *logging.Logger
}

func NewNotifyService(
	config notify.Repository,
	gameweeks gameweek.Repository,
	transactions transaction.Repository,
	trades trade.Repository,
	reports ReportRenderer,
	sender WebhookSender,
	logger *logging.Logger,
) *NotifyService {
	if logger == nil {
		logger = logging.Default()
	}

	return &NotifyService{
		config:       config,
		gameweeks:    gameweeks,
		transactions: transactions,
		trades:       trades,
		reports:      reports,
		sender:       sender,
		validate:     validator.New(),
		logger:       logger,
	}
}

// SendPending delivers everything the ledger has not recorded yet, kind by
// kind. The ledger is persisted after every kind, so a mid-run failure never
// repeats what already went out.
func (s *NotifyService) SendPending(ctx context.Context, leagueID string) error {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	cfg, found, err := s.config.Config(ctx, leagueID)
	if err != nil {
		return crerr.Wrapf(err, "read webhook config for league %s", leagueID)
	}
	if !found || !cfg.Enabled() {
		s.logger.InfoContext(ctx, "no webhooks configured, skipping notifications", "league_id", leagueID)
		return nil
	}
	if err := s.validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: webhook config for league %s: %v", ErrInvalidInput, leagueID, err)
	}

	ledger, err := s.config.Ledger(ctx, leagueID)
	if err != nil {
		return crerr.Wrapf(err, "read notification ledger for league %s", leagueID)
	}

	status, err := s.gameweeks.Status(ctx)
	if err != nil {
		return crerr.Wrap(err, "read game status")
	}
	completed := status.Completed()

	for _, kind := range notify.Kinds {
		url := cfg.URLFor(kind)
		if url == "" {
			continue
		}

		pending, err := s.pendingIDs(ctx, leagueID, kind, ledger, completed)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			continue
		}

		sendErr := s.sendKind(ctx, leagueID, kind, url, pending, ledger)
		if saveErr := s.config.SaveLedger(ctx, leagueID, ledger); saveErr != nil {
			return crerr.Wrapf(saveErr, "save notification ledger for league %s", leagueID)
		}
		if sendErr != nil {
			return crerr.Wrapf(sendErr, "deliver %s updates for league %s", kind, leagueID)
		}

		s.logger.InfoContext(ctx, "notifications delivered", "league_id", leagueID, "kind", kind, "count", len(pending))
	}

	return nil
}

// pendingIDs lists the update ids for a kind that are newer than anything in
// the ledger, in delivery order.
func (s *NotifyService) pendingIDs(
	ctx context.Context,
	leagueID, kind string,
	ledger notify.Ledger,
	completed int,
) ([]int, error) {
	last := ledger.LastSent(kind)

	switch kind {
	case notify.KindTable, notify.KindTableOptimal, notify.KindWaiverReport:
		var out []int
		for gw := last + 1; gw <= completed; gw++ {
			out = append(out, gw)
		}
		return out, nil

	case notify.KindWaiverTracker, notify.KindFreeAgentAlert:
		tracker, err := s.transactions.WaiverTracker(ctx, leagueID)
		if err != nil {
			return nil, crerr.Wrapf(err, "read waiver tracker for league %s", leagueID)
		}
		var out []int
		for id, record := range tracker.Info {
			if id <= last {
				continue
			}
			if kind == notify.KindFreeAgentAlert && record.Kind != transaction.KindFreeAgent {
				continue
			}
			out = append(out, id)
		}
		sort.Ints(out)
		return out, nil

	case notify.KindTradeTracker:
		tracker, err := s.trades.Tracker(ctx, leagueID)
		if err != nil {
			return nil, crerr.Wrapf(err, "read trade tracker for league %s", leagueID)
		}
		var out []int
		for id := range tracker.Info {
			if id > last {
				out = append(out, id)
			}
		}
		sort.Ints(out)
		return out, nil

	default:
		return nil, fmt.Errorf("%w: unknown webhook kind %s", ErrInvalidInput, kind)
	}
}

func (s *NotifyService) sendKind(ctx context.Context, leagueID, kind, url string, pending []int, ledger notify.Ledger) error {
	for _, id := range pending {
		if err := s.sendOne(ctx, leagueID, kind, url, id); err != nil {
			return err
		}
		ledger.MarkSent(kind, id)
	}
	return nil
}

func (s *NotifyService) sendOne(ctx context.Context, leagueID, kind, url string, id int) error {
	switch kind {
	case notify.KindTable:
		content, err := s.reports.LeagueTable(ctx, leagueID, id)
		if err != nil {
			return err
		}
		return s.sender.Send(ctx, url, codeBlock(content))

	case notify.KindTableOptimal:
		content, err := s.reports.OptimalLeagueTable(ctx, leagueID, id)
		if err != nil {
			return err
		}
		return s.sender.Send(ctx, url, codeBlock(content))

	case notify.KindWaiverReport:
		// The full history does not fit a Discord message, so it rides along
		// as an attachment.
		report, err := s.reports.WaiverReport(ctx, leagueID)
		if err != nil {
			return err
		}
		message := fmt.Sprintf("Waiver report after gameweek %d", id)
		filename := fmt.Sprintf("waiver_report_gw_%d.txt", id)
		return s.sender.SendWithAttachment(ctx, url, message, filename, []byte(report))

	case notify.KindWaiverTracker:
		content, err := s.reports.WaiverSummary(ctx, leagueID, id)
		if err != nil {
			return err
		}
		return s.sender.Send(ctx, url, content)

	case notify.KindFreeAgentAlert:
		content, err := s.reports.WaiverSummary(ctx, leagueID, id)
		if err != nil {
			return err
		}
		return s.sender.Send(ctx, url, content)

	case notify.KindTradeTracker:
		content, err := s.reports.TradeSummary(ctx, leagueID, id)
		if err != nil {
			return err
		}
		return s.sender.Send(ctx, url, content)

	default:
		return fmt.Errorf("%w: unknown webhook kind %s", ErrInvalidInput, kind)
	}
}

func codeBlock(content string) string {
	return "```\n" + strings.TrimRight(content, "\n") + "\n```"
}
