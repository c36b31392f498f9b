// Package fpldraft is a read-only client for the public FPL Draft API at
// draft.premierleague.com. Every endpoint is an unauthenticated GET
// returning JSON.
package fpldraft

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/draftwatch/draftwatch/internal/domain/gameweek"
	"github.com/draftwatch/draftwatch/internal/domain/league"
	"github.com/draftwatch/draftwatch/internal/domain/player"
	"github.com/draftwatch/draftwatch/internal/domain/scoring"
	"github.com/draftwatch/draftwatch/internal/domain/trade"
	"github.com/draftwatch/draftwatch/internal/domain/transaction"
	"github.com/draftwatch/draftwatch/internal/platform/logging"
)

const (
	defaultBaseURL = "https://draft.premierleague.com/api"
	defaultTimeout = 20 * time.Second

	// Responses are small league documents; anything past this is broken.
	maxBodyBytes = 6 << 20
)

var errTransient = crerr.New("fpl draft transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	// MaxRetries bounds re-attempts after transient failures. The change
	// detector wires this to zero so a flaky fetch surfaces immediately.
	MaxRetries int
	Logger     *logging.Logger
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRetries int
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	// A caller-supplied client is used as-is; defaults only apply to the
	// client we construct ourselves.
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// BootstrapStatic fetches the global player catalogue.
func (c *Client) BootstrapStatic(ctx context.Context) (player.Bootstrap, error) {
	var out player.Bootstrap
	if _, err := c.getJSON(ctx, "/bootstrap-static", &out); err != nil {
		return player.Bootstrap{}, crerr.Wrap(err, "fetch bootstrap-static")
	}
	return out, nil
}

// Game fetches the season status document.
func (c *Client) Game(ctx context.Context) (gameweek.Status, error) {
	var out gameweek.Status
	if _, err := c.getJSON(ctx, "/game", &out); err != nil {
		return gameweek.Status{}, crerr.Wrap(err, "fetch game status")
	}
	return out, nil
}

// LeagueDetails fetches league metadata and its entries.
func (c *Client) LeagueDetails(ctx context.Context, leagueID string) (league.Details, error) {
	var out league.Details
	if _, err := c.getJSON(ctx, "/league/"+leagueID+"/details", &out); err != nil {
		return league.Details{}, crerr.Wrapf(err, "fetch details for league %s", leagueID)
	}
	return out, nil
}

// ElementStatus fetches the raw ownership document for a league.
func (c *Client) ElementStatus(ctx context.Context, leagueID string) ([]byte, error) {
	raw, err := c.get(ctx, "/league/"+leagueID+"/element-status")
	if err != nil {
		return nil, crerr.Wrapf(err, "fetch element-status for league %s", leagueID)
	}
	return raw, nil
}

// Transactions fetches the waiver/free-agent feed along with the raw body,
// which callers persist verbatim as the comparison snapshot.
func (c *Client) Transactions(ctx context.Context, leagueID string) (transaction.Feed, []byte, error) {
	var out transaction.Feed
	raw, err := c.getJSON(ctx, "/draft/league/"+leagueID+"/transactions", &out)
	if err != nil {
		return transaction.Feed{}, nil, crerr.Wrapf(err, "fetch transactions for league %s", leagueID)
	}
	return out, raw, nil
}

// TransactionsRaw fetches the transactions document without decoding it.
// The change detector only needs the bytes.
func (c *Client) TransactionsRaw(ctx context.Context, leagueID string) ([]byte, error) {
	raw, err := c.get(ctx, "/draft/league/"+leagueID+"/transactions")
	if err != nil {
		return nil, crerr.Wrapf(err, "fetch transactions for league %s", leagueID)
	}
	return raw, nil
}

// Trades fetches the trade feed for a league.
func (c *Client) Trades(ctx context.Context, leagueID string) (trade.Feed, error) {
	var out trade.Feed
	if _, err := c.getJSON(ctx, "/draft/league/"+leagueID+"/trades", &out); err != nil {
		return trade.Feed{}, crerr.Wrapf(err, "fetch trades for league %s", leagueID)
	}
	return out, nil
}

// EventLive fetches global per-player stats for one gameweek.
func (c *Client) EventLive(ctx context.Context, gw int) (gameweek.Live, error) {
	var out gameweek.Live
	if _, err := c.getJSON(ctx, fmt.Sprintf("/event/%d/live", gw), &out); err != nil {
		return gameweek.Live{}, crerr.Wrapf(err, "fetch live data for gameweek %d", gw)
	}
	return out, nil
}

// EntryEvent fetches a team's picks for one gameweek.
func (c *Client) EntryEvent(ctx context.Context, teamID int64, gw int) (scoring.Picks, error) {
	var out scoring.Picks
	if _, err := c.getJSON(ctx, fmt.Sprintf("/entry/%d/event/%d", teamID, gw), &out); err != nil {
		return scoring.Picks{}, crerr.Wrapf(err, "fetch picks for team %d gameweek %d", teamID, gw)
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, target any) ([]byte, error) {
	raw, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decode response for %s: %w", path, err)
	}
	return raw, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	fullURL := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: status=%d body=%s", errTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		c.logger.DebugContext(ctx, "retrying fpl draft request", "path", path, "attempt", attempt+1, "error", lastErr)
	}

	return nil, lastErr
}

// IsTransient reports whether an error came from a retryable failure class
// (network error, timeout, 5xx/429) rather than a hard rejection.
func IsTransient(err error) bool {
	return stderrors.Is(err, errTransient)
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	const max = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > max {
		return body[:max] + "...(truncated)"
	}
	return body
}
