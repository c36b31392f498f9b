// Package discord delivers league updates through Discord webhooks.
package discord

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"

	"github.com/draftwatch/draftwatch/internal/platform/logging"
)

const defaultTimeout = 10 * time.Second

// WebhookPrefix is the only URL shape Discord serves webhooks under;
// anything else is a config mistake worth rejecting early.
const WebhookPrefix = "https://discord.com/api/webhooks/"

type ClientConfig struct {
	Timeout time.Duration
	Logger  *logging.Logger
}

type Client struct {
	http   *resty.Client
	logger *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Client{
		http:   resty.New().SetTimeout(timeout),
		logger: logger,
	}
}

// Send posts a text-only message to a webhook.
func (c *Client) Send(ctx context.Context, webhookURL, content string) error {
	if err := validateWebhookURL(webhookURL); err != nil {
		return err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"content": content}).
		Post(webhookURL)
	if err != nil {
		return crerr.Wrap(err, "post discord webhook")
	}

	return checkResponse(resp)
}

// SendWithAttachment posts a message with a file attached, used for the full
// waiver and trade reports that exceed Discord's message length limit.
func (c *Client) SendWithAttachment(ctx context.Context, webhookURL, content, filename string, attachment []byte) error {
	if err := validateWebhookURL(webhookURL); err != nil {
		return err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", filename, bytes.NewReader(attachment)).
		SetFormData(map[string]string{"content": content}).
		Post(webhookURL)
	if err != nil {
		return crerr.Wrap(err, "post discord webhook with attachment")
	}

	return checkResponse(resp)
}

func validateWebhookURL(webhookURL string) error {
	if !strings.HasPrefix(strings.TrimSpace(webhookURL), WebhookPrefix) {
		return crerr.Newf("invalid webhook URL: must start with %s", WebhookPrefix)
	}
	return nil
}

func checkResponse(resp *resty.Response) error {
	switch resp.StatusCode() {
	case http.StatusOK, http.StatusNoContent:
		return nil
	default:
		return crerr.Newf("discord webhook rejected message: status=%d body=%s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
}
