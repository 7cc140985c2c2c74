// ABOUTME: Webhook client for appending records to the remote spreadsheet
// ABOUTME: Implements the optimistic-completion contract of the Apps Script endpoint
package sheet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/harperreed/cardsnap/models"
)

// DefaultSettleDelay is how long Append waits after posting before
// reporting success. The Apps Script endpoint gives no usable
// acknowledgment, so the delay is the whole confirmation story.
const DefaultSettleDelay = 1500 * time.Millisecond

// Client appends contact records to a user-configured Apps Script webhook.
//
// The endpoint cannot confirm delivery: the browser origin of this payload
// format posts with no-cors, and the script's responses are opaque
// redirects either way. Append therefore treats any completed HTTP exchange
// as optimistic success and only a transport failure as an error. Callers
// must not read a delivery guarantee into a nil return.
type Client struct {
	httpClient  *http.Client
	settleDelay time.Duration
}

// NewClient returns a webhook client with default timeouts.
func NewClient() *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		settleDelay: DefaultSettleDelay,
	}
}

// NewClientWithOptions returns a client with an injectable HTTP client and
// settle delay, for tests.
func NewClientWithOptions(httpClient *http.Client, settleDelay time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{httpClient: httpClient, settleDelay: settleDelay}
}

// Append serializes the record and posts it to the webhook. The body is
// sent as text/plain so the script side can parse e.postData.contents
// without a CORS preflight ever entering the picture.
func (c *Client) Append(ctx context.Context, webhookURL string, record models.ContactRecord) error {
	if webhookURL == "" {
		return fmt.Errorf("no webhook endpoint configured")
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to serialize record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send record to sheet: %w", err)
	}
	// Drain and discard: the response is not part of the contract.
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	// Optimistic settle delay, interruptible by context cancellation.
	if c.settleDelay > 0 {
		timer := time.NewTimer(c.settleDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}
