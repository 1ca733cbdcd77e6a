package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"food-delivery-dispatch/internal/domain"
)

// StatusError is returned when the relay answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("notify relay: status %d", e.Code)
	}
	return fmt.Sprintf("notify relay: status %d: %s", e.Code, e.Body)
}

// RelayGateway posts outbound email/SMS messages to an HTTP relay.
type RelayGateway struct {
	client *http.Client
	url    string
}

// NewRelayGateway creates a relay gateway. It returns nil when url is empty.
func NewRelayGateway(url string, timeout time.Duration) *RelayGateway {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &RelayGateway{client: &http.Client{Timeout: timeout}, url: url}
}

// Send delivers one message to the relay.
func (g *RelayGateway) Send(ctx context.Context, msg domain.OutboundMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("notify relay: encode: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify relay: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("notify relay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
}
