package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"
)

// RejectedError signals that the remote service refused the mutation for a
// business reason (insufficient credit or stock, unknown entity). It is the
// planned compensation path, not a transport failure.
type RejectedError struct {
	Status int
	Body   string
}

func (e RejectedError) Error() string {
	return fmt.Sprintf("remote service rejected request (status %d): %s", e.Status, e.Body)
}

// client is the shared HTTP plumbing of the customer and product clients.
type client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

func newClient(baseURL string, logger *slog.Logger) (client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return client{}, fmt.Errorf("parse remote service url: %w", err)
	}
	if !parsed.IsAbs() {
		return client{}, fmt.Errorf("remote service url must be absolute")
	}
	return client{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

func (c *client) endpoint(parts ...string) string {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(append([]string{endpoint.Path}, parts...)...)
	return endpoint.String()
}

// send issues a JSON request and maps the response status: 2xx is success,
// 4xx a business rejection, everything else a transport-level failure left
// to the next polling cycle.
func (c *client) send(ctx context.Context, method, endpoint string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return nil
	case resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError:
		respBody, _ := io.ReadAll(resp.Body)
		return RejectedError{Status: resp.StatusCode, Body: string(respBody)}
	default:
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("remote request failed",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(respBody)))
		return fmt.Errorf("remote error: %s", resp.Status)
	}
}
