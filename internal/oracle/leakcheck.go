package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// LeakCheck queries a leaked-credentials index. A matched lookup means the
// address appears in a breach corpus.
type LeakCheck struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewLeakCheck creates the leaked-email adapter. endpoint is the check URL
// without query parameters, e.g. "https://api.leakcheck.io/check".
func NewLeakCheck(endpoint, apiKey string, client *http.Client) *LeakCheck {
	if client == nil {
		client = NewHTTPClient(0)
	}
	return &LeakCheck{endpoint: endpoint, apiKey: apiKey, client: client}
}

func (l *LeakCheck) Name() string { return "leakcheck" }

type leakCheckResponse struct {
	Status string `json:"status"`
}

func (l *LeakCheck) Lookup(ctx context.Context, email string) (bool, error) {
	if l.endpoint == "" || l.apiKey == "" {
		return false, fmt.Errorf("leakcheck: %w", ErrNoCredential)
	}

	q := url.Values{}
	q.Set("key", l.apiKey)
	q.Set("email", email)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return false, fmt.Errorf("leakcheck: create request: %v: %w", err, ErrUnavailable)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("leakcheck: request failed: %v: %w", err, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("leakcheck: unexpected status %d: %w", resp.StatusCode, ErrUnavailable)
	}

	var lr leakCheckResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return false, fmt.Errorf("leakcheck: decode response: %v: %w", err, ErrUnavailable)
	}

	return lr.Status == "found", nil
}
