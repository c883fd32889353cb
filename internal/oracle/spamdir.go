package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// SpamDirectory queries a public spam/scam phone directory. A matched lookup
// means the number has been reported.
type SpamDirectory struct {
	endpoint string
	client   *http.Client
}

// NewSpamDirectory creates the phone adapter. endpoint is the directory base
// URL; the number is appended as a path segment. The directory needs no API
// key, but a missing endpoint still disables the adapter.
func NewSpamDirectory(endpoint string, client *http.Client) *SpamDirectory {
	if client == nil {
		client = NewHTTPClient(0)
	}
	return &SpamDirectory{endpoint: endpoint, client: client}
}

func (s *SpamDirectory) Name() string { return "spamdir" }

type spamDirectoryResponse struct {
	Found bool `json:"found"`
}

func (s *SpamDirectory) Lookup(ctx context.Context, number string) (bool, error) {
	if s.endpoint == "" {
		return false, fmt.Errorf("spamdir: %w", ErrNoCredential)
	}

	target := strings.TrimSuffix(s.endpoint, "/") + "/" + url.PathEscape(number)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return false, fmt.Errorf("spamdir: create request: %v: %w", err, ErrUnavailable)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("spamdir: request failed: %v: %w", err, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("spamdir: unexpected status %d: %w", resp.StatusCode, ErrUnavailable)
	}

	var sr spamDirectoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return false, fmt.Errorf("spamdir: decode response: %v: %w", err, ErrUnavailable)
	}

	return sr.Found, nil
}
