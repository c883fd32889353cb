package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// SafeBrowsing queries a malicious-URL threat index. A matched lookup means
// at least one threat entry was returned for the exact URL.
type SafeBrowsing struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewSafeBrowsing creates the URL threat adapter. endpoint is the
// threatMatches:find URL without the key parameter.
func NewSafeBrowsing(endpoint, apiKey string, client *http.Client) *SafeBrowsing {
	if client == nil {
		client = NewHTTPClient(0)
	}
	return &SafeBrowsing{endpoint: endpoint, apiKey: apiKey, client: client}
}

func (s *SafeBrowsing) Name() string { return "safebrowsing" }

type threatMatchesRequest struct {
	Client struct {
		ClientID      string `json:"clientId"`
		ClientVersion string `json:"clientVersion"`
	} `json:"client"`
	ThreatInfo struct {
		ThreatTypes      []string      `json:"threatTypes"`
		PlatformTypes    []string      `json:"platformTypes"`
		ThreatEntryTypes []string      `json:"threatEntryTypes"`
		ThreatEntries    []threatEntry `json:"threatEntries"`
	} `json:"threatInfo"`
}

type threatEntry struct {
	URL string `json:"url"`
}

type threatMatchesResponse struct {
	Matches []json.RawMessage `json:"matches"`
}

func (s *SafeBrowsing) Lookup(ctx context.Context, target string) (bool, error) {
	if s.endpoint == "" || s.apiKey == "" {
		return false, fmt.Errorf("safebrowsing: %w", ErrNoCredential)
	}

	var body threatMatchesRequest
	body.Client.ClientID = "vigil"
	body.Client.ClientVersion = "1.0"
	body.ThreatInfo.ThreatTypes = []string{"MALWARE", "SOCIAL_ENGINEERING"}
	body.ThreatInfo.PlatformTypes = []string{"ANY_PLATFORM"}
	body.ThreatInfo.ThreatEntryTypes = []string{"URL"}
	body.ThreatInfo.ThreatEntries = []threatEntry{{URL: target}}

	data, err := json.Marshal(body)
	if err != nil {
		return false, fmt.Errorf("safebrowsing: marshal request: %v: %w", err, ErrUnavailable)
	}

	q := url.Values{}
	q.Set("key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"?"+q.Encode(), bytes.NewReader(data))
	if err != nil {
		return false, fmt.Errorf("safebrowsing: create request: %v: %w", err, ErrUnavailable)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("safebrowsing: request failed: %v: %w", err, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("safebrowsing: unexpected status %d: %w", resp.StatusCode, ErrUnavailable)
	}

	var tr threatMatchesResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return false, fmt.Errorf("safebrowsing: decode response: %v: %w", err, ErrUnavailable)
	}

	return len(tr.Matches) > 0, nil
}
