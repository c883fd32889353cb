package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestLeakCheck_Lookup(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		matched bool
		wantErr error
	}{
		{"found", http.StatusOK, `{"status":"found"}`, true, nil},
		{"not found", http.StatusOK, `{"status":"not_found"}`, false, nil},
		{"server error", http.StatusInternalServerError, `oops`, false, ErrUnavailable},
		{"malformed payload", http.StatusOK, `{{{`, false, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("key"); got != "test-key" {
					t.Errorf("expected key query param, got %q", got)
				}
				if got := r.URL.Query().Get("email"); got != "a@b.com" {
					t.Errorf("expected email query param, got %q", got)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			lc := NewLeakCheck(srv.URL, "test-key", srv.Client())
			matched, err := lc.Lookup(context.Background(), "a@b.com")

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if matched != tt.matched {
				t.Errorf("matched = %v, want %v", matched, tt.matched)
			}
		})
	}
}

func TestLeakCheck_MissingCredentialSkipsNetwork(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	lc := NewLeakCheck(srv.URL, "", srv.Client())
	_, err := lc.Lookup(context.Background(), "a@b.com")

	if !errors.Is(err, ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
	if got := hits.Load(); got != 0 {
		t.Errorf("expected no network round trip, server saw %d requests", got)
	}
}

func TestLeakCheck_TimeoutSurfacesAsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	lc := NewLeakCheck(srv.URL, "test-key", &http.Client{Timeout: 20 * time.Millisecond})
	_, err := lc.Lookup(context.Background(), "a@b.com")

	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on timeout, got %v", err)
	}
}

func TestSafeBrowsing_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.URL.Query().Get("key"); got != "sb-key" {
			t.Errorf("expected key query param, got %q", got)
		}

		var req struct {
			ThreatInfo struct {
				ThreatTypes   []string `json:"threatTypes"`
				ThreatEntries []struct {
					URL string `json:"url"`
				} `json:"threatEntries"`
			} `json:"threatInfo"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.ThreatInfo.ThreatTypes) != 2 {
			t.Errorf("expected 2 threat types, got %v", req.ThreatInfo.ThreatTypes)
		}
		if len(req.ThreatInfo.ThreatEntries) != 1 || req.ThreatInfo.ThreatEntries[0].URL != "https://evil.test" {
			t.Errorf("unexpected threat entries: %+v", req.ThreatInfo.ThreatEntries)
		}

		w.Write([]byte(`{"matches":[{"threatType":"MALWARE"}]}`))
	}))
	defer srv.Close()

	sb := NewSafeBrowsing(srv.URL, "sb-key", srv.Client())
	matched, err := sb.Lookup(context.Background(), "https://evil.test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !matched {
		t.Error("expected matched=true for a returned threat entry")
	}
}

func TestSafeBrowsing_NoMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The threat API returns an empty object when nothing matches.
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	sb := NewSafeBrowsing(srv.URL, "sb-key", srv.Client())
	matched, err := sb.Lookup(context.Background(), "https://fine.test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matched {
		t.Error("expected matched=false for empty response")
	}
}

func TestSafeBrowsing_MissingCredential(t *testing.T) {
	sb := NewSafeBrowsing("https://example.invalid", "", nil)
	_, err := sb.Lookup(context.Background(), "https://x.test")
	if !errors.Is(err, ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
}

func TestSpamDirectory_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/5551234567" {
			t.Errorf("expected number in path, got %q", r.URL.Path)
		}
		w.Write([]byte(`{"found":true}`))
	}))
	defer srv.Close()

	sd := NewSpamDirectory(srv.URL+"/", srv.Client()) // trailing slash is tolerated
	matched, err := sd.Lookup(context.Background(), "5551234567")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !matched {
		t.Error("expected matched=true")
	}
}

func TestSpamDirectory_NotFlagged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"found":false}`))
	}))
	defer srv.Close()

	sd := NewSpamDirectory(srv.URL, srv.Client())
	matched, err := sd.Lookup(context.Background(), "5550000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matched {
		t.Error("expected matched=false")
	}
}

func TestSpamDirectory_MissingEndpoint(t *testing.T) {
	sd := NewSpamDirectory("", nil)
	_, err := sd.Lookup(context.Background(), "5551234567")
	if !errors.Is(err, ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
}

func TestNewHTTPClient_DefaultTimeout(t *testing.T) {
	c := NewHTTPClient(0)
	if c.Timeout != DefaultTimeout {
		t.Errorf("expected default timeout %s, got %s", DefaultTimeout, c.Timeout)
	}
	c = NewHTTPClient(250 * time.Millisecond)
	if c.Timeout != 250*time.Millisecond {
		t.Errorf("expected 250ms timeout, got %s", c.Timeout)
	}
}
