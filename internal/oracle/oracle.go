package oracle

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Sentinel errors for the uniform oracle failure contract. Every adapter
// failure maps onto one of these two; the verdict engine never inspects
// adapter-specific errors.
var (
	// ErrUnavailable covers transport failures, non-2xx statuses, timeouts
	// and malformed payloads. The absence of an answer is never "safe".
	ErrUnavailable = errors.New("oracle unavailable")

	// ErrNoCredential is returned before any network I/O when an adapter is
	// missing its endpoint or API key.
	ErrNoCredential = errors.New("oracle credential missing")
)

// Oracle is an external reputation source answering a yes/no match question
// for a single identifier. Implementations make exactly one network attempt
// per Lookup and do not retry.
type Oracle interface {
	Name() string
	// Lookup reports whether the identifier is flagged by the reputation
	// source. A false return with a nil error means "not flagged", which is
	// distinct from any error return.
	Lookup(ctx context.Context, identifier string) (bool, error)
}

// DefaultTimeout bounds a single oracle round trip.
const DefaultTimeout = 5 * time.Second

// NewHTTPClient returns the shared http.Client used by the adapters. A zero
// timeout falls back to DefaultTimeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
