package verdict

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/vigil-labs/vigil/internal/oracle"
)

// BlockScope controls which rejections are written to the block list.
type BlockScope string

const (
	// BlockAllRejections records every Alert verdict, including plain
	// format failures.
	BlockAllRejections BlockScope = "all"
	// BlockOracleOnly records only oracle-confirmed rejections.
	BlockOracleOnly BlockScope = "oracle"
)

// Recorder is the block list surface the engine writes to on rejection.
type Recorder interface {
	Record(identifier string, kind InputKind, reason Reason)
}

// AlertPublisher receives one alert per Alert verdict. Publishing is
// fire-and-forget: implementations must not block the request and their
// failures never change the returned Verdict.
type AlertPublisher interface {
	PublishInputAlert(kind InputKind, identifier, message string)
}

// EngineConfig wires the engine's stages and side-effect sinks. A nil oracle
// disables that kind's oracle stage and resolves every request of the kind
// as missing_credential.
type EngineConfig struct {
	Format     FormatPolicy
	BlockScope BlockScope
	Denylist   *Denylist

	EmailOracle oracle.Oracle
	URLOracle   oracle.Oracle
	PhoneOracle oracle.Oracle

	BlockList Recorder
	Alerts    AlertPublisher
}

// Engine runs the per-request validation pipeline: format check, local
// denylist, oracle lookup. Each stage may short-circuit; later stages are
// never reached after a rejection.
type Engine struct {
	cfg EngineConfig
}

// NewEngine creates a verdict engine. An empty BlockScope defaults to
// recording all rejections.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.BlockScope == "" {
		cfg.BlockScope = BlockAllRejections
	}
	return &Engine{cfg: cfg}
}

// Check validates one input and returns its Verdict. The call itself never
// fails: operational problems surface as error-kind Verdicts.
func (e *Engine) Check(ctx context.Context, kind InputKind, raw string) Verdict {
	switch kind {
	case InputEmail:
		return e.checkEmail(ctx, raw)
	case InputPhone:
		return e.checkPhone(ctx, raw)
	case InputURL:
		return e.checkURL(ctx, raw)
	default:
		return e.reject(kind, raw, ReasonBadFormat, fmt.Sprintf("unsupported input kind %q", kind))
	}
}

func (e *Engine) checkEmail(ctx context.Context, email string) Verdict {
	if rej := checkEmailFormat(email); rej != nil {
		return e.reject(InputEmail, email, rej.reason, rej.message)
	}
	if host := emailDomain(email); e.cfg.Denylist != nil && e.cfg.Denylist.MatchesHost(host) {
		return e.reject(InputEmail, email, ReasonFakeDomain, "email domain is a known fake domain")
	}

	matched, err := e.lookup(ctx, e.cfg.EmailOracle, InputEmail, email)
	if err != nil {
		return e.operational(InputEmail, email, err)
	}
	if matched {
		return e.reject(InputEmail, email, ReasonKnownLeak, "fake or leaked email detected")
	}
	return safe(InputEmail, email, "email is safe")
}

func (e *Engine) checkPhone(ctx context.Context, phone string) Verdict {
	if rej := checkPhoneFormat(phone, e.cfg.Format.PhonePolicy); rej != nil {
		return e.reject(InputPhone, phone, rej.reason, rej.message)
	}

	matched, err := e.lookup(ctx, e.cfg.PhoneOracle, InputPhone, phone)
	if err != nil {
		return e.operational(InputPhone, phone, err)
	}
	if matched {
		return e.reject(InputPhone, phone, ReasonSpamNumber, "spam phone number detected")
	}
	return safe(InputPhone, phone, "phone number is safe")
}

func (e *Engine) checkURL(ctx context.Context, raw string) Verdict {
	if rej := checkURLFormat(raw, e.cfg.Format.RequireHTTPS); rej != nil {
		return e.reject(InputURL, raw, rej.reason, rej.message)
	}
	if host := urlHost(raw); e.cfg.Denylist != nil && e.cfg.Denylist.MatchesHost(host) {
		return e.reject(InputURL, raw, ReasonFakeDomain, "website domain is a known fake domain")
	}

	matched, err := e.lookup(ctx, e.cfg.URLOracle, InputURL, raw)
	if err != nil {
		return e.operational(InputURL, raw, err)
	}
	if matched {
		return e.reject(InputURL, raw, ReasonOracleMatch, "unsafe website detected")
	}
	return safe(InputURL, raw, "website is safe")
}

// lookup invokes the oracle stage. A nil oracle means the stage was never
// configured, which is surfaced as a missing credential without any network
// round trip.
func (e *Engine) lookup(ctx context.Context, o oracle.Oracle, kind InputKind, identifier string) (bool, error) {
	if o == nil {
		return false, fmt.Errorf("%s oracle not configured: %w", kind, oracle.ErrNoCredential)
	}
	return o.Lookup(ctx, identifier)
}

// reject builds an Alert verdict and performs the two rejection side effects:
// block list upsert (subject to block scope) and alert publish. Both are
// fire-and-forget relative to the caller.
func (e *Engine) reject(kind InputKind, identifier string, reason Reason, message string) Verdict {
	if e.cfg.BlockList != nil && e.shouldRecord(reason) {
		e.cfg.BlockList.Record(identifier, kind, reason)
	}
	if e.cfg.Alerts != nil {
		e.cfg.Alerts.PublishInputAlert(kind, identifier, message)
	}
	return alert(kind, identifier, reason, message)
}

// operational maps an oracle-stage failure onto an error-kind Verdict. No
// block list write and no alert are produced for operational errors.
func (e *Engine) operational(kind InputKind, identifier string, err error) Verdict {
	if errors.Is(err, oracle.ErrNoCredential) {
		return operational(kind, identifier, ReasonMissingCredential, "reputation check is not configured for this input kind")
	}
	log.Printf("verdict: %s oracle failed for %q: %v", kind, identifier, err)
	return operational(kind, identifier, ReasonOracleUnavailable, "reputation service unavailable, try again later")
}

func (e *Engine) shouldRecord(reason Reason) bool {
	if e.cfg.BlockScope == BlockOracleOnly {
		switch reason {
		case ReasonKnownLeak, ReasonOracleMatch, ReasonSpamNumber:
			return true
		default:
			return false
		}
	}
	return true
}

func emailDomain(email string) string {
	if i := strings.LastIndexByte(email, '@'); i >= 0 {
		return email[i+1:]
	}
	return ""
}

func urlHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
