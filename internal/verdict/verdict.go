package verdict

// Kind is the final classification of a validation request.
type Kind string

const (
	// KindSafe means the input passed every stage.
	KindSafe Kind = "safe"
	// KindAlert means the input was rejected by a format rule, a local
	// policy, or an oracle match. Alert verdicts are expected outcomes,
	// not errors.
	KindAlert Kind = "alert"
	// KindError means the verdict could not be determined (oracle
	// unreachable, credential missing). An error verdict is never
	// interpreted as safe.
	KindError Kind = "error"
)

// InputKind identifies which validation pipeline an input goes through.
type InputKind string

const (
	InputEmail InputKind = "email"
	InputPhone InputKind = "phone"
	InputURL   InputKind = "url"
)

// Reason is the closed set of rejection and error causes.
type Reason string

const (
	ReasonBadFormat         Reason = "bad_format"
	ReasonUppercaseEmail    Reason = "uppercase_email"
	ReasonKnownLeak         Reason = "known_leak"
	ReasonFakeDomain        Reason = "fake_domain"
	ReasonInsecureScheme    Reason = "insecure_scheme"
	ReasonOracleMatch       Reason = "oracle_match"
	ReasonSpamNumber        Reason = "spam_number"
	ReasonOracleUnavailable Reason = "oracle_unavailable"
	ReasonMissingCredential Reason = "missing_credential"
)

// Verdict is the outcome of one validation request. It is created once and
// never mutated.
type Verdict struct {
	Kind    Kind      `json:"status"`
	Input   string    `json:"input"`
	Reason  Reason    `json:"reason,omitempty"`
	Message string    `json:"message"`
	Via     InputKind `json:"kind"`
}

func safe(kind InputKind, input, message string) Verdict {
	return Verdict{Kind: KindSafe, Via: kind, Input: input, Message: message}
}

func alert(kind InputKind, input string, reason Reason, message string) Verdict {
	return Verdict{Kind: KindAlert, Via: kind, Input: input, Reason: reason, Message: message}
}

func operational(kind InputKind, input string, reason Reason, message string) Verdict {
	return Verdict{Kind: KindError, Via: kind, Input: input, Reason: reason, Message: message}
}
