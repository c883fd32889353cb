package verdict

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// PhonePolicy selects how strictly phone number length is enforced.
type PhonePolicy string

const (
	// PhoneStrict10 requires exactly 10 digits.
	PhoneStrict10 PhonePolicy = "strict10"
	// PhoneRange10to15 accepts 10 to 15 digits (E.164-style upper bound).
	PhoneRange10to15 PhonePolicy = "range10to15"
)

var (
	emailPattern       = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)
	phoneStrictPattern = regexp.MustCompile(`^\d{10}$`)
	phoneRangePattern  = regexp.MustCompile(`^\d{10,15}$`)
)

// FormatPolicy carries the configurable knobs of the syntactic stage.
type FormatPolicy struct {
	RequireHTTPS bool
	PhonePolicy  PhonePolicy
}

// rejection is a failed format check: which reason and what to tell the user.
type rejection struct {
	reason  Reason
	message string
}

// checkEmailFormat validates an email address syntactically. Mixed-case
// local parts are rejected outright; the lowercase pattern is applied to
// whatever remains.
func checkEmailFormat(email string) *rejection {
	if strings.IndexFunc(email, unicode.IsUpper) >= 0 {
		return &rejection{ReasonUppercaseEmail, "email contains uppercase letters and is not considered safe"}
	}
	if !emailPattern.MatchString(email) {
		return &rejection{ReasonBadFormat, "invalid email format"}
	}
	return nil
}

// checkPhoneFormat validates a phone number against the configured length
// policy.
func checkPhoneFormat(phone string, policy PhonePolicy) *rejection {
	pattern := phoneStrictPattern
	msg := "phone number must be exactly 10 digits"
	if policy == PhoneRange10to15 {
		pattern = phoneRangePattern
		msg = "phone number must be 10 to 15 digits"
	}
	if !pattern.MatchString(phone) {
		return &rejection{ReasonBadFormat, msg}
	}
	return nil
}

// checkURLFormat validates that raw parses as an absolute http(s) URL and
// enforces the HTTPS-only policy when configured.
func checkURLFormat(raw string, requireHTTPS bool) *rejection {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return &rejection{ReasonBadFormat, "invalid website URL"}
	}
	switch u.Scheme {
	case "https":
		return nil
	case "http":
		if requireHTTPS {
			return &rejection{ReasonInsecureScheme, "insecure website (http is not safe)"}
		}
		return nil
	default:
		return &rejection{ReasonBadFormat, "URL must use http or https"}
	}
}
