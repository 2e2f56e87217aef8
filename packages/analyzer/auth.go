package analyzer

import "strings"

// Authentication type labels reported in findings.
const (
	AuthBearerToken = "Bearer Token"
	AuthBasic       = "Basic Auth"
	AuthAPIKey      = "API Key"
)

// SecurityLevel grades an authentication scheme.
type SecurityLevel string

const (
	SecurityHigh   SecurityLevel = "high"
	SecurityMedium SecurityLevel = "medium"
	SecurityNone   SecurityLevel = "none"
)

// Finding is the result of classifying a request's authentication headers.
// Type is empty when no scheme matched, even if an auth header was present
// with an unrecognized value.
type Finding struct {
	Present       bool          `json:"present"`
	Type          string        `json:"type,omitempty"`
	SecurityLevel SecurityLevel `json:"securityLevel"`
}

type authRule struct {
	header string
	prefix string // empty means any value matches
	label  string
	level  SecurityLevel
}

// authRules is evaluated in full, top to bottom. When several rules match,
// the LAST match wins for Type: an X-API-Key header beats an
// Authorization: Bearer one. WithFirstMatchWins flips the tie-break.
var authRules = []authRule{
	{header: "Authorization", prefix: "Bearer", label: AuthBearerToken, level: SecurityHigh},
	{header: "Authorization", prefix: "Basic", label: AuthBasic, level: SecurityMedium},
	{header: "X-API-Key", label: AuthAPIKey, level: SecurityMedium},
}

// Classifier evaluates the ordered authentication rule table.
type Classifier struct {
	firstMatchWins bool
}

// ClassifierOption is a functional option for Classifier.
type ClassifierOption func(*Classifier)

// WithFirstMatchWins makes the first matching rule win for Type instead of
// the last one.
func WithFirstMatchWins() ClassifierOption {
	return func(c *Classifier) {
		c.firstMatchWins = true
	}
}

// NewClassifier creates a classifier with the default precedence.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify inspects request headers and reports the authentication scheme.
// Present becomes true as soon as any listed header name exists, whether or
// not its value matches a known prefix. Header names match
// case-insensitively.
func (c *Classifier) Classify(headers map[string]string) Finding {
	finding := Finding{SecurityLevel: SecurityNone}

	for _, rule := range authRules {
		value, ok := headerValue(headers, rule.header)
		if !ok {
			continue
		}
		finding.Present = true

		if rule.prefix != "" && !strings.HasPrefix(value, rule.prefix) {
			continue
		}
		if c.firstMatchWins && finding.Type != "" {
			continue
		}
		finding.Type = rule.label
		finding.SecurityLevel = rule.level
	}

	return finding
}

// Classify runs the default classifier (last matching rule wins).
func Classify(headers map[string]string) Finding {
	return NewClassifier().Classify(headers)
}

func headerValue(headers map[string]string, name string) (string, bool) {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}
