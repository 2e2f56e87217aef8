// Package audit runs a fixed checklist of security-relevant headers against
// an HTTP response.
package audit

import (
	"net/http"
	"strings"
)

// CheckResult reports one audited header.
type CheckResult struct {
	Present     bool   `json:"present"`
	Value       string `json:"value,omitempty"`
	Description string `json:"description"`
}

// Audit maps the audited header names to their results. It always contains
// exactly the four audited headers, whatever the response looked like.
type Audit map[string]CheckResult

// checks is the static audit table, fixed at process start and never
// mutated.
var checks = []struct {
	Header      string
	Description string
}{
	{"Strict-Transport-Security", "Enforces HTTPS connections (HSTS)"},
	{"X-Frame-Options", "Protects against clickjacking attacks"},
	{"X-Content-Type-Options", "Prevents MIME-type sniffing"},
	{"X-XSS-Protection", "Enables browser XSS filtering"},
}

// HeaderNames returns the audited header names in table order.
func HeaderNames() []string {
	names := make([]string, len(checks))
	for i, c := range checks {
		names[i] = c.Header
	}
	return names
}

// Evaluate checks the response headers against the audit table. Header
// lookup is case-insensitive; a nil header map audits as all-absent.
func Evaluate(headers http.Header) Audit {
	result := make(Audit, len(checks))
	for _, c := range checks {
		value, present := lookup(headers, c.Header)
		result[c.Header] = CheckResult{
			Present:     present,
			Value:       value,
			Description: c.Description,
		}
	}
	return result
}

// lookup tolerates non-canonical keys, which http.Header.Get does not.
func lookup(headers http.Header, name string) (string, bool) {
	if values := headers.Values(name); len(values) > 0 {
		return values[0], true
	}
	for k, values := range headers {
		if strings.EqualFold(k, name) && len(values) > 0 {
			return values[0], true
		}
	}
	return "", false
}

// MissingHeaders returns the audited headers absent from the response, in
// table order.
func (a Audit) MissingHeaders() []string {
	var missing []string
	for _, c := range checks {
		if !a[c.Header].Present {
			missing = append(missing, c.Header)
		}
	}
	return missing
}
