package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/abdul-hamid-achik/curlscope/packages/audit"
)

// ResponseAnalysis is the structured inspection of an executed request.
// Content holds the human-readable body (pretty-printed when structured),
// RawBody the compact form; for unstructured bodies the two are identical.
type ResponseAnalysis struct {
	StatusCode   int         `json:"statusCode"`
	ReasonPhrase string      `json:"reasonPhrase"`
	Headers      http.Header `json:"headers"`
	ContentType  string      `json:"contentType"`
	Content      string      `json:"content"`
	RawBody      string      `json:"rawBody"`
	Metadata     Metadata    `json:"metadata"`
}

// Metadata carries everything about the exchange that is not the body.
// RedirectCount is a presence flag, not a hop count: 1 when the final
// resolved URL differs from the requested one, 0 otherwise, never more.
type Metadata struct {
	Encoding      string      `json:"encoding"`
	SizeBytes     int         `json:"sizeBytes"`
	ElapsedMs     float64     `json:"elapsedMs"`
	RedirectCount int         `json:"redirectCount"`
	FinalURL      string      `json:"finalUrl"`
	Cookies       []string    `json:"cookies"`
	SecurityAudit audit.Audit `json:"securityAudit"`
}

// Header returns the first value of the named response header,
// case-insensitively.
func (r *ResponseAnalysis) Header(key string) string {
	return r.Headers.Get(key)
}

// IsJSON reports whether the response declared a JSON content type.
func (r *ResponseAnalysis) IsJSON() bool {
	return strings.Contains(strings.ToLower(r.ContentType), "application/json")
}

// IsSuccess reports a 2xx status.
func (r *ResponseAnalysis) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsClientError reports a 4xx status.
func (r *ResponseAnalysis) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

// IsServerError reports a 5xx status.
func (r *ResponseAnalysis) IsServerError() bool {
	return r.StatusCode >= 500
}

// HumanSize renders SizeBytes in B/KB/MB/GB form.
func (m Metadata) HumanSize() string {
	size := float64(m.SizeBytes)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.2f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.2f TB", size)
}
