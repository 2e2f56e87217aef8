// Package http executes parsed curl commands and turns the result into a
// response analysis.
//
// It wraps the standard library's http package with additional features:
//   - Caller-supplied cancellation and optional timeouts
//   - Redirect handling with first-hop detection
//   - Body normalization (pretty and compact forms)
//   - Security-header auditing of responses
//   - Optional client-side rate limiting
package http
