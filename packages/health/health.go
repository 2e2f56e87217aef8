// Package health grades an executed exchange: response time, status
// reliability, security-header coverage, and API best practices.
package health

import (
	"fmt"

	"github.com/abdul-hamid-achik/curlscope/packages/analyzer"
	"github.com/abdul-hamid-achik/curlscope/packages/http"
)

// Status is a coarse three-level grade.
type Status string

const (
	StatusGood    Status = "good"
	StatusWarning Status = "warning"
	StatusPoor    Status = "poor"
)

// Check is one graded dimension with its recommendations.
type Check struct {
	Status          Status   `json:"status"`
	Message         string   `json:"message"`
	Recommendations []string `json:"recommendations"`
}

// Report covers the four graded dimensions of an exchange.
type Report struct {
	Performance   Check `json:"performance"`
	Reliability   Check `json:"reliability"`
	Security      Check `json:"security"`
	BestPractices Check `json:"bestPractices"`
}

const (
	performanceGoodMs    = 1000
	performanceWarningMs = 3000
	largeResponseBytes   = 1024 * 1024
)

// Evaluate grades a response analysis.
func Evaluate(resp *http.ResponseAnalysis) *Report {
	return &Report{
		Performance:   evaluatePerformance(resp),
		Reliability:   evaluateReliability(resp),
		Security:      evaluateSecurity(resp),
		BestPractices: evaluateBestPractices(resp),
	}
}

func evaluatePerformance(resp *http.ResponseAnalysis) Check {
	elapsed := resp.Metadata.ElapsedMs
	check := Check{
		Status:  StatusGood,
		Message: fmt.Sprintf("Response time is %.2fms", elapsed),
	}

	switch {
	case elapsed < performanceGoodMs:
	case elapsed < performanceWarningMs:
		check.Status = StatusWarning
	default:
		check.Status = StatusPoor
	}

	if elapsed >= performanceGoodMs {
		check.Recommendations = []string{
			"Consider implementing caching mechanisms",
			"Optimize database queries if applicable",
			"Enable compression for large responses",
		}
	}

	return check
}

func evaluateReliability(resp *http.ResponseAnalysis) Check {
	check := Check{
		Message: fmt.Sprintf("Status code: %d", resp.StatusCode),
	}

	switch {
	case resp.IsSuccess():
		check.Status = StatusGood
	case resp.StatusCode < 500:
		check.Status = StatusWarning
	default:
		check.Status = StatusPoor
	}

	if resp.StatusCode >= 400 {
		check.Recommendations = []string{
			"Implement proper error handling",
			"Include detailed error messages in responses",
		}
	}

	return check
}

func evaluateSecurity(resp *http.ResponseAnalysis) Check {
	missing := resp.Metadata.SecurityAudit.MissingHeaders()

	check := Check{
		Message: fmt.Sprintf("Missing %d security headers", len(missing)),
	}

	switch {
	case len(missing) == 0:
		check.Status = StatusGood
	case len(missing) <= 2:
		check.Status = StatusWarning
	default:
		check.Status = StatusPoor
	}

	for _, header := range missing {
		check.Recommendations = append(check.Recommendations,
			fmt.Sprintf("Add %s header for better security", header))
	}

	return check
}

func evaluateBestPractices(resp *http.ResponseAnalysis) Check {
	var issues []string

	if resp.Header("Content-Type") == "" {
		issues = append(issues, "Specify Content-Type header")
	}
	if resp.Header("Cache-Control") == "" {
		issues = append(issues, "Add Cache-Control header for better caching")
	}
	if resp.Metadata.SizeBytes > largeResponseBytes {
		issues = append(issues, "Large response size - consider pagination or data filtering")
	}

	check := Check{
		Status:          StatusGood,
		Message:         fmt.Sprintf("Found %d best practice issues", len(issues)),
		Recommendations: issues,
	}
	if len(issues) > 0 {
		check.Status = StatusWarning
	}

	return check
}

// Suggestions derives optimization hints from the request/response pair.
func Suggestions(req *analyzer.RequestAnalysis, resp *http.ResponseAnalysis) []string {
	var suggestions []string

	if _, ok := req.Headers.Details["Accept-Encoding"]; !ok {
		suggestions = append(suggestions, "Add 'Accept-Encoding' header to enable compression")
	}

	if _, ok := req.Headers.Details["If-None-Match"]; !ok {
		if resp.Header("Etag") != "" {
			suggestions = append(suggestions, "Implement ETag-based caching to reduce bandwidth")
		}
	}

	if resp.Metadata.RedirectCount > 0 {
		suggestions = append(suggestions, "Redirect detected - consider requesting the final URL directly")
	}

	if resp.Metadata.ElapsedMs > 500 {
		suggestions = append(suggestions, "High request time - consider implementing request caching or a CDN")
	}

	return suggestions
}
