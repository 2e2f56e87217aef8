package analyzer

import "strings"

// HeaderSecurity reports request-side header hygiene. SecurityHeaders maps
// the audited request header names to their presence.
type HeaderSecurity struct {
	ContentTypeSet  bool            `json:"contentTypeSet"`
	AcceptSet       bool            `json:"acceptSet"`
	OriginSet       bool            `json:"originSet"`
	CacheControlSet bool            `json:"cacheControlSet"`
	SecurityHeaders map[string]bool `json:"securityHeaders"`
}

// ScoreCard is an overall security grade for the outgoing request.
type ScoreCard struct {
	Score           int      `json:"score"`
	Grade           string   `json:"grade"`
	Recommendations []string `json:"recommendations"`
}

// requestSecurityHeaders are the request headers the score card checks for.
var requestSecurityHeaders = []string{
	"x-csrf-token",
	"x-xss-protection",
	"x-content-type-options",
}

// sensitiveKeywords flag query parameters that look like credentials.
var sensitiveKeywords = []string{
	"password", "token", "key", "secret", "auth",
	"pwd", "pass", "credential", "private",
}

func hasSensitiveParams(rawQuery string) bool {
	if rawQuery == "" {
		return false
	}
	for _, param := range strings.Split(strings.ToLower(rawQuery), "&") {
		for _, keyword := range sensitiveKeywords {
			if strings.Contains(param, keyword) {
				return true
			}
		}
	}
	return false
}

func analyzeRequestHeaders(headers map[string]string) HeaderSecurity {
	has := func(name string) bool {
		_, ok := headerValue(headers, name)
		return ok
	}

	security := HeaderSecurity{
		ContentTypeSet:  has("Content-Type"),
		AcceptSet:       has("Accept"),
		OriginSet:       has("Origin"),
		CacheControlSet: has("Cache-Control"),
		SecurityHeaders: make(map[string]bool, len(requestSecurityHeaders)),
	}
	for _, name := range requestSecurityHeaders {
		security.SecurityHeaders[name] = has(name)
	}

	return security
}

// scoreRequest grades the request: HTTP costs 20 points, missing
// authentication 30 (a medium-strength scheme 15), each missing request
// security header 5, and sensitive query parameters 10.
func scoreRequest(analysis *RequestAnalysis) ScoreCard {
	score := 100
	var recommendations []string

	if !analysis.URL.Security.UsesHTTPS {
		score -= 20
		recommendations = append(recommendations, "Switch to HTTPS for secure communication")
	}

	switch {
	case !analysis.Authentication.Present:
		score -= 30
		recommendations = append(recommendations, "Implement authentication for secure access")
	case analysis.Authentication.SecurityLevel == SecurityMedium:
		score -= 15
		recommendations = append(recommendations, "Consider using stronger authentication method")
	}

	for _, name := range requestSecurityHeaders {
		if !analysis.Headers.Security.SecurityHeaders[name] {
			score -= 5
			recommendations = append(recommendations, "Add "+name+" security header")
		}
	}

	if analysis.URL.Security.HasSensitiveParams {
		score -= 10
		recommendations = append(recommendations, "Remove sensitive data from URL parameters")
	}

	if score < 0 {
		score = 0
	}

	return ScoreCard{
		Score:           score,
		Grade:           gradeFor(score),
		Recommendations: recommendations,
	}
}

func gradeFor(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
