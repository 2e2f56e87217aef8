package curl

import "fmt"

// ParseError reports a malformed or incomplete curl command: a missing
// invocation keyword, a flag without its value, or a missing/invalid URL.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Reason
}

func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{Reason: fmt.Sprintf(format, args...)}
}
