package cmd

import (
	"errors"

	"github.com/abdul-hamid-achik/curlscope/packages/curl"
	"github.com/abdul-hamid-achik/curlscope/packages/http"
)

// Exit codes for curlscope CLI
const (
	// ExitSuccess indicates the analysis completed
	ExitSuccess = 0

	// ExitFailure indicates a generic failure
	ExitFailure = 1

	// ExitParseError indicates the curl command could not be parsed
	ExitParseError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitNetworkError indicates a network/connection error
	ExitNetworkError = 4

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

func exitCode(err error) int {
	var parseErr *curl.ParseError
	if errors.As(err, &parseErr) {
		return ExitParseError
	}
	var netErr *http.NetworkError
	if errors.As(err, &netErr) {
		return ExitNetworkError
	}
	var cfgErr *configError
	if errors.As(err, &cfgErr) {
		return ExitConfigError
	}
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		return ExitUsageError
	}
	return ExitFailure
}

// configError marks failures loading or interpreting configuration.
type configError struct{ err error }

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// usageError marks invalid flag or argument combinations.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }
