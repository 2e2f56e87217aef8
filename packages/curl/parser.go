package curl

import (
	"regexp"
	"strings"
)

// DefaultMethod is the method a command gets when neither -X nor a data
// flag says otherwise.
const DefaultMethod = "GET"

// requestURLPattern accepts absolute http/https URLs with no embedded
// whitespace or quote characters.
var requestURLPattern = regexp.MustCompile(`^https?://[^\s'"]+$`)

// IsValidRequestURL reports whether s is an absolute http or https URL
// suitable for dispatch: non-empty remainder after the scheme and no
// embedded whitespace or quote characters.
func IsValidRequestURL(s string) bool {
	return requestURLPattern.MatchString(s)
}

// RequestDescriptor is the structured form of a curl invocation.
type RequestDescriptor struct {
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers"`
	Body    *string           `json:"body"`
}

// HasBody reports whether the command carried a data flag.
func (d *RequestDescriptor) HasBody() bool {
	return d.Body != nil
}

// Parse converts a raw curl command line into a RequestDescriptor. It
// returns a *ParseError when the command does not start with "curl", a
// value-taking flag has no value, no URL is present, or the URL is not an
// absolute http(s) URL.
//
// Flags are applied strictly left to right. A data flag promotes the method
// from the default GET to POST, but never overrides a method set explicitly
// with -X, not even "-X GET". The first bare token becomes the URL; any
// later bare token is ignored.
func Parse(raw string) (*RequestDescriptor, error) {
	tokens := Tokenize(raw)
	if len(tokens) == 0 || !strings.EqualFold(tokens[0], "curl") {
		return nil, parseErrorf("command must start with 'curl'")
	}

	d := &RequestDescriptor{
		Method:  DefaultMethod,
		Headers: make(map[string]string),
	}
	methodSet := false

	nextValue := func(i int, flag string) (string, error) {
		if i+1 >= len(tokens) {
			return "", parseErrorf("missing value for %s", flag)
		}
		return tokens[i+1], nil
	}

	i := 1
	for i < len(tokens) {
		token := tokens[i]

		if !strings.HasPrefix(token, "-") {
			// First bare token is the URL; extras are dropped rather than
			// treated as an error.
			if d.URL == "" {
				d.URL = StripQuotes(token)
			}
			i++
			continue
		}

		switch token {
		case "-H", "--header":
			value, err := nextValue(i, token)
			if err != nil {
				return nil, err
			}
			key, headerValue, ok := strings.Cut(StripQuotes(value), ":")
			if !ok {
				return nil, parseErrorf("invalid header %q: expected 'Name: value'", value)
			}
			d.Headers[strings.TrimSpace(key)] = strings.TrimSpace(headerValue)
			i += 2

		case "-X", "--request":
			value, err := nextValue(i, token)
			if err != nil {
				return nil, err
			}
			d.Method = strings.ToUpper(StripQuotes(value))
			methodSet = true
			i += 2

		case "-d", "--data", "--data-raw":
			value, err := nextValue(i, token)
			if err != nil {
				return nil, err
			}
			body := StripQuotes(value)
			d.Body = &body
			if !methodSet && d.Method == DefaultMethod {
				d.Method = "POST"
			}
			i += 2

		default:
			// Unknown flags never fail; they just carry no meaning here.
			i++
		}
	}

	if d.URL == "" {
		return nil, parseErrorf("no URL specified in curl command")
	}
	if !IsValidRequestURL(d.URL) {
		return nil, parseErrorf("invalid URL %q: must be an absolute http(s) URL", d.URL)
	}

	return d, nil
}
