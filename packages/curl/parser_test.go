package curl

import (
	"errors"
	"strings"
	"testing"
)

func TestParse_SimpleGet(t *testing.T) {
	d, err := Parse(`curl https://example.com`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Method != "GET" {
		t.Errorf("expected method GET, got %s", d.Method)
	}
	if d.URL != "https://example.com" {
		t.Errorf("expected URL https://example.com, got %s", d.URL)
	}
	if len(d.Headers) != 0 {
		t.Errorf("expected no headers, got %v", d.Headers)
	}
	if d.Body != nil {
		t.Errorf("expected nil body, got %q", *d.Body)
	}
}

func TestParse_ExplicitMethodWithData(t *testing.T) {
	d, err := Parse(`curl -X POST -d '{"a":1}' https://example.com`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Method != "POST" {
		t.Errorf("expected method POST, got %s", d.Method)
	}
	if d.Body == nil || *d.Body != `{"a":1}` {
		t.Errorf("expected body {\"a\":1}, got %v", d.Body)
	}
}

func TestParse_ImplicitPost(t *testing.T) {
	d, err := Parse(`curl -d 'x' https://example.com`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Method != "POST" {
		t.Errorf("expected implicit POST, got %s", d.Method)
	}
}

func TestParse_PromotionOrderSensitivity(t *testing.T) {
	// An explicit -X GET before the data flag blocks promotion.
	d, err := Parse(`curl -X GET -d 'x' https://example.com`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Method != "GET" {
		t.Errorf("explicit -X GET then -d: expected GET, got %s", d.Method)
	}

	// Promotion fires first, then a later -X overwrites it.
	d, err = Parse(`curl -d 'x' -X GET https://example.com`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Method != "GET" {
		t.Errorf("-d then -X GET: expected GET, got %s", d.Method)
	}

	// A later -X with a different verb also wins over the promotion.
	d, err = Parse(`curl -d 'x' -X PUT https://example.com`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Method != "PUT" {
		t.Errorf("-d then -X PUT: expected PUT, got %s", d.Method)
	}
}

func TestParse_MethodUppercased(t *testing.T) {
	d, err := Parse(`curl -X delete https://example.com`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Method != "DELETE" {
		t.Errorf("expected DELETE, got %s", d.Method)
	}
}

func TestParse_HeaderSplitOnFirstColon(t *testing.T) {
	d, err := Parse(`curl -H 'X-Custom: a:b' https://example.com`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Headers["X-Custom"] != "a:b" {
		t.Errorf("expected header value a:b, got %q", d.Headers["X-Custom"])
	}
}

func TestParse_HeaderLastWriteWins(t *testing.T) {
	d, err := Parse(`curl -H 'X-Foo: one' -H 'X-Foo: two' https://example.com`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Headers["X-Foo"] != "two" {
		t.Errorf("expected later header to win, got %q", d.Headers["X-Foo"])
	}
	if len(d.Headers) != 1 {
		t.Errorf("expected a single header entry, got %v", d.Headers)
	}
}

func TestParse_HeaderKeysAndValuesTrimmed(t *testing.T) {
	d, err := Parse(`curl -H '  X-Foo :  bar  ' https://example.com`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Headers["X-Foo"] != "bar" {
		t.Errorf("expected trimmed key and value, got %v", d.Headers)
	}
}

func TestParse_FirstURLWins(t *testing.T) {
	// Extra bare tokens are dropped, not errors.
	d, err := Parse(`curl https://first.example.com https://second.example.com`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.URL != "https://first.example.com" {
		t.Errorf("expected first URL to win, got %s", d.URL)
	}
}

func TestParse_QuotedURL(t *testing.T) {
	d, err := Parse(`curl 'https://example.com/path?a=1&b=2'`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.URL != "https://example.com/path?a=1&b=2" {
		t.Errorf("expected quotes stripped from URL, got %s", d.URL)
	}
}

func TestParse_UnknownFlagsIgnored(t *testing.T) {
	d, err := Parse(`curl -k -L --compressed https://example.com`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.URL != "https://example.com" {
		t.Errorf("expected URL despite unknown flags, got %s", d.URL)
	}
	if d.Method != "GET" {
		t.Errorf("expected GET, got %s", d.Method)
	}
}

func TestParse_CaseInsensitiveInvocation(t *testing.T) {
	if _, err := Parse(`CURL https://example.com`); err != nil {
		t.Errorf("expected uppercase invocation to parse, got %v", err)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		command string
		wantMsg string
	}{
		{"not curl", `wget https://example.com`, "must start with 'curl'"},
		{"empty", ``, "must start with 'curl'"},
		{"no url", `curl -H 'X-Foo: bar'`, "no URL"},
		{"trailing header flag", `curl https://example.com -H`, "missing value for -H"},
		{"trailing request flag", `curl https://example.com -X`, "missing value for -X"},
		{"trailing data flag", `curl https://example.com -d`, "missing value for -d"},
		{"bad scheme", `curl ftp://example.com`, "invalid URL"},
		{"no scheme", `curl example.com/path`, "invalid URL"},
		{"header without colon", `curl -H 'NotAHeader' https://example.com`, "invalid header"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.command)
			if err == nil {
				t.Fatalf("Parse(%q): expected error", tt.command)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Parse(%q): expected *ParseError, got %T", tt.command, err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Parse(%q): error %q does not contain %q", tt.command, err, tt.wantMsg)
			}
		})
	}
}

func TestIsValidRequestURL(t *testing.T) {
	tests := []struct {
		url   string
		valid bool
	}{
		{"https://example.com", true},
		{"http://example.com:8080/path?q=1#frag", true},
		{"ftp://example.com", false},
		{"example.com", false},
		{"https://", false},
		{"", false},
		{"https://exa mple.com", false},
		{`https://example.com/'quoted'`, false},
		{`https://example.com/"quoted"`, false},
	}

	for _, tt := range tests {
		if got := IsValidRequestURL(tt.url); got != tt.valid {
			t.Errorf("IsValidRequestURL(%q): got %v, expected %v", tt.url, got, tt.valid)
		}
	}
}
