package curl

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{
			input:    `curl -X POST https://example.com`,
			expected: []string{"curl", "-X", "POST", "https://example.com"},
		},
		{
			input:    `curl -d "hello world" https://example.com`,
			expected: []string{"curl", "-d", `"hello world"`, "https://example.com"},
		},
		{
			input:    `curl -H 'Content-Type: application/json'`,
			expected: []string{"curl", "-H", `'Content-Type: application/json'`},
		},
		{
			// Double quotes inside a single-quoted span stay literal.
			input:    `curl -d '{"key": "value"}'`,
			expected: []string{"curl", "-d", `'{"key": "value"}'`},
		},
		{
			// Adjacent quoted and unquoted runs concatenate into one word.
			input:    `curl -d 'a b'c"d e"`,
			expected: []string{"curl", "-d", `'a b'c"d e"`},
		},
		{
			// Whitespace runs and newlines collapse before scanning.
			input:    "curl   -X \n\t POST   https://example.com  ",
			expected: []string{"curl", "-X", "POST", "https://example.com"},
		},
		{
			input:    "",
			expected: nil,
		},
		{
			// Unterminated quote runs to end of input.
			input:    `curl -d 'unterminated body`,
			expected: []string{"curl", "-d", `'unterminated body`},
		},
	}

	for _, tt := range tests {
		tokens := Tokenize(tt.input)
		if !reflect.DeepEqual(tokens, tt.expected) {
			t.Errorf("Tokenize(%q): got %q, expected %q", tt.input, tokens, tt.expected)
		}
	}
}

func TestTokenize_Deterministic(t *testing.T) {
	input := `curl -H 'A: 1' -H "B: 2" https://example.com/x`
	first := Tokenize(input)
	second := Tokenize(input)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical token sequences, got %q and %q", first, second)
	}
}

func TestStripQuotes(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`'hello'`, "hello"},
		{`"hello"`, "hello"},
		{`hello`, "hello"},
		{`'hello"`, `'hello"`}, // mismatched pair stays
		{`''`, ""},
		{`'`, `'`},
		{`'a'b'`, `a'b`}, // only the outer pair goes
	}

	for _, tt := range tests {
		if got := StripQuotes(tt.input); got != tt.expected {
			t.Errorf("StripQuotes(%q): got %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
