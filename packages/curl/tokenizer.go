package curl

import "strings"

// Tokenize splits a command line into shell-like word tokens. Runs of
// whitespace collapse to single separators, and single- or double-quoted
// spans count as part of the surrounding word. Quote characters are kept in
// the token text; callers strip them where the value semantics require it.
//
// An unterminated quote consumes the rest of the input.
func Tokenize(raw string) []string {
	// Collapse newlines, tabs and repeated spaces first so that multi-line
	// commands pasted from a terminal tokenize the same as one-liners.
	raw = strings.Join(strings.Fields(raw), " ")

	var tokens []string
	var current strings.Builder
	var quote rune // active quote character, 0 when outside a quoted span

	for _, r := range raw {
		switch {
		case quote != 0:
			current.WriteRune(r)
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
			current.WriteRune(r)
		case r == ' ':
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// StripQuotes removes one matching pair of surrounding single or double
// quotes, if present. Inner quotes are left alone.
func StripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
