package http

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// NormalizeBody produces the two textual renderings of a response body:
// the human-readable content and the compact raw form.
//
// JSON bodies return an indented rendering and a single-line compact one.
// XML bodies return a re-indented rendering with the raw text untouched.
// Everything else returns the identical raw text twice. A body that fails
// to parse as its declared type falls back to raw text.
func NormalizeBody(contentType string, raw []byte) (content, rawBody string) {
	ct := strings.ToLower(contentType)

	switch {
	case strings.Contains(ct, "application/json") && gjson.ValidBytes(raw):
		return string(pretty.Pretty(raw)), string(pretty.Ugly(raw))

	case strings.Contains(ct, "application/xml") || strings.Contains(ct, "text/xml"):
		if indented, err := indentXML(raw); err == nil {
			return indented, string(raw)
		}
		return string(raw), string(raw)

	default:
		return string(raw), string(raw)
	}
}

func indentXML(raw []byte) (string, error) {
	var buf bytes.Buffer
	dec := xml.NewDecoder(bytes.NewReader(raw))
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		// Drop whitespace-only text nodes so the re-indent stays clean.
		if cd, ok := tok.(xml.CharData); ok && len(bytes.TrimSpace(cd)) == 0 {
			continue
		}
		if err := enc.EncodeToken(tok); err != nil {
			return "", err
		}
	}

	if err := enc.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
