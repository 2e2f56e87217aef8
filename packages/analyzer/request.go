package analyzer

import (
	"encoding/xml"
	"io"
	"net/url"
	"strings"

	"github.com/abdul-hamid-achik/curlscope/packages/curl"
	"github.com/tidwall/gjson"
)

const (
	// PreviewLimit is the maximum number of characters shown in a body
	// preview before truncation.
	PreviewLimit = 200
	previewMark  = "..."
)

// Body format labels.
const (
	BodyFormatJSON = "json"
	BodyFormatXML  = "xml"
	BodyFormatRaw  = "raw"
)

// RequestAnalysis is the full inspection report for an outgoing request.
type RequestAnalysis struct {
	Method         string        `json:"method"`
	URL            URLBreakdown  `json:"urlBreakdown"`
	Headers        HeaderSummary `json:"headerSummary"`
	Authentication Finding       `json:"authentication"`
	Body           BodySummary   `json:"body"`
	SecurityScore  ScoreCard     `json:"securityScore"`
}

// URLBreakdown decomposes the target URL. QueryString keeps its leading "?"
// and Fragment its leading "#"; both are empty strings when absent.
type URLBreakdown struct {
	Scheme      string      `json:"scheme"`
	Host        string      `json:"host"`
	Path        string      `json:"path"`
	QueryString string      `json:"queryString"`
	Fragment    string      `json:"fragment"`
	Security    URLSecurity `json:"security"`
}

// URLSecurity holds transport-level observations about the URL.
type URLSecurity struct {
	UsesHTTPS          bool     `json:"usesHttps"`
	HasSensitiveParams bool     `json:"hasSensitiveParams"`
	Recommendations    []string `json:"recommendations"`
}

// HeaderSummary reports the raw header count and the unmodified map.
type HeaderSummary struct {
	Count    int               `json:"count"`
	Details  map[string]string `json:"details"`
	Security HeaderSecurity    `json:"securityAnalysis"`
}

// BodySummary describes the request body, if any. SizeBytes counts the
// UTF-8 encoding, not characters.
type BodySummary struct {
	Present   bool   `json:"present"`
	SizeBytes int    `json:"sizeBytes,omitempty"`
	Format    string `json:"format,omitempty"`
	Preview   string `json:"preview,omitempty"`
}

// Analyzer produces RequestAnalysis reports. It is pure and safe for
// concurrent use.
type Analyzer struct {
	classifier *Classifier
}

// Option is a functional option for Analyzer.
type Option func(*Analyzer)

// WithClassifier replaces the default authentication classifier.
func WithClassifier(c *Classifier) Option {
	return func(a *Analyzer) {
		a.classifier = c
	}
}

// New creates an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{classifier: NewClassifier()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze inspects a request descriptor. It performs no I/O and never fails
// for a descriptor that passed parsing.
func (a *Analyzer) Analyze(d *curl.RequestDescriptor) *RequestAnalysis {
	analysis := &RequestAnalysis{
		Method: d.Method,
		URL:    breakdownURL(d.URL),
		Headers: HeaderSummary{
			Count:    len(d.Headers),
			Details:  d.Headers,
			Security: analyzeRequestHeaders(d.Headers),
		},
		Authentication: a.classifier.Classify(d.Headers),
		Body:           summarizeBody(d.Body),
	}

	if !analysis.URL.Security.UsesHTTPS {
		analysis.URL.Security.Recommendations = append(
			analysis.URL.Security.Recommendations,
			"Consider using HTTPS for secure data transmission",
		)
	}

	analysis.SecurityScore = scoreRequest(analysis)
	return analysis
}

// Analyze runs a default Analyzer over the descriptor.
func Analyze(d *curl.RequestDescriptor) *RequestAnalysis {
	return New().Analyze(d)
}

func breakdownURL(raw string) URLBreakdown {
	u, err := url.Parse(raw)
	if err != nil {
		// Parsed descriptors carry validated URLs; an unparseable one only
		// shows up when callers build descriptors by hand.
		u = &url.URL{}
	}

	b := URLBreakdown{
		Scheme: u.Scheme,
		Host:   u.Host,
		Path:   u.Path,
	}
	if u.RawQuery != "" {
		b.QueryString = "?" + u.RawQuery
	}
	if u.Fragment != "" {
		b.Fragment = "#" + u.Fragment
	}

	b.Security = URLSecurity{
		UsesHTTPS:          u.Scheme == "https",
		HasSensitiveParams: hasSensitiveParams(u.RawQuery),
	}

	return b
}

func summarizeBody(body *string) BodySummary {
	if body == nil {
		return BodySummary{Present: false}
	}

	summary := BodySummary{
		Present:   true,
		SizeBytes: len(*body),
		Format:    detectBodyFormat(*body),
		Preview:   *body,
	}

	if runes := []rune(*body); len(runes) > PreviewLimit {
		summary.Preview = string(runes[:PreviewLimit]) + previewMark
	}

	return summary
}

func detectBodyFormat(body string) string {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return BodyFormatRaw
	}
	if gjson.Valid(trimmed) {
		return BodyFormatJSON
	}
	if looksLikeXML(trimmed) {
		return BodyFormatXML
	}
	return BodyFormatRaw
}

func looksLikeXML(s string) bool {
	dec := xml.NewDecoder(strings.NewReader(s))
	sawElement := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return sawElement
		}
		if err != nil {
			return false
		}
		if _, ok := tok.(xml.StartElement); ok {
			sawElement = true
		}
	}
}
