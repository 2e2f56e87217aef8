// Package pipeline sequences command parsing, request analysis, and
// response execution into a single inspection report.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/abdul-hamid-achik/curlscope/packages/analyzer"
	"github.com/abdul-hamid-achik/curlscope/packages/curl"
	"github.com/abdul-hamid-achik/curlscope/packages/health"
	"github.com/abdul-hamid-achik/curlscope/packages/http"
)

// Report is the combined result of one analysis run. It serializes to JSON
// for the presentation layer.
type Report struct {
	ID               string                    `json:"id"`
	AnalyzedAt       time.Time                 `json:"analyzedAt"`
	Command          string                    `json:"command"`
	Request          *analyzer.RequestAnalysis `json:"request"`
	Response         *http.ResponseAnalysis    `json:"response"`
	Health           *health.Report            `json:"health"`
	Suggestions      []string                  `json:"suggestions,omitempty"`
	SchemaValidation *SchemaValidation         `json:"schemaValidation,omitempty"`
}

// Pipeline runs the three stages. It holds no per-run state, so one
// Pipeline serves concurrent Run calls.
type Pipeline struct {
	analyzer   *analyzer.Analyzer
	client     *http.Client
	schemaPath string
}

// Option is a functional option for Pipeline.
type Option func(*Pipeline)

// WithClient replaces the default HTTP client.
func WithClient(c *http.Client) Option {
	return func(p *Pipeline) {
		p.client = c
	}
}

// WithAnalyzer replaces the default request analyzer.
func WithAnalyzer(a *analyzer.Analyzer) Option {
	return func(p *Pipeline) {
		p.analyzer = a
	}
}

// WithSchemaFile validates JSON response bodies against the JSON Schema at
// path and records the outcome in the report.
func WithSchemaFile(path string) Option {
	return func(p *Pipeline) {
		p.schemaPath = path
	}
}

// New creates a Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		analyzer: analyzer.New(),
		client:   http.NewClient(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run parses the command, analyzes the request, executes it, and analyzes
// the response. On any failure the caller gets only the error, never a
// partial report: a *curl.ParseError before dispatch, a *http.NetworkError
// for transport faults. HTTP error statuses are still a successful run.
func (p *Pipeline) Run(ctx context.Context, command string) (*Report, error) {
	descriptor, err := curl.Parse(command)
	if err != nil {
		return nil, err
	}

	request := p.analyzer.Analyze(descriptor)

	response, err := p.client.Execute(ctx, descriptor)
	if err != nil {
		return nil, err
	}

	report := &Report{
		ID:          uuid.NewString(),
		AnalyzedAt:  time.Now().UTC().Round(0),
		Command:     command,
		Request:     request,
		Response:    response,
		Health:      health.Evaluate(response),
		Suggestions: health.Suggestions(request, response),
	}

	if p.schemaPath != "" {
		report.SchemaValidation = validateSchema(p.schemaPath, response)
	}

	return report, nil
}
