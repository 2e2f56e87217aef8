package output

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"

	"github.com/abdul-hamid-achik/curlscope/packages/audit"
	"github.com/abdul-hamid-achik/curlscope/packages/health"
	"github.com/abdul-hamid-achik/curlscope/packages/pipeline"
)

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// FormatReport writes a full human-readable rendering of the report.
func (f *ConsoleFormatter) FormatReport(report *pipeline.Report) {
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	req := report.Request
	resp := report.Response

	fmt.Fprintf(f.writer, "\n%s %s\n", bold(req.Method), req.URL.Scheme+"://"+req.URL.Host+req.URL.Path+req.URL.QueryString+req.URL.Fragment)
	fmt.Fprintf(f.writer, "%s %s %s\n",
		f.statusColored(resp.StatusCode, fmt.Sprintf("%d %s", resp.StatusCode, resp.ReasonPhrase)),
		cyan(fmt.Sprintf("%.2fms", resp.Metadata.ElapsedMs)),
		cyan(resp.Metadata.HumanSize()))

	if resp.Metadata.RedirectCount > 0 {
		fmt.Fprintf(f.writer, "Redirected to: %s\n", resp.Metadata.FinalURL)
	}

	f.formatRequest(report)
	f.formatAudit(resp.Metadata.SecurityAudit)
	if report.Health != nil {
		f.formatHealth(report.Health)
	}
	if report.SchemaValidation != nil {
		f.formatSchema(report)
	}
	if len(report.Suggestions) > 0 {
		fmt.Fprintf(f.writer, "\n%s\n", bold("Suggestions"))
		for _, s := range report.Suggestions {
			fmt.Fprintf(f.writer, "  - %s\n", s)
		}
	}

	if f.verbose {
		f.formatVerbose(report)
	}

	fmt.Fprintf(f.writer, "\n")
}

func (f *ConsoleFormatter) formatRequest(report *pipeline.Report) {
	bold := color.New(color.Bold).SprintFunc()
	req := report.Request

	fmt.Fprintf(f.writer, "\n%s\n", bold("Request"))
	fmt.Fprintf(f.writer, "  Headers: %d\n", req.Headers.Count)

	auth := "none"
	if req.Authentication.Present {
		auth = req.Authentication.Type
		if auth == "" {
			auth = "unrecognized scheme"
		}
	}
	fmt.Fprintf(f.writer, "  Authentication: %s\n", auth)

	if req.Body.Present {
		fmt.Fprintf(f.writer, "  Body: %s, %d bytes\n", req.Body.Format, req.Body.SizeBytes)
	}

	fmt.Fprintf(f.writer, "  Security score: %d (%s)\n", req.SecurityScore.Score, req.SecurityScore.Grade)
}

func (f *ConsoleFormatter) formatAudit(result audit.Audit) {
	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Fprintf(f.writer, "\n%s\n", bold("Security headers"))
	for _, name := range audit.HeaderNames() {
		check := result[name]
		if check.Present {
			fmt.Fprintf(f.writer, "  %s %s: %s\n", green("✓"), name, check.Value)
		} else {
			fmt.Fprintf(f.writer, "  %s %s (%s)\n", red("✗"), name, check.Description)
		}
	}
}

func (f *ConsoleFormatter) formatHealth(report *health.Report) {
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(f.writer, "\n%s\n", bold("Health"))
	checks := []struct {
		name  string
		check health.Check
	}{
		{"performance", report.Performance},
		{"reliability", report.Reliability},
		{"security", report.Security},
		{"best practices", report.BestPractices},
	}
	for _, c := range checks {
		fmt.Fprintf(f.writer, "  %s %s: %s\n", f.healthSymbol(c.check.Status), c.name, c.check.Message)
	}
}

func (f *ConsoleFormatter) formatSchema(report *pipeline.Report) {
	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Fprintf(f.writer, "\n%s\n", bold("Schema validation"))
	if report.SchemaValidation.Valid {
		fmt.Fprintf(f.writer, "  %s body matches %s\n", green("✓"), report.SchemaValidation.SchemaPath)
		return
	}
	fmt.Fprintf(f.writer, "  %s body does not match %s\n", red("✗"), report.SchemaValidation.SchemaPath)
	for _, e := range report.SchemaValidation.Errors {
		fmt.Fprintf(f.writer, "    %s\n", e)
	}
}

func (f *ConsoleFormatter) formatVerbose(report *pipeline.Report) {
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(f.writer, "\n%s\n", bold("Response headers"))
	names := make([]string, 0, len(report.Response.Headers))
	for name := range report.Response.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, value := range report.Response.Headers[name] {
			fmt.Fprintf(f.writer, "  %s: %s\n", name, value)
		}
	}

	if report.Response.Content != "" {
		fmt.Fprintf(f.writer, "\n%s\n%s\n", bold("Body"), report.Response.Content)
	}
}

func (f *ConsoleFormatter) statusColored(code int, text string) string {
	switch {
	case code >= 500:
		return color.New(color.FgRed).Sprint(text)
	case code >= 400:
		return color.New(color.FgYellow).Sprint(text)
	case code >= 300:
		return color.New(color.FgCyan).Sprint(text)
	default:
		return color.New(color.FgGreen).Sprint(text)
	}
}

func (f *ConsoleFormatter) healthSymbol(status health.Status) string {
	switch status {
	case health.StatusGood:
		return color.New(color.FgGreen).Sprint("●")
	case health.StatusWarning:
		return color.New(color.FgYellow).Sprint("●")
	default:
		return color.New(color.FgRed).Sprint("●")
	}
}

// FormatError writes a terminal failure.
func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}
