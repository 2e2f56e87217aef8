package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/abdul-hamid-achik/curlscope/packages/pipeline"
)

// JSONFormatter writes reports as indented JSON.
type JSONFormatter struct {
	writer io.Writer
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

// FormatReport encodes the report.
func (f *JSONFormatter) FormatReport(report *pipeline.Report) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
