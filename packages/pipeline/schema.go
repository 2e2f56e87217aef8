package pipeline

import (
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"

	"github.com/abdul-hamid-achik/curlscope/packages/http"
)

// SchemaValidation records whether a JSON response body satisfied the
// configured JSON Schema. Validation problems never fail the run; they are
// reported here instead.
type SchemaValidation struct {
	SchemaPath string   `json:"schemaPath"`
	Valid      bool     `json:"valid"`
	Errors     []string `json:"errors,omitempty"`
}

func validateSchema(path string, resp *http.ResponseAnalysis) *SchemaValidation {
	validation := &SchemaValidation{SchemaPath: path}

	if !resp.IsJSON() || resp.RawBody == "" {
		validation.Errors = []string{"response body is not JSON; nothing to validate"}
		return validation
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		validation.Errors = []string{err.Error()}
		return validation
	}

	schemaLoader := gojsonschema.NewReferenceLoader("file://" + filepath.ToSlash(abs))
	documentLoader := gojsonschema.NewStringLoader(resp.RawBody)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		validation.Errors = []string{err.Error()}
		return validation
	}

	validation.Valid = result.Valid()
	for _, desc := range result.Errors() {
		validation.Errors = append(validation.Errors, desc.String())
	}

	return validation
}
