package middleware

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	contextutils "ecoatlas/internal/utils"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Request body schema names, one per embedded schemas/<name>.json file.
const (
	SchemaCreateProblem  = "create_problem"
	SchemaCreateSolution = "create_solution"
	SchemaCreateIdea     = "create_idea"
	SchemaUpdateIdea     = "update_idea"
)

// SchemaLoader holds the compiled JSON Schemas for request bodies.
type SchemaLoader struct {
	schemas map[string]*gojsonschema.Schema
}

// NewSchemaLoader compiles every embedded schema.
func NewSchemaLoader() (*SchemaLoader, error) {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, contextutils.WrapError(err, "failed to read embedded schemas")
	}

	sl := &SchemaLoader{schemas: make(map[string]*gojsonschema.Schema, len(entries))}
	for _, entry := range entries {
		data, err := schemaFS.ReadFile(path.Join("schemas", entry.Name()))
		if err != nil {
			return nil, contextutils.WrapErrorf(err, "failed to read schema %s", entry.Name())
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			return nil, contextutils.WrapErrorf(err, "failed to compile schema %s", entry.Name())
		}
		sl.schemas[strings.TrimSuffix(entry.Name(), ".json")] = schema
	}
	return sl, nil
}

// Names lists the loaded schema names in sorted order.
func (sl *SchemaLoader) Names() []string {
	names := make([]string, 0, len(sl.schemas))
	for name := range sl.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a schema with the given name was loaded.
func (sl *SchemaLoader) Has(name string) bool {
	_, ok := sl.schemas[name]
	return ok
}

// ValidateJSON checks a raw JSON document against the named schema. Shape
// violations come back as a VALIDATION_FAILED AppError listing each field.
func (sl *SchemaLoader) ValidateJSON(name string, body []byte) error {
	schema, ok := sl.schemas[name]
	if !ok {
		return contextutils.WrapErrorf(contextutils.ErrInternalError, "schema %s not found", name)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeInvalidFormat, contextutils.SeverityWarn,
			"Invalid JSON body", "", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return contextutils.NewAppError(contextutils.ErrorCodeValidationFailed, contextutils.SeverityWarn,
		"Invalid request body", strings.Join(problems, "; "))
}
