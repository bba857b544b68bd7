package source

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// compileSchemas builds the per-kind validators from the embedded schema
// documents. Ministries are markdown and have no JSON schema.
func compileSchemas() (map[Kind]*jsonschema.Schema, error) {
	compiled := make(map[Kind]*jsonschema.Schema)
	for _, kind := range []Kind{KindEvents, KindSermons, KindSpeakers, KindSeries} {
		name := fmt.Sprintf("schemas/%s.schema.json", kind)
		raw, err := schemaFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("source: read schema %s: %w", name, err)
		}

		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("source: add schema %s: %w", name, err)
		}
		schema, err := compiler.Compile(name)
		if err != nil {
			return nil, fmt.Errorf("source: compile schema %s: %w", name, err)
		}
		compiled[kind] = schema
	}
	return compiled, nil
}

// validateRecord checks a JSON record against the kind schema. Validation
// failures carry the go-errors validation category so callers can separate
// bad content from I/O problems.
func validateRecord(schema *jsonschema.Schema, rec Record) error {
	if schema == nil {
		return nil
	}

	var value any
	if err := json.Unmarshal(rec.Data, &value); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation,
			fmt.Sprintf("source: record %s is not valid JSON", rec.Path)).
			WithTextCode(recordInvalidJSONCode)
	}

	if err := schema.Validate(value); err != nil {
		var verr *jsonschema.ValidationError
		detail := err.Error()
		if errors.As(err, &verr) {
			detail = flattenValidationError(verr)
		}
		return goerrors.Wrap(ErrSchemaViolation, goerrors.CategoryValidation,
			fmt.Sprintf("source: record %s: %s", rec.Path, detail)).
			WithTextCode(recordSchemaViolationCode)
	}
	return nil
}

const (
	recordInvalidJSONCode     = "SOURCE_RECORD_INVALID_JSON"
	recordSchemaViolationCode = "SOURCE_RECORD_SCHEMA_VIOLATION"
)

func flattenValidationError(err *jsonschema.ValidationError) string {
	if err == nil {
		return ""
	}
	parts := []string{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			location := strings.TrimSpace(node.InstanceLocation)
			if location == "" {
				location = "#"
			}
			parts = append(parts, fmt.Sprintf("%s: %s", location, strings.TrimSpace(node.Message)))
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return strings.Join(parts, "; ")
}
