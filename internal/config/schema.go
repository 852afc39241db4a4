package config

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	_ "embed"
)

//go:embed defaults/quest.schema.json
var questSchemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("quest.schema.json", questSchemaJSON)
	})
	return schema, schemaErr
}

// validateSchema checks the raw document shape before it is decoded into
// QuestConfig, so typos in keys are reported instead of silently ignored.
func validateSchema(data []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse yaml: %w", err)
	}
	if doc == nil {
		return nil // empty file keeps every default
	}

	// The validator expects encoding/json value types.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert yaml: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("convert yaml: %w", err)
	}

	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
