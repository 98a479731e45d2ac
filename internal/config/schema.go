// Where: internal/config/schema.go
// What: JSON-schema validation for migration rule entries.
// Why: Reject malformed rules with precise field-level errors before compiling them.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"sigs.k8s.io/yaml"
)

//go:embed schema/migration.schema.json
var migrationSchema []byte

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("migration.schema.json", bytes.NewReader(migrationSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("migration.schema.json")
	})
	return compiledSchema, schemaErr
}

// validateRuleBytes checks one YAML rule entry against the embedded schema.
func validateRuleBytes(content []byte) error {
	sch, err := loadSchema()
	if err != nil {
		return err
	}

	jsonData, err := yaml.YAMLToJSON(content)
	if err != nil {
		return fmt.Errorf("convert yaml to json: %w", err)
	}

	var value any
	if err := json.Unmarshal(jsonData, &value); err != nil {
		return fmt.Errorf("decode rule: %w", err)
	}

	return sch.Validate(value)
}
