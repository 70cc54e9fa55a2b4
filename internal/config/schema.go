package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://mathcaptcha-config.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	var def any
	if err := json.Unmarshal(schemaJSON, &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
})

// validateDocument checks a decoded config document against the embedded
// schema. doc may come from either YAML or JSON; it is round-tripped
// through encoding/json so both decode to the same value shapes.
func validateDocument(doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal config document: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("parse config document: %w", err)
	}

	compiled, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
