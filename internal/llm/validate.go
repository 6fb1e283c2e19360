package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchemas caches compiled schemas by Schema.Name.
var compiledSchemas sync.Map // map[string]*jsonschema.Schema

// validateResponse checks raw against schema. A nil schema accepts
// anything. Failures are *ErrInvalidResponse.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	invalid := func(format string, args ...any) error {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf(format, args...)}
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return invalid("invalid JSON: %w", err)
	}
	compiled, err := compileSchema(schema)
	if err != nil {
		return invalid("compile schema %q: %w", schema.Name, err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return invalid("schema validation failed: %w", err)
	}
	return nil
}

func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := compiledSchemas.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value, not Go maps with typed slices.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := "schema://" + schema.Name + ".json"
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	compiledSchemas.Store(schema.Name, compiled)
	return compiled, nil
}
