package llm

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaSet compiles each named schema once.
type schemaSet struct {
	mu       sync.Mutex
	compiled map[string]*jsonschema.Schema
}

var schemas = &schemaSet{compiled: make(map[string]*jsonschema.Schema)}

func (s *schemaSet) get(schema *Schema) (*jsonschema.Schema, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.compiled[schema.Name]; ok {
		return c, nil
	}

	// Round-trip through encoding/json so the compiler sees plain JSON
	// values rather than Go-typed slices and maps.
	raw, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %q: %w", schema.Name, err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", schema.Name, err)
	}

	url := "mem://llm/" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %q: %w", schema.Name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}
	s.compiled[schema.Name] = compiled
	return compiled, nil
}

// check validates raw against schema. A nil schema accepts anything.
func (s *schemaSet) check(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("not JSON: %w", err)}
	}
	compiled, err := s.get(schema)
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	if err := compiled.Validate(v); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	return nil
}
