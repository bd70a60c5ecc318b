// Package schema converts Go types into JSON-Schema documents for
// structured model output, backed by github.com/google/jsonschema-go.
// It is the only package that knows the schema library; adapters see the
// result through the narrow llm.SchemaDescriptor interface.
package schema

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/precishq/precis/pkg/llm"
)

// Descriptor lazily converts a Go type into a JSON-Schema document. It
// implements llm.SchemaDescriptor, so conversion failures surface at
// payload build time as per-call validation errors.
type Descriptor struct {
	infer func() (*jsonschema.Schema, error)
}

var _ llm.SchemaDescriptor = (*Descriptor)(nil)

// For returns a descriptor for T's reflected schema.
func For[T any]() *Descriptor {
	return &Descriptor{
		infer: func() (*jsonschema.Schema, error) {
			return jsonschema.For[T](nil)
		},
	}
}

// JSONSchema implements llm.SchemaDescriptor. The inferred schema is
// marshaled and decoded back into a plain map so callers can walk and
// sanitize it without knowing the library's schema type.
func (d *Descriptor) JSONSchema() (map[string]any, error) {
	s, err := d.infer()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Validator checks decoded JSON values against a resolved schema. Build it
// once and reuse it; resolution is not free.
type Validator struct {
	resolved *jsonschema.Resolved
}

// NewValidator resolves T's schema for validation.
func NewValidator[T any]() (*Validator, error) {
	s, err := jsonschema.For[T](nil)
	if err != nil {
		return nil, err
	}
	resolved, err := s.Resolve(nil)
	if err != nil {
		return nil, err
	}
	return &Validator{resolved: resolved}, nil
}

// Validate reports whether value conforms to the schema. Value must be
// decoded JSON (maps, slices, primitives), not a Go struct.
func (v *Validator) Validate(value any) error {
	return v.resolved.Validate(value)
}
