package recovery

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Shape identifies the kind of document expected from the generator.
type Shape string

const (
	ShapeQuiz         Shape = "quiz"
	ShapeLearningPath Shape = "learning_path"
)

// RequiredField returns the top-level list field a shape must carry.
func (s Shape) RequiredField() string {
	switch s {
	case ShapeQuiz:
		return "questions"
	case ShapeLearningPath:
		return "topics"
	default:
		return ""
	}
}

// Valid reports whether s is a known shape.
func (s Shape) Valid() bool { return s.RequiredField() != "" }

// Accepts is an extraction predicate preferring objects whose required
// field is a list, the same rule ValidateShape enforces.
func (s Shape) Accepts(obj map[string]any) bool {
	_, ok := obj[s.RequiredField()].([]any)
	return ok
}

// schemaCache caches compiled shape schemas by shape name.
var schemaCache sync.Map // map[Shape]*jsonschema.Schema

// ValidateShape checks that v is an object whose required field is a list.
// Nested content is not validated; decoders default what is missing.
func ValidateShape(v any, shape Shape) (map[string]any, error) {
	field := shape.RequiredField()
	if field == "" {
		return nil, &SchemaValidationError{Shape: shape, Reason: "unknown shape"}
	}

	compiled, err := compiledSchema(shape)
	if err != nil {
		return nil, err
	}

	if err := compiled.Validate(v); err != nil {
		return nil, &SchemaValidationError{Shape: shape, Field: field, Reason: shapeReason(v, field), Err: err}
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &SchemaValidationError{Shape: shape, Field: field, Reason: "not an object"}
	}
	return obj, nil
}

func shapeReason(v any, field string) string {
	obj, ok := v.(map[string]any)
	if !ok {
		return "not an object"
	}
	if _, ok := obj[field]; !ok {
		return "missing"
	}
	return "not a list"
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(shape Shape) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(shape); ok {
		return cached.(*jsonschema.Schema), nil
	}

	field := shape.RequiredField()
	def := fmt.Sprintf(`{
		"type": "object",
		"required": [%q],
		"properties": {%q: {"type": "array"}}
	}`, field, field)

	var parsed any
	if err := json.Unmarshal([]byte(def), &parsed); err != nil {
		return nil, fmt.Errorf("parse %s schema: %w", shape, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", shape)
	if err := c.AddResource(url, parsed); err != nil {
		return nil, fmt.Errorf("add %s schema: %w", shape, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", shape, err)
	}

	schemaCache.Store(shape, compiled)
	return compiled, nil
}
