/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// gtsURLLoader implements jsonschema.URLLoader for GTS ID reference resolution
type gtsURLLoader struct {
	store *Store
}

// Load resolves a $ref target: a GTS ID resolves to its registered schema content.
func (l *gtsURLLoader) Load(url string) (any, error) {
	if !IsValidGtsID(url) {
		return nil, fmt.Errorf("unsupported URL: %s", url)
	}
	entity := l.store.Get(url)
	if entity == nil {
		return nil, fmt.Errorf("unresolvable GTS reference: %s", url)
	}
	if !entity.IsSchema {
		return nil, fmt.Errorf("GTS reference is not a schema: %s", url)
	}
	return entity.Content, nil
}

// ValidationResult represents the result of validating an instance
type ValidationResult struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func validationFailure(gtsID string, err error) *ValidationResult {
	return &ValidationResult{ID: gtsID, Error: err.Error()}
}

// ValidateInstance validates an object instance against its registered schema.
func (s *Store) ValidateInstance(gtsID string) *ValidationResult {
	gid, err := NewGtsID(gtsID)
	if err != nil {
		return validationFailure(gtsID, fmt.Errorf("Invalid GTS ID: %v", err))
	}

	obj := s.Get(gid.ID)
	if obj == nil {
		return validationFailure(gtsID, &StoreObjectNotFoundError{EntityID: gtsID})
	}
	if obj.SchemaID == "" {
		return validationFailure(gtsID, &StoreSchemaForInstanceNotFoundError{EntityID: gid.ID})
	}

	schemaEntity := s.Get(obj.SchemaID)
	if schemaEntity == nil {
		return validationFailure(gtsID, &StoreSchemaNotFoundError{EntityID: obj.SchemaID})
	}
	if !schemaEntity.IsSchema {
		return validationFailure(gtsID, fmt.Errorf("entity '%s' is not a schema", obj.SchemaID))
	}

	if err := s.validateWithSchema(obj.Content, schemaEntity.Content); err != nil {
		return validationFailure(gtsID, err)
	}
	return &ValidationResult{ID: gtsID, OK: true}
}

// lenientFormats lists the JSON Schema "format" keywords validated leniently
// (accept-everything) rather than strictly, matching the reference
// implementation's behavior of treating format as an annotation, not a
// constraint, unless a stricter validator is explicitly wired in.
var lenientFormats = []string{
	"uuid", "date-time", "date", "time", "email", "hostname",
	"ipv4", "ipv6", "uri", "uri-reference", "iri", "iri-reference",
	"uri-template", "json-pointer", "relative-json-pointer", "regex",
}

func registerLenientFormats(compiler *jsonschema.Compiler) {
	accept := func(v any) error { return nil }
	for _, name := range lenientFormats {
		compiler.RegisterFormat(&jsonschema.Format{Name: name, Validate: accept})
	}
}

// validateWithSchema performs JSON Schema validation with GTS reference resolution.
func (s *Store) validateWithSchema(instance map[string]any, schema map[string]any) error {
	compiler := jsonschema.NewCompiler()
	registerLenientFormats(compiler)
	compiler.UseLoader(&gtsURLLoader{store: s})

	schemaID, ok := schema["$id"].(string)
	if !ok || schemaID == "" {
		return fmt.Errorf("schema must have a valid $id field")
	}
	if err := compiler.AddResource(schemaID, schema); err != nil {
		return fmt.Errorf("add schema resource: %v", err)
	}

	for id, entity := range s.byID {
		if entity.IsSchema && id != schemaID {
			_ = compiler.AddResource(id, entity.Content)
		}
	}

	compiledSchema, err := compiler.Compile(schemaID)
	if err != nil {
		return fmt.Errorf("compile schema: %v", err)
	}
	if err := compiledSchema.Validate(instance); err != nil {
		return fmt.Errorf("validation error: %v", err)
	}
	return nil
}
