/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"
	"strings"
)

// RefValidationError represents a validation error for $ref values
type RefValidationError struct {
	FieldPath string
	RefValue  string
	Reason    string
}

func (e *RefValidationError) Error() string {
	return fmt.Sprintf("$ref validation failed for field '%s': %s", e.FieldPath, e.Reason)
}

// RefValidator validates $ref constraints in GTS schemas
type RefValidator struct{}

// NewRefValidator creates a new $ref validator
func NewRefValidator() *RefValidator {
	return &RefValidator{}
}

// ValidateSchemaRefs validates all $ref values in a schema
func (v *RefValidator) ValidateSchemaRefs(schema map[string]interface{}, schemaPath string) []*RefValidationError {
	w := &refWalker{}
	w.walk(schema, schemaPath)
	return w.errors
}

// refWalker descends a schema tree collecting $ref validation failures.
type refWalker struct {
	errors []*RefValidationError
}

func (w *refWalker) walk(node map[string]interface{}, path string) {
	if node == nil {
		return
	}

	if refValue, hasRef := node["$ref"]; hasRef {
		if err := validateRefValue(refValue, childPath(path, "$ref")); err != nil {
			w.errors = append(w.errors, err)
		}
	}

	for key, value := range node {
		if key == "$ref" {
			continue
		}
		w.descend(value, childPath(path, key))
	}
}

func (w *refWalker) descend(value interface{}, path string) {
	switch val := value.(type) {
	case map[string]interface{}:
		w.walk(val, path)
	case []interface{}:
		for idx, item := range val {
			if itemMap, ok := item.(map[string]interface{}); ok {
				w.walk(itemMap, fmt.Sprintf("%s[%d]", path, idx))
			}
		}
	}
}

func childPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "/" + key
}

const refUsageReason = "must be a local ref (starting with '#') or a GTS URI (starting with 'gts://')"

func refError(path, value, reason string) *RefValidationError {
	return &RefValidationError{FieldPath: path, RefValue: value, Reason: reason}
}

// validateRefValue checks a single $ref value against the GTS grammar: either
// a local JSON Pointer ("#...") or a gts:// URI wrapping a valid GTS ID.
// Anything else -- a bare GTS ID, an http(s) URL, or any other string -- is rejected.
func validateRefValue(refValue interface{}, fieldPath string) *RefValidationError {
	refStr, ok := refValue.(string)
	if !ok {
		return refError(fieldPath, fmt.Sprintf("%v", refValue), fmt.Sprintf("$ref value must be a string, got %T", refValue))
	}

	refStr = strings.TrimSpace(refStr)
	if refStr == "" {
		return refError(fieldPath, refStr, "$ref value cannot be empty")
	}

	if strings.HasPrefix(refStr, "#") {
		return nil
	}

	if strings.HasPrefix(refStr, GtsURIPrefix) {
		gtsID := strings.TrimPrefix(refStr, GtsURIPrefix)
		if !IsValidGtsID(gtsID) {
			return refError(fieldPath, refStr, fmt.Sprintf("contains invalid GTS identifier '%s'", gtsID))
		}
		return nil
	}

	return refError(fieldPath, refStr, refUsageReason)
}
