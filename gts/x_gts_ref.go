/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"
	"strings"
)

// XGtsRefValidationError represents a validation error for x-gts-ref constraints
type XGtsRefValidationError struct {
	FieldPath  string
	Value      interface{}
	RefPattern string
	Reason     string
}

func (e *XGtsRefValidationError) Error() string {
	return fmt.Sprintf("x-gts-ref validation failed for field '%s': %s", e.FieldPath, e.Reason)
}

func xRefError(path string, value any, pattern, reason string) *XGtsRefValidationError {
	return &XGtsRefValidationError{FieldPath: path, Value: value, RefPattern: pattern, Reason: reason}
}

// XGtsRefValidator validates x-gts-ref constraints in GTS schemas
type XGtsRefValidator struct {
	store *Store
}

// NewXGtsRefValidator creates a new x-gts-ref validator
func NewXGtsRefValidator(store *Store) *XGtsRefValidator {
	return &XGtsRefValidator{store: store}
}

// ValidateInstance validates an instance against x-gts-ref constraints in schema.
func (v *XGtsRefValidator) ValidateInstance(instance map[string]interface{}, schema map[string]interface{}, instancePath string) []*XGtsRefValidationError {
	var errs []*XGtsRefValidationError
	v.visitInstance(instance, schema, instancePath, schema, &errs)
	return errs
}

// ValidateSchema validates x-gts-ref fields in a schema definition.
func (v *XGtsRefValidator) ValidateSchema(schema map[string]interface{}, schemaPath string, rootSchema map[string]interface{}) []*XGtsRefValidationError {
	if rootSchema == nil {
		rootSchema = schema
	}
	var errs []*XGtsRefValidationError
	v.visitSchema(schema, schemaPath, rootSchema, &errs)
	return errs
}

// visitInstance walks an instance alongside its schema, validating any field
// carrying an x-gts-ref constraint and recursing into object/array children.
func (v *XGtsRefValidator) visitInstance(instance interface{}, schema map[string]interface{}, path string, rootSchema map[string]interface{}, errs *[]*XGtsRefValidationError) {
	if schema == nil {
		return
	}

	if xGtsRef, hasRef := schema["x-gts-ref"]; hasRef {
		if strInstance, ok := instance.(string); ok {
			if err := v.validateRefValue(strInstance, xGtsRef, path, rootSchema); err != nil {
				*errs = append(*errs, err)
			}
		}
	}

	switch schema["type"] {
	case "object":
		v.visitInstanceObject(instance, schema, path, rootSchema, errs)
	case "array":
		v.visitInstanceArray(instance, schema, path, rootSchema, errs)
	}
}

func (v *XGtsRefValidator) visitInstanceObject(instance interface{}, schema map[string]interface{}, path string, rootSchema map[string]interface{}, errs *[]*XGtsRefValidationError) {
	properties, ok := schema["properties"].(map[string]interface{})
	if !ok {
		return
	}
	instanceMap, ok := instance.(map[string]interface{})
	if !ok {
		return
	}
	for propName, propSchema := range properties {
		propValue, hasProp := instanceMap[propName]
		propSchemaMap, isMap := propSchema.(map[string]interface{})
		if !hasProp || !isMap {
			continue
		}
		v.visitInstance(propValue, propSchemaMap, dotPath(path, propName), rootSchema, errs)
	}
}

func (v *XGtsRefValidator) visitInstanceArray(instance interface{}, schema map[string]interface{}, path string, rootSchema map[string]interface{}, errs *[]*XGtsRefValidationError) {
	items, ok := schema["items"].(map[string]interface{})
	if !ok {
		return
	}
	instanceArray, ok := instance.([]interface{})
	if !ok {
		return
	}
	for idx, item := range instanceArray {
		v.visitInstance(item, items, fmt.Sprintf("%s[%d]", path, idx), rootSchema, errs)
	}
}

func dotPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// visitSchema walks a schema document, validating every x-gts-ref field it declares.
func (v *XGtsRefValidator) visitSchema(schema map[string]interface{}, path string, rootSchema map[string]interface{}, errs *[]*XGtsRefValidationError) {
	if schema == nil {
		return
	}

	if xGtsRef, hasRef := schema["x-gts-ref"]; hasRef {
		if err := v.validateRefPattern(xGtsRef, childPath(path, "x-gts-ref"), rootSchema); err != nil {
			*errs = append(*errs, err)
		}
	}

	for key, value := range schema {
		if key == "x-gts-ref" {
			continue
		}
		nestedPath := childPath(path, key)
		switch val := value.(type) {
		case map[string]interface{}:
			v.visitSchema(val, nestedPath, rootSchema, errs)
		case []interface{}:
			for idx, item := range val {
				if itemMap, ok := item.(map[string]interface{}); ok {
					v.visitSchema(itemMap, fmt.Sprintf("%s[%d]", nestedPath, idx), rootSchema, errs)
				}
			}
		}
	}
}

// resolveRelativeRef resolves refPatternStr if it's a JSON Pointer (possibly
// one level of indirection deep), returning the final string and whether it
// must additionally satisfy requireGtsID. Returns ok=false with an error
// describing why resolution failed.
func (v *XGtsRefValidator) resolveRelativeRef(refPatternStr, fieldPath string, value any, schema map[string]interface{}) (string, *XGtsRefValidationError) {
	resolved := v.resolvePointer(schema, refPatternStr)
	if resolved == "" {
		return "", xRefError(fieldPath, value, refPatternStr, fmt.Sprintf("Cannot resolve reference path '%s'", refPatternStr))
	}
	if strings.HasPrefix(resolved, "/") {
		further := v.resolvePointer(schema, resolved)
		if further == "" {
			return "", xRefError(fieldPath, value, refPatternStr, fmt.Sprintf("Cannot resolve nested reference '%s' -> '%s'", refPatternStr, resolved))
		}
		resolved = further
	}
	return resolved, nil
}

// validateRefValue validates an instance value against its x-gts-ref constraint.
func (v *XGtsRefValidator) validateRefValue(value string, refPattern interface{}, fieldPath string, schema map[string]interface{}) *XGtsRefValidationError {
	refPatternStr, ok := refPattern.(string)
	if !ok {
		return xRefError(fieldPath, value, fmt.Sprintf("%v", refPattern), fmt.Sprintf("Value must be a string, got %T", refPattern))
	}

	if strings.HasPrefix(refPatternStr, "/") {
		resolved, resErr := v.resolveRelativeRef(refPatternStr, fieldPath, value, schema)
		if resErr != nil {
			return resErr
		}
		if !strings.HasPrefix(resolved, "gts.") {
			return xRefError(fieldPath, value, refPatternStr, fmt.Sprintf("Resolved reference '%s' -> '%s' is not a GTS pattern", refPatternStr, resolved))
		}
		refPatternStr = resolved
	}

	return v.validateGtsPattern(value, refPatternStr, fieldPath)
}

// validateRefPattern validates an x-gts-ref pattern declared in a schema definition.
func (v *XGtsRefValidator) validateRefPattern(refPattern interface{}, fieldPath string, rootSchema map[string]interface{}) *XGtsRefValidationError {
	refPatternStr, ok := refPattern.(string)
	if !ok {
		return xRefError(fieldPath, refPattern, "", fmt.Sprintf("x-gts-ref value must be a string, got %T", refPattern))
	}

	if strings.HasPrefix(refPatternStr, "gts.") {
		return v.validateGtsIDOrPattern(refPatternStr, fieldPath)
	}

	if strings.HasPrefix(refPatternStr, "/") {
		resolved, resErr := v.resolveRelativeRef(refPatternStr, fieldPath, refPattern, rootSchema)
		if resErr != nil {
			return resErr
		}
		if !IsValidGtsID(resolved) {
			return xRefError(fieldPath, refPattern, refPatternStr, fmt.Sprintf("Resolved reference '%s' -> '%s' is not a valid GTS identifier", refPatternStr, resolved))
		}
		return nil
	}

	return xRefError(fieldPath, refPattern, refPatternStr, fmt.Sprintf("Invalid x-gts-ref value: '%s' must start with 'gts.' or '/'", refPatternStr))
}

// validateGtsIDOrPattern validates a GTS ID or wildcard pattern found in a schema definition.
func (v *XGtsRefValidator) validateGtsIDOrPattern(pattern, fieldPath string) *XGtsRefValidationError {
	if pattern == "gts.*" {
		return nil
	}

	if strings.Contains(pattern, "*") {
		if prefix := strings.TrimSuffix(pattern, "*"); !strings.HasPrefix(prefix, "gts.") {
			return xRefError(fieldPath, pattern, pattern, fmt.Sprintf("Invalid GTS wildcard pattern: %s", pattern))
		}
		return nil
	}

	if !IsValidGtsID(pattern) {
		return xRefError(fieldPath, pattern, pattern, fmt.Sprintf("Invalid GTS identifier: %s", pattern))
	}
	return nil
}

// validateGtsPattern checks that value is a valid GTS ID matching pattern
// (an exact prefix, a prefix* wildcard, or the universal gts.* wildcard) and,
// when a store is attached, that the referenced entity actually exists.
func (v *XGtsRefValidator) validateGtsPattern(value, pattern, fieldPath string) *XGtsRefValidationError {
	if !IsValidGtsID(value) {
		return xRefError(fieldPath, value, pattern, fmt.Sprintf("Value '%s' is not a valid GTS identifier", value))
	}

	if !gtsPatternMatches(value, pattern) {
		return xRefError(fieldPath, value, pattern, fmt.Sprintf("Value '%s' does not match pattern '%s'", value, pattern))
	}

	if v.store != nil {
		if v.store.Get(value) == nil {
			return xRefError(fieldPath, value, pattern, fmt.Sprintf("Referenced entity '%s' not found in registry", value))
		}
	}

	return nil
}

func gtsPatternMatches(value, pattern string) bool {
	if pattern == "gts.*" {
		return true
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(value, pattern[:len(pattern)-1])
	}
	return strings.HasPrefix(value, pattern)
}

// resolvePointer resolves a '/'-delimited JSON Pointer within schema, following
// one further x-gts-ref indirection if the pointer lands on a ref-bearing node.
func (v *XGtsRefValidator) resolvePointer(schema map[string]interface{}, pointer string) string {
	path := strings.TrimPrefix(pointer, "/")
	if path == "" {
		return ""
	}

	var current interface{} = schema
	for _, part := range strings.Split(path, "/") {
		currentMap, ok := current.(map[string]interface{})
		if !ok {
			return ""
		}
		current = currentMap[part]
		if current == nil {
			return ""
		}
	}

	if str, ok := current.(string); ok {
		return str
	}

	if currentMap, ok := current.(map[string]interface{}); ok {
		if xGtsRef, hasRef := currentMap["x-gts-ref"]; hasRef {
			if refStr, ok := xGtsRef.(string); ok {
				if strings.HasPrefix(refStr, "/") {
					return v.resolvePointer(schema, refStr)
				}
				return refStr
			}
		}
	}

	return ""
}
