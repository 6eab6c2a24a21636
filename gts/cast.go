/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// CastResult represents the result of casting an instance to a new schema version.
// It extends CompatibilityResult with the casted entity.
type CastResult struct {
	*CompatibilityResult
	CastedEntity map[string]any `json:"casted_entity,omitempty"`
}

// Cast transforms an instance to conform to a target schema version.
func (s *Store) Cast(instanceID, toSchemaID string) (*CastResult, error) {
	instanceEntity := s.Get(instanceID)
	if instanceEntity == nil {
		return nil, &StoreObjectNotFoundError{EntityID: instanceID}
	}
	if instanceEntity.IsSchema {
		return nil, &StoreCastFromSchemaNotAllowedError{FromID: instanceID}
	}

	toSchema := s.Get(toSchemaID)
	if toSchema == nil {
		return nil, &StoreSchemaNotFoundError{EntityID: toSchemaID}
	}

	if instanceEntity.SchemaID == "" {
		return nil, &StoreSchemaForInstanceNotFoundError{EntityID: instanceID}
	}
	fromSchema := s.Get(instanceEntity.SchemaID)
	if fromSchema == nil {
		return nil, &StoreSchemaNotFoundError{EntityID: instanceEntity.SchemaID}
	}

	caster := &instanceCaster{store: s}
	return caster.cast(instanceID, toSchemaID, instanceEntity.Content, fromSchema.Content, toSchema.Content)
}

// instanceCaster bundles the store reference the tolerant-validation step needs
// into the cast pipeline, rather than threading it through every helper call.
type instanceCaster struct {
	store *Store
}

func (c *instanceCaster) cast(fromInstanceID, toSchemaID string, instanceContent, fromSchemaContent, toSchemaContent map[string]any) (*CastResult, error) {
	targetSchema := flattenSchema(toSchemaContent)
	direction := inferDirection(fromInstanceID, toSchemaID)
	oldSchema, newSchema := orderSchemasByDirection(direction, fromSchemaContent, toSchemaContent)

	isBackward, backwardErrors := checkSchemaCompatibility(oldSchema, newSchema, true)
	isForward, forwardErrors := checkSchemaCompatibility(oldSchema, newSchema, false)

	step := castStep{targetSchema: targetSchema}
	outcome := step.apply(copyMap(instanceContent), "")

	isFullyCompatible := false
	if outcome.instance != nil {
		isFullyCompatible = true
		if err := c.validateTolerant(outcome.instance, toSchemaContent); err != nil {
			outcome.incompatibilityReasons = append(outcome.incompatibilityReasons, err.Error())
		}
	}

	return &CastResult{
		CompatibilityResult: &CompatibilityResult{
			FromID:                 fromInstanceID,
			ToID:                   toSchemaID,
			OldID:                  fromInstanceID,
			NewID:                  toSchemaID,
			Direction:              direction,
			AddedProperties:        deduplicate(outcome.added),
			RemovedProperties:      deduplicate(outcome.removed),
			ChangedProperties:      []map[string]string{},
			IsFullyCompatible:      isFullyCompatible,
			IsBackwardCompatible:   isBackward,
			IsForwardCompatible:    isForward,
			IncompatibilityReasons: outcome.incompatibilityReasons,
			BackwardErrors:         backwardErrors,
			ForwardErrors:          forwardErrors,
		},
		CastedEntity: outcome.instance,
	}, nil
}

// orderSchemasByDirection picks which content plays "old" vs "new" for compatibility
// checks: moving "down" a version flips target/source roles; "up" and unknown don't.
func orderSchemasByDirection(direction string, fromSchemaContent, toSchemaContent map[string]any) (old, new map[string]any) {
	if direction == "down" {
		return toSchemaContent, fromSchemaContent
	}
	return fromSchemaContent, toSchemaContent
}

// castOutcome is the accumulated result of walking an instance against a target schema.
type castOutcome struct {
	instance               map[string]any
	added                  []string
	removed                []string
	incompatibilityReasons []string
}

// castStep carries no per-call state beyond the schema being matched against;
// each recursive call constructs its own outcome and a fresh castStep for the
// nested schema, mirroring the recursive structure of the cast rules.
type castStep struct {
	targetSchema map[string]any
}

// apply runs the four-stage cast pipeline against one object level: fill
// required defaults, fill optional defaults, upgrade GTS-ID consts, prune
// extras, then recurse into nested objects/arrays.
func (step castStep) apply(instance map[string]any, basePath string) castOutcome {
	if instance == nil {
		return castOutcome{incompatibilityReasons: []string{"Instance must be an object for casting"}}
	}

	targetProps := getPropertiesMap(step.targetSchema)
	required := getRequiredSet(step.targetSchema)
	out := castOutcome{instance: copyMap(instance)}

	fillRequiredDefaults(out.instance, targetProps, required, basePath, &out.added, &out.incompatibilityReasons)
	fillOptionalDefaults(out.instance, targetProps, required, basePath, &out.added)
	upgradeGtsIDConsts(out.instance, targetProps)

	if !getAdditionalProperties(step.targetSchema) {
		pruneExtraProperties(out.instance, targetProps, basePath, &out.removed)
	}

	step.recurseIntoNested(out.instance, targetProps, basePath, &out)

	return out
}

func fillRequiredDefaults(result map[string]any, targetProps map[string]any, required map[string]bool, basePath string, added, incompatible *[]string) {
	for prop := range required {
		if _, exists := result[prop]; exists {
			continue
		}
		propSchema := getMap(targetProps, prop)
		if propSchema == nil {
			continue
		}
		if defaultVal, hasDefault := propSchema["default"]; hasDefault {
			result[prop] = copyValue(defaultVal)
			*added = append(*added, buildPath(basePath, prop))
			continue
		}
		*incompatible = append(*incompatible, fmt.Sprintf("Missing required property '%s' and no default is defined", buildPath(basePath, prop)))
	}
}

func fillOptionalDefaults(result map[string]any, targetProps map[string]any, required map[string]bool, basePath string, added *[]string) {
	for prop, propSchemaAny := range targetProps {
		if required[prop] {
			continue
		}
		propSchema, ok := propSchemaAny.(map[string]any)
		if !ok {
			continue
		}
		if _, exists := result[prop]; exists {
			continue
		}
		if defaultVal, hasDefault := propSchema["default"]; hasDefault {
			result[prop] = copyValue(defaultVal)
			*added = append(*added, buildPath(basePath, prop))
		}
	}
}

// upgradeGtsIDConsts swaps an existing GTS-ID value for the schema's const
// value when both are valid GTS IDs and they differ -- the one deliberate
// exception to "don't touch values the instance already sets".
func upgradeGtsIDConsts(result map[string]any, targetProps map[string]any) {
	for prop, propSchemaAny := range targetProps {
		propSchema, ok := propSchemaAny.(map[string]any)
		if !ok {
			continue
		}
		constVal, hasConst := propSchema["const"]
		if !hasConst {
			continue
		}
		existingVal, exists := result[prop]
		if !exists {
			continue
		}
		constStr, constIsStr := constVal.(string)
		existingStr, existingIsStr := existingVal.(string)
		if constIsStr && existingIsStr && IsValidGtsID(constStr) && IsValidGtsID(existingStr) && existingStr != constStr {
			result[prop] = constStr
		}
	}
}

func pruneExtraProperties(result map[string]any, targetProps map[string]any, basePath string, removed *[]string) {
	for prop := range result {
		if _, inTarget := targetProps[prop]; inTarget {
			continue
		}
		delete(result, prop)
		*removed = append(*removed, buildPath(basePath, prop))
	}
}

func (step castStep) recurseIntoNested(result map[string]any, targetProps map[string]any, basePath string, out *castOutcome) {
	for prop, propSchemaAny := range targetProps {
		val, exists := result[prop]
		if !exists {
			continue
		}
		propSchema, ok := propSchemaAny.(map[string]any)
		if !ok {
			continue
		}

		switch getString(propSchema, "type") {
		case "object":
			if valMap, isMap := val.(map[string]any); isMap {
				sub := castStep{targetSchema: effectiveObjectSchema(propSchema)}
				nested := sub.apply(valMap, buildPath(basePath, prop))
				result[prop] = nested.instance
				out.merge(nested)
			}
		case "array":
			itemsSchema := getMap(propSchema, "items")
			valArray, isArray := val.([]any)
			if !isArray || itemsSchema == nil || getString(itemsSchema, "type") != "object" {
				continue
			}
			sub := castStep{targetSchema: effectiveObjectSchema(itemsSchema)}
			newList := make([]any, 0, len(valArray))
			for idx, item := range valArray {
				itemMap, isMap := item.(map[string]any)
				if !isMap {
					newList = append(newList, item)
					continue
				}
				nested := sub.apply(itemMap, buildPath(basePath, fmt.Sprintf("%s[%d]", prop, idx)))
				newList = append(newList, nested.instance)
				out.merge(nested)
			}
			result[prop] = newList
		}
	}
}

func (out *castOutcome) merge(nested castOutcome) {
	out.added = append(out.added, nested.added...)
	out.removed = append(out.removed, nested.removed...)
	out.incompatibilityReasons = append(out.incompatibilityReasons, nested.incompatibilityReasons...)
}

// effectiveObjectSchema extracts the object-shaped schema from an allOf wrapper if needed.
func effectiveObjectSchema(schema map[string]any) map[string]any {
	if schema == nil {
		return make(map[string]any)
	}
	if hasObjectShape(schema) {
		return schema
	}
	if allOfList, ok := schema["allOf"].([]any); ok {
		for _, partAny := range allOfList {
			if part, ok := partAny.(map[string]any); ok && hasObjectShape(part) {
				return part
			}
		}
	}
	return schema
}

func hasObjectShape(schema map[string]any) bool {
	_, hasProps := schema["properties"]
	_, hasReq := schema["required"]
	return hasProps || hasReq
}

// validateTolerant validates instance against schema, allowing GTS ID const differences.
func (c *instanceCaster) validateTolerant(instance, schema map[string]any) error {
	modifiedSchema := removeGtsConstConstraints(schema)

	compiler := jsonschema.NewCompiler()
	compiler.UseLoader(&gtsURLLoader{store: c.store})
	for id, entity := range c.store.byID {
		if entity.IsSchema {
			compiler.AddResource(id, entity.Content)
		}
	}

	const scratchID = "_cast_validation"
	compiler.AddResource(scratchID, modifiedSchema)

	schemaObj, err := compiler.Compile(scratchID)
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}
	if err := schemaObj.Validate(instance); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// removeGtsConstConstraints recursively replaces const constraints whose value
// is a GTS ID with a plain type:string constraint, so a cast instance whose ID
// field legitimately differs from the schema's const can still validate.
func removeGtsConstConstraints(schema any) any {
	switch v := schema.(type) {
	case map[string]any:
		result := make(map[string]any, len(v))
		for key, value := range v {
			if key == "const" {
				if strVal, ok := value.(string); ok && IsValidGtsID(strVal) {
					result["type"] = "string"
					continue
				}
			}
			result[key] = removeGtsConstConstraints(value)
		}
		return result
	case []any:
		result := make([]any, len(v))
		for i, item := range v {
			result[i] = removeGtsConstConstraints(item)
		}
		return result
	default:
		return v
	}
}

// getAdditionalProperties safely extracts additionalProperties (defaults to true)
func getAdditionalProperties(schema map[string]any) bool {
	if boolVal, ok := schema["additionalProperties"].(bool); ok {
		return boolVal
	}
	return true
}

// buildPath constructs a property path for error messages.
func buildPath(base, prop string) string {
	if base == "" {
		return prop
	}
	if strings.HasPrefix(prop, "[") {
		return base + prop
	}
	return base + "." + prop
}

// copyMap creates a deep copy of a map
func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = copyValue(v)
	}
	return result
}

// copyValue creates a deep copy of any value
func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return copyMap(val)
	case []any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = copyValue(item)
		}
		return result
	default:
		return v
	}
}

// deduplicate removes duplicates from a string slice and returns them sorted.
func deduplicate(slice []string) []string {
	seen := make(map[string]bool, len(slice))
	result := make([]string, 0, len(slice))
	for _, item := range slice {
		if seen[item] {
			continue
		}
		seen[item] = true
		result = append(result, item)
	}
	sort.Strings(result)
	return result
}
