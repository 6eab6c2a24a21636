/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

// CompatibilityResult represents the result of schema compatibility checking
type CompatibilityResult struct {
	FromID                 string              `json:"from"`
	ToID                   string              `json:"to"`
	OldID                  string              `json:"old"`
	NewID                  string              `json:"new"`
	Direction              string              `json:"direction"`
	AddedProperties        []string            `json:"added_properties"`
	RemovedProperties      []string            `json:"removed_properties"`
	ChangedProperties      []map[string]string `json:"changed_properties"`
	IsFullyCompatible      bool                `json:"is_fully_compatible"`
	IsBackwardCompatible   bool                `json:"is_backward_compatible"`
	IsForwardCompatible    bool                `json:"is_forward_compatible"`
	IncompatibilityReasons []string            `json:"incompatibility_reasons"`
	BackwardErrors         []string            `json:"backward_errors"`
	ForwardErrors          []string            `json:"forward_errors"`
	Error                  string              `json:"error,omitempty"`
}

// unknownCompatibility builds the "couldn't even compare these" shape shared
// by every early-exit path in CheckCompatibility.
func unknownCompatibility(oldSchemaID, newSchemaID, reason string) *CompatibilityResult {
	return &CompatibilityResult{
		FromID:                 oldSchemaID,
		ToID:                   newSchemaID,
		OldID:                  oldSchemaID,
		NewID:                  newSchemaID,
		Direction:              "unknown",
		AddedProperties:        []string{},
		RemovedProperties:      []string{},
		ChangedProperties:      []map[string]string{},
		IncompatibilityReasons: []string{},
		BackwardErrors:         []string{reason},
		ForwardErrors:          []string{reason},
	}
}

// CheckCompatibility checks compatibility between two schemas.
func (s *Store) CheckCompatibility(oldSchemaID, newSchemaID string) *CompatibilityResult {
	oldEntity := s.Get(oldSchemaID)
	newEntity := s.Get(newSchemaID)
	if oldEntity == nil || newEntity == nil {
		return unknownCompatibility(oldSchemaID, newSchemaID, "Schema not found")
	}

	oldSchema, newSchema := oldEntity.Content, newEntity.Content
	if oldSchema == nil || newSchema == nil {
		return unknownCompatibility(oldSchemaID, newSchemaID, "Invalid schema content")
	}

	isBackward, backwardErrors := checkSchemaCompatibility(oldSchema, newSchema, true)
	isForward, forwardErrors := checkSchemaCompatibility(oldSchema, newSchema, false)

	return &CompatibilityResult{
		FromID:                 oldSchemaID,
		ToID:                   newSchemaID,
		OldID:                  oldSchemaID,
		NewID:                  newSchemaID,
		Direction:              inferDirection(oldSchemaID, newSchemaID),
		AddedProperties:        []string{},
		RemovedProperties:      []string{},
		ChangedProperties:      []map[string]string{},
		IsFullyCompatible:      isBackward && isForward,
		IsBackwardCompatible:   isBackward,
		IsForwardCompatible:    isForward,
		IncompatibilityReasons: []string{},
		BackwardErrors:         backwardErrors,
		ForwardErrors:          forwardErrors,
	}
}

// inferDirection classifies a schema transition by the minor version delta
// on the last ID segment: "up" when newer, "down" when older, "none" when
// unchanged, "unknown" when either ID fails to parse or lacks a minor version.
func inferDirection(fromID, toID string) string {
	fromGtsID, err1 := NewGtsID(fromID)
	toGtsID, err2 := NewGtsID(toID)
	if err1 != nil || err2 != nil || len(fromGtsID.Segments) == 0 || len(toGtsID.Segments) == 0 {
		return "unknown"
	}

	fromSeg := fromGtsID.Segments[len(fromGtsID.Segments)-1]
	toSeg := toGtsID.Segments[len(toGtsID.Segments)-1]
	if fromSeg.VerMinor == nil || toSeg.VerMinor == nil {
		return "unknown"
	}

	switch {
	case *toSeg.VerMinor > *fromSeg.VerMinor:
		return "up"
	case *toSeg.VerMinor < *fromSeg.VerMinor:
		return "down"
	default:
		return "none"
	}
}

// mergeFlattened folds src's properties/required/additionalProperties into dst in place.
func mergeFlattened(dst, src map[string]any) {
	if props, ok := src["properties"].(map[string]any); ok {
		dstProps := dst["properties"].(map[string]any)
		for k, v := range props {
			dstProps[k] = v
		}
	}
	if req, ok := src["required"].([]any); ok {
		dst["required"] = append(dst["required"].([]any), req...)
	}
	if addProps, ok := src["additionalProperties"]; ok {
		dst["additionalProperties"] = addProps
	}
}

// flattenSchema merges allOf branches into a single schema, direct fields
// taking precedence (applied after, so they override/extend the merged branches).
func flattenSchema(schema map[string]any) map[string]any {
	result := map[string]any{
		"properties": make(map[string]any),
		"required":   []any{},
	}

	if allOfList, ok := schema["allOf"].([]any); ok {
		for _, sub := range allOfList {
			if subSchema, ok := sub.(map[string]any); ok {
				mergeFlattened(result, flattenSchema(subSchema))
			}
		}
	}

	mergeFlattened(result, schema)
	return result
}

// checkSchemaCompatibility is the shared engine behind both compatibility
// directions: checkBackward=true means "can a new-schema consumer still read
// old data" (no newly required fields, no added enum values, no tightened or
// newly added bounds); false means the reverse (no removed required fields, no
// removed enum values, no loosened or removed bounds).
func checkSchemaCompatibility(oldSchema, newSchema map[string]any, checkBackward bool) (bool, []string) {
	var errors []string

	oldFlat, newFlat := flattenSchema(oldSchema), flattenSchema(newSchema)
	oldProps, newProps := getPropertiesMap(oldFlat), getPropertiesMap(newFlat)
	oldRequired, newRequired := getRequiredSet(oldFlat), getRequiredSet(newFlat)

	errors = append(errors, requiredFieldErrors(oldRequired, newRequired, checkBackward)...)

	for _, prop := range setIntersection(getKeys(oldProps), getKeys(newProps)) {
		oldPropSchema := oldProps[prop].(map[string]any)
		newPropSchema := newProps[prop].(map[string]any)
		errors = append(errors, checkPropertyCompatibility(prop, oldPropSchema, newPropSchema, checkBackward)...)
	}

	return len(errors) == 0, errors
}

// requiredFieldErrors reports the one required-set transition each direction forbids.
func requiredFieldErrors(oldRequired, newRequired map[string]bool, checkBackward bool) []string {
	if checkBackward {
		if added := setDifference(newRequired, oldRequired); len(added) > 0 {
			return []string{"Added required properties: " + joinStrings(added)}
		}
		return nil
	}
	if removed := setDifference(oldRequired, newRequired); len(removed) > 0 {
		return []string{"Removed required properties: " + joinStrings(removed)}
	}
	return nil
}

// checkPropertyCompatibility checks one property present in both schemas:
// type drift, enum narrowing/widening, numeric/length/size constraints, and
// recursion into nested object/array shapes.
func checkPropertyCompatibility(prop string, oldPropSchema, newPropSchema map[string]any, checkBackward bool) []string {
	var errors []string

	oldType := getString(oldPropSchema, "type")
	newType := getString(newPropSchema, "type")
	if oldType != "" && newType != "" && oldType != newType {
		errors = append(errors, "Property '"+prop+"' type changed from "+oldType+" to "+newType)
	}

	errors = append(errors, enumCompatibilityErrors(prop, oldPropSchema, newPropSchema, checkBackward)...)
	errors = append(errors, checkConstraintCompatibility(prop, oldPropSchema, newPropSchema, checkBackward)...)

	if oldType == "object" && newType == "object" {
		if ok, nested := checkSchemaCompatibility(oldPropSchema, newPropSchema, checkBackward); !ok {
			errors = append(errors, prefixErrors(prop+"'", nested)...)
		}
	}
	if oldType == "array" && newType == "array" {
		oldItems, newItems := getMap(oldPropSchema, "items"), getMap(newPropSchema, "items")
		if oldItems != nil && newItems != nil {
			if ok, nested := checkSchemaCompatibility(oldItems, newItems, checkBackward); !ok {
				errors = append(errors, prefixErrors(prop+"' array items", nested)...)
			}
		}
	}

	return errors
}

func prefixErrors(label string, errs []string) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = "Property '" + label + ": " + e
	}
	return out
}

func enumCompatibilityErrors(prop string, oldPropSchema, newPropSchema map[string]any, checkBackward bool) []string {
	oldEnum, newEnum := getStringSlice(oldPropSchema, "enum"), getStringSlice(newPropSchema, "enum")
	if len(oldEnum) == 0 || len(newEnum) == 0 {
		return nil
	}

	oldSet, newSet := stringSliceToSet(oldEnum), stringSliceToSet(newEnum)
	if checkBackward {
		if added := setDifference(newSet, oldSet); len(added) > 0 {
			return []string{"Property '" + prop + "' added enum values: " + joinStrings(added)}
		}
		return nil
	}
	if removed := setDifference(oldSet, newSet); len(removed) > 0 {
		return []string{"Property '" + prop + "' removed enum values: " + joinStrings(removed)}
	}
	return nil
}

// checkConstraintCompatibility dispatches to the min/max pair relevant to the property's type.
func checkConstraintCompatibility(prop string, oldPropSchema, newPropSchema map[string]any, checkTightening bool) []string {
	switch getString(oldPropSchema, "type") {
	case "number", "integer":
		return checkMinMaxConstraint(prop, oldPropSchema, newPropSchema, "minimum", "maximum", checkTightening)
	case "string":
		return checkMinMaxConstraint(prop, oldPropSchema, newPropSchema, "minLength", "maxLength", checkTightening)
	case "array":
		return checkMinMaxConstraint(prop, oldPropSchema, newPropSchema, "minItems", "maxItems", checkTightening)
	default:
		return nil
	}
}

// boundViolation reports a tightened/relaxed/added/removed bound, or "" if forbid(oldV, newV) is false and no reported bound was added or removed.
func boundViolation(prop, key string, oldV, newV *float64, forbid func(old, new float64) bool, describeAdd, describeRemove bool) string {
	switch {
	case oldV != nil && newV != nil && forbid(*oldV, *newV):
		return "Property '" + prop + "' " + key + " changed from " + floatToString(*oldV) + " to " + floatToString(*newV)
	case describeAdd && oldV == nil && newV != nil:
		return "Property '" + prop + "' added " + key + " constraint: " + floatToString(*newV)
	case describeRemove && oldV != nil && newV == nil:
		return "Property '" + prop + "' removed " + key + " constraint"
	}
	return ""
}

// checkMinMaxConstraint checks a min/max constraint pair. checkTightening=true (backward
// compatibility) forbids raising the minimum or lowering the maximum, and flags newly
// added bounds; false (forward compatibility) forbids the opposite and flags removed bounds.
func checkMinMaxConstraint(prop string, oldSchema, newSchema map[string]any, minKey, maxKey string, checkTightening bool) []string {
	oldMin, newMin := getNumber(oldSchema, minKey), getNumber(newSchema, minKey)
	oldMax, newMax := getNumber(oldSchema, maxKey), getNumber(newSchema, maxKey)

	var minMsg, maxMsg string
	if checkTightening {
		minMsg = boundViolation(prop, minKey, oldMin, newMin, func(old, new float64) bool { return new > old }, true, false)
		maxMsg = boundViolation(prop, maxKey, oldMax, newMax, func(old, new float64) bool { return new < old }, true, false)
	} else {
		minMsg = boundViolation(prop, minKey, oldMin, newMin, func(old, new float64) bool { return new < old }, false, true)
		maxMsg = boundViolation(prop, maxKey, oldMax, newMax, func(old, new float64) bool { return new > old }, false, true)
	}

	var errors []string
	if minMsg != "" {
		errors = append(errors, minMsg)
	}
	if maxMsg != "" {
		errors = append(errors, maxMsg)
	}
	return errors
}
