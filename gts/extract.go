/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"
	"strings"
)

// JsonFile represents a JSON file containing one or more entities
type JsonFile struct {
	Path    string
	Name    string
	Content any
}

// JsonEntity represents a JSON object with extracted GTS identifiers
type JsonEntity struct {
	GtsID                 *GtsID
	SchemaID              string
	SelectedEntityField   string
	SelectedSchemaIDField string
	IsSchema              bool
	Content               map[string]any
	File                  *JsonFile
	ListSequence          *int
	Label                 string
	GtsRefs               []*GtsReference
}

// ExtractIDResult holds the result of extracting ID information from JSON content
type ExtractIDResult struct {
	ID                    string  `json:"id"`
	SchemaID              *string `json:"schema_id"`
	SelectedEntityField   *string `json:"selected_entity_field"`
	SelectedSchemaIDField *string `json:"selected_schema_id_field"`
	IsSchema              bool    `json:"is_schema"`
}

// NewJsonEntity creates a JsonEntity from JSON content using the provided config
func NewJsonEntity(content map[string]any, cfg *EntityConfig) *JsonEntity {
	return NewJsonEntityWithFile(content, cfg, nil, nil)
}

// NewJsonEntityWithFile creates a JsonEntity with file and sequence information.
// Schemas and instances resolve their GTS ID and schema ID differently, so the
// two cases are built by dedicated helpers after the shared field detection.
func NewJsonEntityWithFile(content map[string]any, cfg *EntityConfig, file *JsonFile, listSequence *int) *JsonEntity {
	if cfg == nil {
		cfg = DefaultEntityConfig()
	}

	entity := &JsonEntity{
		Content:      content,
		IsSchema:     isJSONSchema(content),
		File:         file,
		ListSequence: listSequence,
	}

	entityIDValue, entityIDField := entity.firstNonEmptyField(cfg.EntityIDFields)
	entity.SelectedEntityField = entityIDField

	// A well-known entity (schema or instance) carries a valid GTS ID in its
	// id field; an anonymous instance leaves GtsID nil and is identified only
	// by its type via SchemaIDFields.
	if entityIDValue != "" && IsValidGtsID(entityIDValue) {
		entity.GtsID, _ = NewGtsID(entityIDValue)
	}
	entity.SchemaID = entity.calcJSONSchemaID(cfg, entityIDValue)

	entity.GtsRefs = extractGtsReferences(content)
	entity.setLabel()
	return entity
}

// setLabel sets the entity's label based on file, sequence, or GTS ID
func (e *JsonEntity) setLabel() {
	switch {
	case e.File != nil && e.ListSequence != nil:
		e.Label = fmt.Sprintf("%s#%d", e.File.Name, *e.ListSequence)
	case e.File != nil:
		e.Label = e.File.Name
	case e.GtsID != nil:
		e.Label = e.GtsID.ID
	default:
		e.Label = ""
	}
}

// isJSONSchema reports whether content is a JSON Schema: it carries a $schema
// (or legacy $$schema) field.
func isJSONSchema(content map[string]any) bool {
	if content == nil {
		return false
	}
	if _, ok := content["$schema"]; ok {
		return true
	}
	_, ok := content["$$schema"]
	return ok
}

// getFieldValue retrieves a trimmed string value from a content field. The
// "$id" field additionally strips a "gts://" URI prefix, since that prefix is
// only meaningful there (JSON Schema's $id convention), never elsewhere.
func (e *JsonEntity) getFieldValue(field string) string {
	if e.Content == nil {
		return ""
	}
	val, ok := e.Content[field]
	if !ok {
		return ""
	}
	strVal, ok := val.(string)
	if !ok {
		return ""
	}
	trimmed := strings.TrimSpace(strVal)
	if trimmed == "" {
		return ""
	}
	if field == "$id" {
		trimmed = strings.TrimPrefix(trimmed, GtsURIPrefix)
	}
	return trimmed
}

// firstNonEmptyField finds the first field with a value, preferring one that
// parses as a valid GTS ID over any other non-empty string.
func (e *JsonEntity) firstNonEmptyField(fields []string) (string, string) {
	var fallbackField, fallbackValue string
	for _, field := range fields {
		val := e.getFieldValue(field)
		if val == "" {
			continue
		}
		if IsValidGtsID(val) {
			return val, field
		}
		if fallbackField == "" {
			fallbackField, fallbackValue = field, val
		}
	}
	return fallbackValue, fallbackField
}

// derivedSchemaParent returns the parent type ID of a derived schema (one
// whose id is of the form "gts...base~...derived~") by cutting at the first
// '~', or "" if entityIDValue isn't a multi-link type chain.
func derivedSchemaParent(entityIDValue string) string {
	if !strings.HasSuffix(entityIDValue, "~") {
		return ""
	}
	firstTilde := strings.Index(entityIDValue, "~")
	if firstTilde <= 0 {
		return ""
	}
	if strings.Index(entityIDValue[firstTilde+1:], "~") <= 0 {
		return ""
	}
	return entityIDValue[:firstTilde+1]
}

// calcJSONSchemaID extracts the schema/type ID an entity belongs to.
func (e *JsonEntity) calcJSONSchemaID(cfg *EntityConfig, entityIDValue string) string {
	if e.IsSchema {
		if entityIDValue != "" && IsValidGtsID(entityIDValue) {
			if parent := derivedSchemaParent(entityIDValue); parent != "" {
				e.SelectedSchemaIDField = e.SelectedEntityField
				return parent
			}
		}
		if schemaValue := e.getFieldValue("$schema"); schemaValue != "" {
			e.SelectedSchemaIDField = "$schema"
			return schemaValue
		}
		return ""
	}

	if entityIDValue != "" && IsValidGtsID(entityIDValue) && !strings.HasSuffix(entityIDValue, "~") {
		if lastTilde := strings.LastIndex(entityIDValue, "~"); lastTilde > 0 {
			e.SelectedSchemaIDField = e.SelectedEntityField
			return entityIDValue[:lastTilde+1]
		}
	}

	value, field := e.firstNonEmptyField(cfg.SchemaIDFields)
	if value != "" {
		e.SelectedSchemaIDField = field
		return value
	}
	return ""
}

// ExtractID extracts GTS ID information from JSON content.
func ExtractID(content map[string]any, cfg *EntityConfig) *ExtractIDResult {
	entity := NewJsonEntity(content, cfg)

	result := &ExtractIDResult{IsSchema: entity.IsSchema}
	if entity.SchemaID != "" {
		result.SchemaID = &entity.SchemaID
	}
	if entity.SelectedEntityField != "" {
		result.SelectedEntityField = &entity.SelectedEntityField
	}
	if entity.SelectedSchemaIDField != "" {
		result.SelectedSchemaIDField = &entity.SelectedSchemaIDField
	}

	result.ID = entity.effectiveID(content)
	return result
}

// effectiveID is the ID ExtractID reports: the resolved GTS ID for schemas
// and well-known instances, or the raw id-field value for anonymous instances.
func (e *JsonEntity) effectiveID(content map[string]any) string {
	if e.IsSchema || e.GtsID != nil {
		if e.GtsID != nil {
			return e.GtsID.ID
		}
		return ""
	}
	if e.SelectedEntityField == "" {
		return ""
	}
	if strVal, ok := content[e.SelectedEntityField].(string); ok {
		return strVal
	}
	return ""
}
