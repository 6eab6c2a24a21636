/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"
	"strings"
)

// StoreObjectNotFoundError is returned when a GTS entity is not found in the store
type StoreObjectNotFoundError struct {
	EntityID string
}

func (e *StoreObjectNotFoundError) Error() string {
	return fmt.Sprintf("JSON object with GTS ID '%s' not found in store", e.EntityID)
}

// StoreSchemaNotFoundError is returned when a GTS schema is not found in the store
type StoreSchemaNotFoundError struct {
	EntityID string
}

func (e *StoreSchemaNotFoundError) Error() string {
	return fmt.Sprintf("JSON schema with GTS ID '%s' not found in store", e.EntityID)
}

// StoreSchemaForInstanceNotFoundError is returned when a schema ID cannot be determined for an instance
type StoreSchemaForInstanceNotFoundError struct {
	EntityID string
}

func (e *StoreSchemaForInstanceNotFoundError) Error() string {
	return fmt.Sprintf("Can't determine JSON schema ID for instance with GTS ID '%s'", e.EntityID)
}

// StoreCastFromSchemaNotAllowedError is returned when attempting to cast from a schema ID
type StoreCastFromSchemaNotAllowedError struct {
	FromID string
}

func (e *StoreCastFromSchemaNotAllowedError) Error() string {
	return fmt.Sprintf("Cannot cast from schema ID '%s'. The from_id must be an instance (not ending with '~').", e.FromID)
}

// RegistryConfig configures the Store behavior
type RegistryConfig struct {
	// ValidateReferences enables validation of GTS references on entity registration
	ValidateReferences bool
}

// DefaultRegistryConfig returns the default registry configuration
func DefaultRegistryConfig() *RegistryConfig {
	return &RegistryConfig{
		ValidateReferences: false,
	}
}

// Store manages a collection of JSON entities and schemas with optional GTS reference validation
type Store struct {
	byID   map[string]*JsonEntity
	reader EntityReader
	config *RegistryConfig
}

// NewStore creates a new Store, optionally populating it from a reader
func NewStore(reader EntityReader) *Store {
	return NewStoreWithConfig(reader, DefaultRegistryConfig())
}

// NewStoreWithConfig creates a new Store with custom configuration
func NewStoreWithConfig(reader EntityReader, config *RegistryConfig) *Store {
	if config == nil {
		config = DefaultRegistryConfig()
	}

	store := &Store{
		byID:   make(map[string]*JsonEntity),
		reader: reader,
		config: config,
	}

	// Populate from reader if provided
	if reader != nil {
		store.populateFromReader()
	}

	logger.Info("created store", "entities", len(store.byID), "validate_references", config.ValidateReferences)
	return store
}

// populateFromReader loads all entities from the reader into the store
func (s *Store) populateFromReader() {
	if s.reader == nil {
		return
	}

	for {
		entity := s.reader.Next()
		if entity == nil {
			break
		}
		if entity.GtsID != nil && entity.GtsID.ID != "" {
			s.byID[entity.GtsID.ID] = entity
		}
	}
}

// Register adds a JsonEntity to the store with optional GTS reference validation
func (s *Store) Register(entity *JsonEntity) error {
	if entity.GtsID == nil || entity.GtsID.ID == "" {
		return fmt.Errorf("entity must have a valid gts_id")
	}

	// Perform validation if enabled
	if s.config.ValidateReferences {
		if err := s.validateEntityGtsReferences(entity); err != nil {
			return fmt.Errorf("GTS reference validation failed for entity %s: %w", entity.GtsID.ID, err)
		}
	}

	s.byID[entity.GtsID.ID] = entity
	logger.Info("registered entity", "id", entity.GtsID.ID, "schema", entity.IsSchema, "refs", len(entity.GtsRefs))
	return nil
}

// RegisterSchema registers a schema with the given type ID
// This is a legacy method for backward compatibility
func (s *Store) RegisterSchema(typeID string, schema map[string]any) error {
	if typeID[len(typeID)-1] != '~' {
		return fmt.Errorf("schema type_id must end with '~'")
	}

	// Parse to validate
	gtsID, err := NewGtsID(typeID)
	if err != nil {
		return err
	}

	entity := &JsonEntity{
		GtsID:    gtsID,
		Content:  schema,
		IsSchema: true,
	}

	s.byID[typeID] = entity
	return nil
}

// Get retrieves a JsonEntity by its ID
// If not found in cache, attempts to fetch from reader
func (s *Store) Get(entityID string) *JsonEntity {
	// Check cache first
	if entity, ok := s.byID[entityID]; ok {
		return entity
	}

	// Try to fetch from reader
	if s.reader != nil {
		entity := s.reader.ReadByID(entityID)
		if entity != nil {
			s.byID[entityID] = entity
			return entity
		}
	}

	return nil
}

// GetSchemaContent retrieves schema content as a map (legacy method)
func (s *Store) GetSchemaContent(typeID string) (map[string]any, error) {
	entity := s.Get(typeID)
	if entity == nil {
		return nil, fmt.Errorf("schema not found: %s", typeID)
	}
	if !entity.IsSchema {
		return nil, fmt.Errorf("entity is not a schema: %s", typeID)
	}
	return entity.Content, nil
}

// Items returns all entity ID and entity pairs
func (s *Store) Items() map[string]*JsonEntity {
	return s.byID
}

// Count returns the number of entities in the store
func (s *Store) Count() int {
	return len(s.byID)
}

// EntityInfo represents basic information about an entity
type EntityInfo struct {
	ID       string `json:"id"`
	SchemaID string `json:"schema_id"`
	IsSchema bool   `json:"is_schema"`
}

// ListResult represents the result of listing entities
type ListResult struct {
	Entities []EntityInfo `json:"entities"`
	Count    int          `json:"count"`
	Total    int          `json:"total"`
}

// List returns a list of entities up to the specified limit
func (s *Store) List(limit int) *ListResult {
	total := len(s.byID)
	entities := []EntityInfo{}

	count := 0
	for id, entity := range s.byID {
		if count >= limit {
			break
		}
		entities = append(entities, EntityInfo{
			ID:       id,
			SchemaID: entity.SchemaID,
			IsSchema: entity.IsSchema,
		})
		count++
	}

	return &ListResult{
		Entities: entities,
		Count:    count,
		Total:    total,
	}
}

// validateEntityGtsReferences validates all GTS references in an entity
func (s *Store) validateEntityGtsReferences(entity *JsonEntity) error {
	if entity == nil || len(entity.GtsRefs) == 0 {
		return nil
	}

	var errors []string

	for _, ref := range entity.GtsRefs {
		if ref.ID == entity.GtsID.ID {
			// Skip self-references
			continue
		}

		// Skip JSON Schema meta-schema references
		if strings.HasPrefix(ref.ID, "http://json-schema.org") ||
			strings.HasPrefix(ref.ID, "https://json-schema.org") {
			continue
		}

		// Check if the referenced entity exists in the store
		referencedEntity := s.Get(ref.ID)
		if referencedEntity == nil {
			errors = append(errors, fmt.Sprintf("referenced entity not found: %s (at %s)", ref.ID, ref.SourcePath))
			continue
		}

		// Additional validation for schema references
		if entity.IsSchema {
			if strings.Contains(ref.SourcePath, "$ref") {
				// This is a schema reference - the referenced entity should be a schema
				if !referencedEntity.IsSchema {
					errors = append(errors, fmt.Sprintf("schema reference points to non-schema entity: %s (at %s)", ref.ID, ref.SourcePath))
				}
			}
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("GTS reference validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// ValidateSchema validates a schema including JSON Schema meta-schema and GTS reference validation
func (s *Store) ValidateSchema(gtsID string) error {
	if !strings.HasSuffix(gtsID, "~") {
		return fmt.Errorf("ID '%s' is not a schema (must end with '~')", gtsID)
	}

	entity := s.Get(gtsID)
	if entity == nil {
		return &StoreSchemaNotFoundError{EntityID: gtsID}
	}

	if !entity.IsSchema {
		return fmt.Errorf("entity '%s' is not a schema", gtsID)
	}

	logger.Debug("validating schema", "id", gtsID)

	// Validate JSON Schema meta-schema (basic check)
	if entity.Content == nil {
		return fmt.Errorf("schema content is nil")
	}

	// Validate $ref values follow the local-pointer / gts:// URI grammar
	refValidator := NewRefValidator()
	if refErrs := refValidator.ValidateSchemaRefs(entity.Content, ""); len(refErrs) > 0 {
		msgs := make([]string, len(refErrs))
		for i, e := range refErrs {
			msgs[i] = e.Error()
		}
		return fmt.Errorf("schema $ref validation failed: %s", strings.Join(msgs, "; "))
	}

	// Validate GTS references in the schema
	if err := s.validateEntityGtsReferences(entity); err != nil {
		return fmt.Errorf("schema GTS reference validation failed: %w", err)
	}

	// Validate x-gts-ref constraints declared within the schema
	xRefValidator := NewXGtsRefValidator(s)
	if xErrs := xRefValidator.ValidateSchema(entity.Content, "", entity.Content); len(xErrs) > 0 {
		msgs := make([]string, len(xErrs))
		for i, e := range xErrs {
			msgs[i] = e.Error()
		}
		return fmt.Errorf("schema x-gts-ref validation failed: %s", strings.Join(msgs, "; "))
	}

	logger.Info("schema passed validation", "id", gtsID)
	return nil
}

// ValidateInstanceWithXGtsRef returns the first x-gts-ref violation of an instance against its schema, or nil.
func (s *Store) ValidateInstanceWithXGtsRef(gtsID string) error {
	entity := s.Get(gtsID)
	if entity == nil {
		return &StoreObjectNotFoundError{EntityID: gtsID}
	}
	schemaEntity := s.Get(entity.SchemaID)
	if schemaEntity == nil {
		return &StoreSchemaNotFoundError{EntityID: entity.SchemaID}
	}
	if xErrs := NewXGtsRefValidator(s).ValidateInstance(entity.Content, schemaEntity.Content, ""); len(xErrs) > 0 {
		return xErrs[0]
	}
	return nil
}
