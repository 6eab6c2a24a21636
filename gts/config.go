/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

// EntityConfig holds configuration for extracting GTS IDs from JSON content
type EntityConfig struct {
	EntityIDFields []string
	SchemaIDFields []string
}

// DefaultEntityConfig returns the default configuration for ID extraction
func DefaultEntityConfig() *EntityConfig {
	return &EntityConfig{
		EntityIDFields: []string{
			"$id",
			"$$id",
			"gtsId",
			"gtsIid",
			"gtsOid",
			"gtsI",
			"gts_id",
			"gts_oid",
			"gts_iid",
			"id",
		},
		SchemaIDFields: []string{
			"$schema",
			"$$schema",
			"gtsTid",
			"gtsT",
			"gts_t",
			"gts_tid",
			"type",
			"schema",
		},
	}
}
