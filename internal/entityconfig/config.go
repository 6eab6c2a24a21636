/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

// Package entityconfig loads the field-selection rules the core gts package
// uses to pick a GTS identifier out of arbitrary JSON content, from a YAML
// or JSON override file on disk.
package entityconfig

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/gts-labs/gtscat/gts"
)

// FileConfig is the on-disk shape of an entity config override. Either field
// may be omitted, in which case the corresponding gts.DefaultEntityConfig
// list is kept.
type FileConfig struct {
	EntityIDFields []string `yaml:"entity_id_fields" json:"entity_id_fields"`
	SchemaIDFields []string `yaml:"schema_id_fields" json:"schema_id_fields"`
}

// Load reads a YAML (or JSON, which is a YAML subset) file at path and
// merges it onto gts.DefaultEntityConfig(). A missing path is not an error:
// it returns the default config unchanged.
func Load(path string) (*gts.EntityConfig, error) {
	cfg := gts.DefaultEntityConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading entity config %s: %w", path, err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing entity config %s: %w", path, err)
	}

	if len(fc.EntityIDFields) > 0 {
		cfg.EntityIDFields = fc.EntityIDFields
	}
	if len(fc.SchemaIDFields) > 0 {
		cfg.SchemaIDFields = fc.SchemaIDFields
	}

	return cfg, nil
}
