/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package entityconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingPathReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"$id", "$$id", "gtsId", "gtsIid", "gtsOid", "gtsI", "gts_id", "gts_oid", "gts_iid", "id"}, cfg.EntityIDFields)
}

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.EntityIDFields)
	assert.NotEmpty(t, cfg.SchemaIDFields)
}

func TestLoad_OverridesEntityIDFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entity-config.yaml")
	content := "entity_id_fields:\n  - customId\n  - gtsId\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"customId", "gtsId"}, cfg.EntityIDFields)
	assert.NotEmpty(t, cfg.SchemaIDFields)
}

func TestLoad_OverridesBothFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entity-config.json")
	content := `{"entity_id_fields": ["eid"], "schema_id_fields": ["sid"]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"eid"}, cfg.EntityIDFields)
	assert.Equal(t, []string{"sid"}, cfg.SchemaIDFields)
}

func TestLoad_InvalidYAMLErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entity_id_fields: [unterminated"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
