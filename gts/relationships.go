/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import "strings"

// SchemaGraphNode represents a node in the schema relationship graph
type SchemaGraphNode struct {
	ID       string                      `json:"id"`
	Refs     map[string]*SchemaGraphNode `json:"refs,omitempty"`
	SchemaID *SchemaGraphNode            `json:"schema_id,omitempty"`
	Errors   []string                    `json:"errors,omitempty"`
}

// BuildSchemaGraph recursively builds a relationship graph for a GTS entity.
func (s *Store) BuildSchemaGraph(gtsID string) *SchemaGraphNode {
	return (&graphBuilder{store: s, seen: make(map[string]bool)}).node(gtsID)
}

// graphBuilder carries the store and cycle-detection set shared across the
// recursive node() calls that assemble one BuildSchemaGraph invocation.
type graphBuilder struct {
	store *Store
	seen  map[string]bool
}

func (b *graphBuilder) node(gtsID string) *SchemaGraphNode {
	node := &SchemaGraphNode{ID: gtsID}

	if b.seen[gtsID] {
		return node
	}
	b.seen[gtsID] = true

	entity := b.store.Get(gtsID)
	if entity == nil {
		node.Errors = append(node.Errors, "Entity not found")
		return node
	}

	if refs := b.resolveRefs(gtsID, entity.GtsRefs); len(refs) > 0 {
		node.Refs = refs
	}
	b.resolveSchemaID(node, entity)

	return node
}

func (b *graphBuilder) resolveRefs(gtsID string, gtsRefs []*GtsReference) map[string]*SchemaGraphNode {
	refs := make(map[string]*SchemaGraphNode)
	for _, ref := range gtsRefs {
		if ref.ID == gtsID || isJSONSchemaURL(ref.ID) {
			continue
		}
		refs[ref.SourcePath] = b.node(ref.ID)
	}
	return refs
}

func (b *graphBuilder) resolveSchemaID(node *SchemaGraphNode, entity *JsonEntity) {
	switch {
	case entity.SchemaID != "" && !isJSONSchemaURL(entity.SchemaID):
		node.SchemaID = b.node(entity.SchemaID)
	case entity.SchemaID == "" && !entity.IsSchema:
		node.Errors = append(node.Errors, "Schema not recognized")
	}
}

// jsonSchemaHosts are the meta-schema hosts a $ref/schema_id pointing at
// json-schema.org itself should be treated as external, not a GTS relation.
var jsonSchemaHosts = []string{"http://json-schema.org", "https://json-schema.org"}

// isJSONSchemaURL reports whether s is a JSON Schema meta-schema URL.
func isJSONSchemaURL(s string) bool {
	for _, host := range jsonSchemaHosts {
		if strings.HasPrefix(s, host) {
			return true
		}
	}
	return false
}
