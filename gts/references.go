/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import "strconv"

// GtsReference represents a GTS ID reference found in JSON content
type GtsReference struct {
	ID         string
	SourcePath string
}

// refCollector accumulates GtsReferences while walking a JSON tree, deduping
// on (id, path) pairs: an ID is reported once per path it is found at, so the
// same ID at two different paths yields two references.
type refCollector struct {
	refs []*GtsReference
	seen map[string]bool
}

func (c *refCollector) visit(node any, path string) {
	switch v := node.(type) {
	case nil:
		return
	case string:
		c.considerString(v, path)
	case map[string]any:
		for k, child := range v {
			c.visit(child, joinPath(path, k))
		}
	case []any:
		for i, child := range v {
			c.visit(child, joinPath(path, "["+strconv.Itoa(i)+"]"))
		}
	}
}

func (c *refCollector) considerString(s, path string) {
	if !IsValidGtsID(s) {
		return
	}
	sourcePath := path
	if sourcePath == "" {
		sourcePath = "root"
	}
	key := s + "|" + sourcePath
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.refs = append(c.refs, &GtsReference{ID: s, SourcePath: sourcePath})
}

// joinPath appends a field/index segment to a dotted path, without
// inserting a separator before an array index.
func joinPath(path, segment string) string {
	if path == "" || segment[0] == '[' {
		return path + segment
	}
	return path + "." + segment
}

// extractGtsReferences walks through JSON content and extracts all GTS ID references
func extractGtsReferences(content any) []*GtsReference {
	c := &refCollector{refs: make([]*GtsReference, 0), seen: make(map[string]bool)}
	c.visit(content, "")
	return c.refs
}
