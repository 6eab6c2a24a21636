/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"errors"
	"fmt"
	"strings"
)

// QueryResult represents the result of a GTS query execution
type QueryResult struct {
	Error   string           `json:"error"`
	Count   int              `json:"count"`
	Limit   int              `json:"limit"`
	Results []map[string]any `json:"results"`
}

// parsedQuery is a query expression broken into its matchable parts:
//
//	exact match:            "gts.x.core.events.event.v1~"
//	wildcard match:         "gts.x.core.events.*"
//	with filters:           "gts.x.core.events.event.v1~[status=active]"
//	wildcard with filters:  "gts.x.core.*[status=active, category=*]"
type parsedQuery struct {
	pattern    string
	isWildcard bool
	filters    map[string]string
}

// parseQuery splits a query expression into its base ID pattern and bracketed
// filter clause, then validates the pattern shape.
func parseQuery(expr string) (*parsedQuery, error) {
	pattern, filterStr, hasFilters, err := cutFilterClause(expr)
	if err != nil {
		return nil, err
	}
	q := &parsedQuery{pattern: pattern, isWildcard: strings.Contains(pattern, "*"), filters: map[string]string{}}

	if hasFilters {
		if strings.HasSuffix(pattern, "~") || strings.HasSuffix(pattern, "~*") {
			return nil, errors.New("Invalid query: filters cannot be used with type patterns (ending with ~ or ~*)")
		}
		q.filters = parseQueryFilters(filterStr)
	}

	if err := q.validatePattern(); err != nil {
		return nil, err
	}
	return q, nil
}

// cutFilterClause splits "pattern[k=v,...]" into pattern and the filter body
// (without brackets). hasFilters is false when expr has no bracket clause at all;
// an error is returned when a '[' is present without a matching trailing ']'.
func cutFilterClause(expr string) (pattern, filterBody string, hasFilters bool, err error) {
	before, after, found := strings.Cut(expr, "[")
	pattern = strings.TrimSpace(before)
	if !found {
		return pattern, "", false, nil
	}
	after = strings.TrimSpace(after)
	if !strings.HasSuffix(after, "]") {
		return "", "", false, errors.New("Invalid query: missing closing bracket ']'")
	}
	return pattern, strings.TrimSuffix(after, "]"), true, nil
}

// parseQueryFilters parses "key=value, key2=value2" filter clauses.
func parseQueryFilters(filterStr string) map[string]string {
	filters := make(map[string]string)
	for _, part := range strings.Split(filterStr, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		filters[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), `"'`)
	}
	return filters
}

// validatePattern checks wildcard syntax for wildcard patterns and, for
// non-wildcard patterns, completeness (must end in a version or a type marker).
func (q *parsedQuery) validatePattern() error {
	if q.isWildcard {
		if !strings.HasSuffix(q.pattern, ".*") && !strings.HasSuffix(q.pattern, "~*") {
			return errors.New("Invalid query: wildcard patterns must end with .* or ~*")
		}
		if _, err := validateWildcard(q.pattern); err != nil {
			return fmt.Errorf("Invalid query: %w", err)
		}
		return nil
	}

	gtsID, err := NewGtsID(q.pattern)
	if err != nil {
		return fmt.Errorf("Invalid query: %w", err)
	}
	if len(gtsID.Segments) == 0 {
		return errors.New("Invalid query: GTS ID has no valid segments")
	}
	lastSeg := gtsID.Segments[len(gtsID.Segments)-1]
	if !lastSeg.IsType && lastSeg.VerMajor == 0 {
		return errors.New("Invalid query: incomplete GTS ID pattern")
	}
	return nil
}

// matches reports whether an entity's ID and content satisfy this query.
func (q *parsedQuery) matches(entity *JsonEntity) bool {
	if len(entity.Content) == 0 || entity.GtsID == nil {
		return false
	}
	if !MatchIDPattern(entity.GtsID.ID, q.pattern).Match {
		return false
	}
	return matchesFilters(entity.Content, q.filters)
}

// matchesFilters checks if entity content matches all filter criteria.
func matchesFilters(entityContent map[string]any, filters map[string]string) bool {
	for key, want := range filters {
		got := fmt.Sprintf("%v", entityContent[key])
		if want == "*" {
			if got == "" || got == "<nil>" {
				return false
			}
			continue
		}
		if got != want {
			return false
		}
	}
	return true
}

// Query filters entities by a GTS query expression.
func (s *Store) Query(expr string, limit int) *QueryResult {
	if limit <= 0 {
		limit = 100
	}

	result := &QueryResult{Limit: limit, Results: make([]map[string]any, 0)}

	q, err := parseQuery(expr)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	for _, entity := range s.byID {
		if len(result.Results) >= limit {
			break
		}
		if q.matches(entity) {
			result.Results = append(result.Results, entity.Content)
		}
	}

	result.Count = len(result.Results)
	return result
}
