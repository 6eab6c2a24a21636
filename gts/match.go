/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"
	"strings"
)

// MatchIDResult represents the result of matching a GTS identifier against a pattern
type MatchIDResult struct {
	Candidate string `json:"candidate"`
	Pattern   string `json:"pattern"`
	Match     bool   `json:"match"`
	Error     string `json:"error"`
}

// InvalidWildcardError represents an error when a wildcard pattern is invalid
type InvalidWildcardError struct {
	Pattern string
	Cause   string
}

func (e *InvalidWildcardError) Error() string {
	if e.Cause != "" {
		return fmt.Sprintf("Invalid GTS wildcard pattern: %s: %s", e.Pattern, e.Cause)
	}
	return fmt.Sprintf("Invalid GTS wildcard pattern: %s", e.Pattern)
}

func matchFailure(candidate, pattern, msg string) MatchIDResult {
	return MatchIDResult{Candidate: candidate, Pattern: pattern, Error: msg}
}

// MatchIDPattern matches a candidate GTS identifier against a pattern with wildcards.
// Returns a MatchIDResult with Match=true if the candidate matches the pattern,
// or Match=false with an optional Error message on failure or mismatch.
func MatchIDPattern(candidate, pattern string) MatchIDResult {
	candidateID, err := NewGtsID(candidate)
	if err != nil {
		return matchFailure(candidate, pattern, err.Error())
	}

	patternID, err := validateWildcard(pattern)
	if err != nil {
		return matchFailure(candidate, pattern, err.Error())
	}

	return MatchIDResult{
		Candidate: candidate,
		Pattern:   pattern,
		Match:     wildcardMatch(candidateID, patternID),
	}
}

// validateWildcard validates a wildcard pattern and returns its parsed GtsID.
func validateWildcard(pattern string) (*GtsID, error) {
	p := strings.TrimSpace(pattern)

	fail := func(cause string) (*GtsID, error) {
		return nil, &InvalidWildcardError{Pattern: pattern, Cause: cause}
	}

	if !strings.HasPrefix(p, GtsPrefix) {
		return fail(fmt.Sprintf("Does not start with '%s'", GtsPrefix))
	}

	switch strings.Count(p, "*") {
	case 0:
		// no wildcard token; fall through to plain parsing below
	case 1:
		if !strings.HasSuffix(p, ".*") && !strings.HasSuffix(p, "~*") {
			return fail("The wildcard '*' token is allowed only at the end of the pattern")
		}
	default:
		return fail("The wildcard '*' token is allowed only once")
	}

	id, err := NewGtsID(p)
	if err != nil {
		return fail(err.Error())
	}
	return id, nil
}

// wildcardMatch reports whether candidate satisfies pattern, with or without a trailing wildcard.
func wildcardMatch(candidate, pattern *GtsID) bool {
	if candidate == nil || pattern == nil {
		return false
	}
	if strings.Contains(pattern.ID, "*") && (strings.Count(pattern.ID, "*") > 1 || !strings.HasSuffix(pattern.ID, "*")) {
		return false
	}
	return matchSegments(pattern.Segments, candidate.Segments)
}

// segmentField names one comparable attribute of a segment pair, for the table-driven
// comparison in segmentMatches.
type segmentField struct {
	name    string
	equal   func(p, c *GtsIDSegment) bool
	setInP  func(p *GtsIDSegment) bool // only consulted in wildcard mode
}

var segmentFields = []segmentField{
	{"vendor", func(p, c *GtsIDSegment) bool { return p.Vendor == c.Vendor }, func(p *GtsIDSegment) bool { return p.Vendor != "" }},
	{"package", func(p, c *GtsIDSegment) bool { return p.Package == c.Package }, func(p *GtsIDSegment) bool { return p.Package != "" }},
	{"namespace", func(p, c *GtsIDSegment) bool { return p.Namespace == c.Namespace }, func(p *GtsIDSegment) bool { return p.Namespace != "" }},
	{"type", func(p, c *GtsIDSegment) bool { return p.Type == c.Type }, func(p *GtsIDSegment) bool { return p.Type != "" }},
	{"verMajor", func(p, c *GtsIDSegment) bool { return p.VerMajor == c.VerMajor }, func(p *GtsIDSegment) bool { return p.VerMajor != 0 }},
	{"verMinor", func(p, c *GtsIDSegment) bool {
		return p.VerMinor == nil || (c.VerMinor != nil && *p.VerMinor == *c.VerMinor)
	}, func(p *GtsIDSegment) bool { return p.VerMinor != nil }},
	{"isType", func(p, c *GtsIDSegment) bool { return p.IsType == c.IsType }, func(p *GtsIDSegment) bool { return p.IsType }},
}

// segmentMatches reports whether candidate segment c satisfies pattern segment p.
// In wildcard mode, only the fields the pattern actually sets are enforced, and a
// wildcard segment always accepts whatever follows it.
func segmentMatches(p, c *GtsIDSegment) bool {
	for _, f := range segmentFields {
		if p.IsWildcard && !f.setInP(p) {
			continue
		}
		if !f.equal(p, c) {
			return false
		}
	}
	return true
}

// matchSegments matches pattern segments against candidate segments, segment by segment.
// A wildcard pattern segment short-circuits the remainder of the candidate once satisfied.
func matchSegments(patternSegs, candidateSegs []*GtsIDSegment) bool {
	if len(patternSegs) > len(candidateSegs) {
		return false
	}

	for i, pSeg := range patternSegs {
		if !segmentMatches(pSeg, candidateSegs[i]) {
			return false
		}
		if pSeg.IsWildcard {
			return true
		}
	}

	return true
}
