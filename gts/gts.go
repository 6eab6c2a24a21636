/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	// GtsPrefix is the required prefix for all GTS identifiers
	GtsPrefix = "gts."
	// GtsURIPrefix is the URI-compatible prefix for GTS identifiers in JSON Schema $id field
	// (e.g., "gts://gts.x.y.z..."). This is ONLY used for JSON Schema serialization/deserialization,
	// not for GTS ID parsing.
	GtsURIPrefix = "gts://"
	// MaxIDLength is the maximum allowed length for a GTS identifier
	MaxIDLength = 1024

	minSegmentTokens = 5
	maxSegmentTokens = 6
)

// GtsNamespace is the UUID namespace GTS identifiers are hashed into,
// derived as uuid5(NAMESPACE_URL, "gts").
var GtsNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("gts"))

// idTokenPattern validates a single vendor/package/namespace/type token:
// lowercase letter or underscore, followed by lowercase letters, digits, or underscores.
var idTokenPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// InvalidGtsIDError represents an error when a GTS identifier is invalid
type InvalidGtsIDError struct {
	GtsID string
	Cause string
}

func (e *InvalidGtsIDError) Error() string {
	if e.Cause != "" {
		return fmt.Sprintf("Invalid GTS identifier: %s: %s", e.GtsID, e.Cause)
	}
	return fmt.Sprintf("Invalid GTS identifier: %s", e.GtsID)
}

// InvalidSegmentError represents an error in a specific segment
type InvalidSegmentError struct {
	Num     int
	Offset  int
	Segment string
	Cause   string
}

func (e *InvalidSegmentError) Error() string {
	if e.Cause != "" {
		return fmt.Sprintf("Invalid GTS segment #%d @ offset %d: '%s': %s", e.Num, e.Offset, e.Segment, e.Cause)
	}
	return fmt.Sprintf("Invalid GTS segment #%d @ offset %d: '%s'", e.Num, e.Offset, e.Segment)
}

// GtsIDSegment represents a parsed segment of a GTS identifier
type GtsIDSegment struct {
	Num        int
	Offset     int
	Segment    string
	Vendor     string
	Package    string
	Namespace  string
	Type       string
	VerMajor   int
	VerMinor   *int
	IsType     bool
	IsWildcard bool
}

// GtsID represents a validated GTS identifier
type GtsID struct {
	ID       string
	Segments []*GtsIDSegment
}

// NewGtsID parses and validates a GTS identifier string, returning the
// segment-by-segment breakdown or the first validation failure.
func NewGtsID(id string) (*GtsID, error) {
	raw := strings.TrimSpace(id)

	if err := checkIDShape(id, raw); err != nil {
		return nil, err
	}

	gtsID := &GtsID{ID: raw}
	body := raw[len(GtsPrefix):]

	offset := len(GtsPrefix)
	for i, part := range splitSegments(body) {
		if part == "" {
			return nil, &InvalidGtsIDError{GtsID: id, Cause: fmt.Sprintf("GTS segment #%d @ offset %d is empty", i+1, offset)}
		}

		seg, err := (&segmentBuilder{num: i + 1, offset: offset, raw: part}).build()
		if err != nil {
			return nil, err
		}

		gtsID.Segments = append(gtsID.Segments, seg)
		offset += len(part)
	}

	return gtsID, nil
}

// checkIDShape runs the identifier-level checks that don't depend on segment parsing.
func checkIDShape(id, raw string) error {
	if raw != strings.ToLower(raw) {
		return &InvalidGtsIDError{GtsID: id, Cause: "Must be lower case"}
	}
	if strings.Contains(raw, "-") {
		return &InvalidGtsIDError{GtsID: id, Cause: "Must not contain '-'"}
	}
	if !strings.HasPrefix(raw, GtsPrefix) {
		return &InvalidGtsIDError{GtsID: id, Cause: fmt.Sprintf("Does not start with '%s'", GtsPrefix)}
	}
	if len(raw) > MaxIDLength {
		return &InvalidGtsIDError{GtsID: id, Cause: "Too long"}
	}
	return nil
}

// IsValidGtsID reports whether s parses as a well-formed GTS identifier.
func IsValidGtsID(s string) bool {
	if !strings.HasPrefix(s, GtsPrefix) {
		return false
	}
	_, err := NewGtsID(s)
	return err == nil
}

// IsType returns true if this identifier represents a type (ends with ~)
func (g *GtsID) IsType() bool {
	return strings.HasSuffix(g.ID, "~")
}

// ToUUID generates a deterministic UUID (v5) derived from the identifier string.
func (g *GtsID) ToUUID() uuid.UUID {
	return uuid.NewSHA1(GtsNamespace, []byte(g.ID))
}

// splitSegments splits the part of a GTS identifier after the "gts." prefix
// into its ~-delimited segments, keeping the trailing '~' attached to each
// segment it terminates. A string ending in "~" yields a final empty scan
// rather than a trailing empty segment.
func splitSegments(s string) []string {
	var parts []string
	for {
		idx := strings.IndexByte(s, '~')
		if idx == -1 {
			parts = append(parts, s)
			return parts
		}
		parts = append(parts, s[:idx+1])
		rest := s[idx+1:]
		if rest == "" {
			return parts
		}
		s = rest
	}
}

// segmentBuilder parses one ~-delimited chunk of a GTS identifier into a GtsIDSegment.
type segmentBuilder struct {
	num, offset int
	raw         string
}

func (b *segmentBuilder) fail(cause string) error {
	return &InvalidSegmentError{Num: b.num, Offset: b.offset, Segment: b.raw, Cause: cause}
}

func (b *segmentBuilder) build() (*GtsIDSegment, error) {
	seg := &GtsIDSegment{Num: b.num, Offset: b.offset, Segment: strings.TrimSpace(b.raw)}

	body, err := b.stripTypeMarker(seg)
	if err != nil {
		return nil, err
	}

	tokens := strings.Split(body, ".")
	if err := b.checkTokenShape(tokens, body); err != nil {
		return nil, err
	}

	return seg, b.assignTokens(seg, tokens)
}

// stripTypeMarker removes a trailing '~' (marking a type ID) and reports it on seg.
func (b *segmentBuilder) stripTypeMarker(seg *GtsIDSegment) (string, error) {
	body := seg.Segment
	if !strings.Contains(body, "~") {
		return body, nil
	}
	if strings.Count(body, "~") > 1 {
		return "", b.fail("Too many '~' characters")
	}
	if !strings.HasSuffix(body, "~") {
		return "", b.fail(" '~' must be at the end")
	}
	seg.IsType = true
	return strings.TrimSuffix(body, "~"), nil
}

func (b *segmentBuilder) checkTokenShape(tokens []string, body string) error {
	if len(tokens) > maxSegmentTokens {
		return b.fail("Too many tokens")
	}
	if strings.HasSuffix(body, "*") {
		return nil
	}
	if len(tokens) < minSegmentTokens {
		return b.fail("Too few tokens")
	}
	for _, t := range tokens[:4] {
		if !idTokenPattern.MatchString(t) {
			return b.fail("Invalid segment token: " + t)
		}
	}
	return nil
}

// assignTokens fills vendor/package/namespace/type/version fields from tokens,
// stopping (and marking the segment wildcard) at the first "*" token.
func (b *segmentBuilder) assignTokens(seg *GtsIDSegment, tokens []string) error {
	nameFields := []*string{&seg.Vendor, &seg.Package, &seg.Namespace, &seg.Type}
	for i, dst := range nameFields {
		if i >= len(tokens) {
			return nil
		}
		if tokens[i] == "*" {
			seg.IsWildcard = true
			return nil
		}
		*dst = tokens[i]
	}

	if len(tokens) > 4 {
		if tokens[4] == "*" {
			seg.IsWildcard = true
			return nil
		}
		major, err := parseVersionToken(tokens[4], "Major", true)
		if err != nil {
			return b.fail(err.Error())
		}
		seg.VerMajor = major
	}

	if len(tokens) > 5 {
		if tokens[5] == "*" {
			seg.IsWildcard = true
			return nil
		}
		minor, err := parseVersionToken(tokens[5], "Minor", false)
		if err != nil {
			return b.fail(err.Error())
		}
		seg.VerMinor = &minor
	}

	return nil
}

// parseVersionToken parses a major ("v3") or minor ("3") version token,
// rejecting non-integers, negatives, and non-canonical forms like leading zeros.
func parseVersionToken(token, label string, hasVPrefix bool) (int, error) {
	digits := token
	if hasVPrefix {
		if !strings.HasPrefix(token, "v") {
			return 0, fmt.Errorf("%s version must start with 'v'", label)
		}
		digits = token[1:]
	}

	n, err := strconv.Atoi(digits)
	if err != nil || strconv.Itoa(n) != digits {
		return 0, fmt.Errorf("%s version must be an integer", label)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s version must be >= 0", label)
	}
	return n, nil
}
