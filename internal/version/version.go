// Package version parses the semantic versions a changelog is generated for.
// It has no dependencies on other internal packages and can be imported
// from anywhere.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ParseError is returned for a malformed version string.
type ParseError struct {
	Input   string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid version %q: %s", e.Input, e.Message)
}

// Version is a semantic version. Build metadata is kept for display but
// ignored by Compare.
type Version struct {
	Major int
	Minor int
	Patch int
	Pre   string
	Build string
}

// Parse parses "X.Y.Z[-pre][+build]" with an optional "v" prefix.
func Parse(s string) (Version, error) {
	sv, err := semver.StrictNewVersion(strings.TrimPrefix(strings.TrimSpace(s), "v"))
	if err != nil {
		return Version{}, &ParseError{Input: s, Message: "expected X.Y.Z: " + err.Error()}
	}
	return Version{
		Major: int(sv.Major()),
		Minor: int(sv.Minor()),
		Patch: int(sv.Patch()),
		Pre:   sv.Prerelease(),
		Build: sv.Metadata(),
	}, nil
}

func (v Version) toSemver() *semver.Version {
	return semver.New(uint64(v.Major), uint64(v.Minor), uint64(v.Patch), v.Pre, v.Build)
}

// String formats the version without a "v" prefix.
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Pre != "" {
		s += "-" + v.Pre
	}
	if v.Build != "" {
		s += "+" + v.Build
	}
	return s
}

// IsZero reports whether v is the zero value.
func (v Version) IsZero() bool {
	return v == Version{}
}

// Compare returns -1, 0 or 1 by semver precedence: a pre-release sorts
// before its release and numeric identifiers compare numerically.
func (v Version) Compare(o Version) int {
	return v.toSemver().Compare(o.toSemver())
}

// Pair is the version range a changelog covers.
type Pair struct {
	Old Version
	New Version
}

// ParsePair parses "<old> <new>", e.g. "1.2.0 1.3.0".
func ParsePair(raw string) (Pair, error) {
	fields := strings.Fields(raw)
	if len(fields) != 2 {
		return Pair{}, &ParseError{Input: raw, Message: "expected two versions separated by a space"}
	}
	old, err := Parse(fields[0])
	if err != nil {
		return Pair{}, err
	}
	next, err := Parse(fields[1])
	if err != nil {
		return Pair{}, err
	}
	return Pair{Old: old, New: next}, nil
}

// String formats the pair the way ParsePair reads it.
func (p Pair) String() string {
	return p.Old.String() + " " + p.New.String()
}
