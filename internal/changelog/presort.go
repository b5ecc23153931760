package changelog

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultMarkerPattern matches the fenced sort key the git source embeds
// in each line. The first capture group is the key.
const DefaultMarkerPattern = `@@@(.*?)@@@`

// CompileMarker compiles a marker pattern, falling back to the default for
// an empty string.
func CompileMarker(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		pattern = DefaultMarkerPattern
	}
	return regexp.Compile(pattern)
}

// markerKey returns the marker payload of line, or the raw line when it
// carries no marker.
func markerKey(line string, marker *regexp.Regexp) string {
	if marker == nil {
		return line
	}
	m := marker.FindStringSubmatch(line)
	if m == nil {
		return line
	}
	if len(m) > 1 {
		return m[1]
	}
	return m[0]
}

// SortLines sorts the newline-separated input by marker key so cherry-picked
// copies of a commit end up next to each other. Lines with equal keys keep
// their relative order.
func SortLines(input string, marker *regexp.Regexp) string {
	lines := strings.Split(input, "\n")
	keys := make([]string, len(lines))
	for i, line := range lines {
		keys[i] = markerKey(line, marker)
	}

	idx := make([]int, len(lines))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return keys[idx[a]] < keys[idx[b]]
	})

	sorted := make([]string, len(lines))
	for i, j := range idx {
		sorted[i] = lines[j]
	}
	return strings.Join(sorted, "\n")
}
