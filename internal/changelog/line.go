package changelog

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"
)

// parallelParseThreshold is the line count above which ParseLines fans out.
const parallelParseThreshold = 512

// authorFence carries the author email the git source appends to the end
// of each line.
var authorFence = regexp.MustCompile(`###([^#]*)###\s*$`)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Line is one parsed commit line: the tags found in it and the cleaned text.
type Line struct {
	Tags  []string
	Value string
	Email string
}

// tagPattern builds LEFT([^LEFTRIGHT\n]*)RIGHT for the given pair, so a tag
// never spans two lines. It returns nil for an empty pair.
func tagPattern(pair DelimiterPair) *regexp.Regexp {
	if pair.IsEmpty() {
		return nil
	}
	class := escapeClass(pair.Left + pair.Right)
	return regexp.MustCompile(regexp.QuoteMeta(pair.Left) + `([^` + class + `\n]*)` + regexp.QuoteMeta(pair.Right))
}

// escapeClass escapes every non-alphanumeric rune so the result is safe
// inside a regexp character class.
func escapeClass(chars string) string {
	var b strings.Builder
	seen := make(map[rune]bool)
	for _, r := range chars {
		if seen[r] {
			continue
		}
		seen[r] = true
		if r < 0x80 && !isAlnum(r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// ExtractTags returns every tag wrapped in the output delimiters, left to
// right, duplicates included. An empty pair never yields tags.
func ExtractTags(line string, output DelimiterPair) []string {
	return extractTags(line, tagPattern(output))
}

func extractTags(line string, pattern *regexp.Regexp) []string {
	if pattern == nil {
		return []string{}
	}
	matches := pattern.FindAllStringSubmatch(line, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m[1])
	}
	return tags
}

// ParseLine parses one transformed log line. It reports false when nothing
// is left of the line once tags and metadata are removed.
func ParseLine(raw string, delims DelimiterConfiguration, normalizeTags bool) (Line, bool) {
	return newLineParser(delims, normalizeTags).parse(raw)
}

// ParseLines parses lines and returns the non-degenerate ones in input order.
// Large inputs are parsed in parallel.
func ParseLines(ctx context.Context, lines []string, delims DelimiterConfiguration, normalizeTags bool) ([]Line, error) {
	p := newLineParser(delims, normalizeTags)
	parsed := make([]Line, len(lines))
	ok := make([]bool, len(lines))

	if len(lines) <= parallelParseThreshold {
		for i, raw := range lines {
			parsed[i], ok[i] = p.parse(raw)
		}
		return compactLines(parsed, ok), nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for start := 0; start < len(lines); start += parallelParseThreshold {
		end := min(start+parallelParseThreshold, len(lines))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				parsed[i], ok[i] = p.parse(lines[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logDebug("[changelog] parsed %d lines in parallel", len(lines))
	return compactLines(parsed, ok), nil
}

func compactLines(parsed []Line, ok []bool) []Line {
	out := make([]Line, 0, len(parsed))
	for i, line := range parsed {
		if ok[i] {
			out = append(out, line)
		}
	}
	return out
}

type lineParser struct {
	pattern   *regexp.Regexp
	normalize bool
}

func newLineParser(delims DelimiterConfiguration, normalizeTags bool) lineParser {
	return lineParser{pattern: tagPattern(delims.Output), normalize: normalizeTags}
}

func (p lineParser) parse(raw string) (Line, bool) {
	tags := extractTags(raw, p.pattern)
	if p.normalize {
		for i, tag := range tags {
			tags[i] = NormalizeTag(tag)
		}
	}

	value := raw
	if p.pattern != nil {
		value = p.pattern.ReplaceAllString(value, "")
	}

	var email string
	if m := authorFence.FindStringSubmatch(value); m != nil {
		email = strings.TrimSpace(m[1])
		value = authorFence.ReplaceAllString(value, "")
	}

	value = strings.TrimSpace(whitespaceRun.ReplaceAllString(value, " "))
	if value == "" {
		return Line{}, false
	}
	return Line{Tags: tags, Value: value, Email: email}, true
}

// NormalizeTag lowercases and trims a tag so "[ Feature ]" routes like "[feature]".
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
