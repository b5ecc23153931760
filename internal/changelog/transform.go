package changelog

import (
	"fmt"
	"regexp"
	"strings"
)

// hashFence carries the commit hash emitted by the git source. It keeps
// cherry-picked copies distinct until the dedup stage has run.
var hashFence = regexp.MustCompile(`&&&[^&]*&&&`)

// Transformer rewrites the whole log text. Implementations must be pure.
type Transformer interface {
	Transform(text string) string
}

// TransformerFunc adapts a plain function to Transformer.
type TransformerFunc func(text string) string

// Transform calls f(text).
func (f TransformerFunc) Transform(text string) string {
	return f(text)
}

// Chain applies transformers in order, each one seeing the previous output.
type Chain []Transformer

// Apply runs the chain. An empty chain returns text unchanged.
func (c Chain) Apply(text string) string {
	for _, t := range c {
		text = t.Transform(text)
	}
	return text
}

// DedupTransformer drops a line when the line before it carries the same
// marker payload. Input must be pre-sorted by SortLines for this to catch
// every cherry-pick.
type DedupTransformer struct {
	Marker *regexp.Regexp
}

// Transform collapses adjacent lines with identical marker payloads.
func (d DedupTransformer) Transform(text string) string {
	if d.Marker == nil {
		return text
	}
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	prevKey, prevMarked := "", false
	for _, line := range lines {
		m := d.Marker.FindStringSubmatch(line)
		if m == nil {
			out = append(out, line)
			prevMarked = false
			continue
		}
		key := markerKey(line, d.Marker)
		if prevMarked && key == prevKey {
			continue
		}
		out = append(out, line)
		prevKey, prevMarked = key, true
	}
	return strings.Join(out, "\n")
}

// FenceStripTransformer removes marker and hash fences and trims each line.
type FenceStripTransformer struct {
	Marker *regexp.Regexp
}

// Transform strips metadata fences that must never reach rendering.
func (f FenceStripTransformer) Transform(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if f.Marker != nil {
			line = f.Marker.ReplaceAllString(line, "")
		}
		line = hashFence.ReplaceAllString(line, "")
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// ExcludeTransformer drops every line matching one of Patterns.
type ExcludeTransformer struct {
	Patterns []*regexp.Regexp
}

// Transform removes excluded lines.
func (e ExcludeTransformer) Transform(text string) string {
	if len(e.Patterns) == 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		if !e.matches(line) {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func (e ExcludeTransformer) matches(line string) bool {
	for _, p := range e.Patterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// DelimiterRewriteTransformer rewrites tags written with the input
// delimiters to the output delimiters.
type DelimiterRewriteTransformer struct {
	Delimiters DelimiterConfiguration
}

// Transform rewrites tags; it is a no-op when either pair is empty or both
// pairs are equal.
func (d DelimiterRewriteTransformer) Transform(text string) string {
	in, out := d.Delimiters.Input, d.Delimiters.Output
	if in.IsEmpty() || out.IsEmpty() || in == out {
		return text
	}
	pattern := tagPattern(in)
	return pattern.ReplaceAllStringFunc(text, func(match string) string {
		return out.Wrap(pattern.FindStringSubmatch(match)[1])
	})
}

// NewTransformers builds the initial chain for cfg:
// dedup, fence strip, exclude, delimiter rewrite.
func NewTransformers(cfg Configuration) (Chain, error) {
	marker, err := CompileMarker(cfg.Transform.MarkerPattern)
	if err != nil {
		return nil, fmt.Errorf("compiling marker pattern: %w", err)
	}

	excludes := make([]*regexp.Regexp, 0, len(cfg.Transform.ExcludePatterns))
	for _, p := range cfg.Transform.ExcludePatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling exclude pattern %q: %w", p, err)
		}
		excludes = append(excludes, re)
	}

	var chain Chain
	if cfg.Transform.DedupCherryPicks {
		chain = append(chain, DedupTransformer{Marker: marker})
	}
	chain = append(chain,
		FenceStripTransformer{Marker: marker},
		ExcludeTransformer{Patterns: excludes},
		DelimiterRewriteTransformer{Delimiters: cfg.Delimiters},
	)
	return chain, nil
}
