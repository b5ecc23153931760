package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Output formats accepted by --format.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatJSON     = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatMarkdown, FormatHTML, FormatJSON}

// IsValidFormat reports whether format is one of Formats.
func IsValidFormat(format string) bool {
	return slices.Contains(Formats, format)
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderHTML converts a markdown changelog into an HTML fragment.
func RenderHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("rendering HTML: %w", err)
	}
	return buf.String(), nil
}

// RenderJSON encodes v as indented JSON with a trailing newline.
func RenderJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("rendering JSON: %w", err)
	}
	return string(data) + "\n", nil
}
