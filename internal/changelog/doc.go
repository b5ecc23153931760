// Package changelog turns tagged commit history into a sectioned changelog.
//
// This package implements:
//   - Tag extraction from raw log lines using configurable delimiters
//   - A pre-sort stage that makes cherry-picked duplicates adjacent
//   - An ordered chain of text transformers (dedup, merge filtering, cleanup)
//   - Tag to section routing with a "*" catch-all section
//   - Rendering of header, version, release manager, sections and footer
//
// Raw history is obtained through the LogSource interface (or standard
// input); everything after acquisition is a pure, single pass over text.
package changelog
