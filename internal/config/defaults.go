package config

import (
	"bytes"
	"fmt"

	"github.com/ariel-frischer/taglog/internal/changelog"
	"gopkg.in/yaml.v3"
)

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# taglog configuration
# Every key is optional. Keys left out keep the built-in default.

# Tag delimiters. "input" matches tags in commit subjects, "output" is how
# tags are written back out. A malformed pair is treated as empty.
delimiters:
  input:
    left: "["
    right: "]"
  output:
    left: "["
    right: "]"

format:
  # Sections render in this order. A line goes to the first section whose
  # tag it carries; "*" collects lines no other section claims. Sections
  # listed here patch the built-in section of the same title.
  sections:
    - title: Features
      tags: [feature]
    - title: Bug Fixes
      tags: [bugfix, fix]
    - title: Platform Improvements
      tags: [platform]
    - title: Timeline
      tags: ["*"]
    - title: Version Changes
      tags: [version]
      excluded: true                  # Routed but never rendered
  header: ""                          # Text emitted before the changelog
  footer: ""                          # Text emitted after the changelog
  show_tags: false                    # Keep [tags] in rendered lines
  show_authors: false                 # Append the author handle to each line

contributor_handle_prefix: "@"
# contributors:                      # Maps commit emails to handles
#   - email: dev@example.com
#     handle: dev

transform:
  marker_pattern: "@@@(.*?)@@@"       # Capture group is the sort and dedup key
  dedup_cherry_picks: true            # Collapse adjacent lines with equal keys
  exclude_patterns:                   # Subjects matching any pattern are dropped
    - "^Merge branch '"
    - "^Merge pull request #"
    - "^Merge remote-tracking branch '"

git:
  repo_path: ""                       # Repository to read (default: current directory)
  tag_prefix: v                       # Release tags are <prefix><version>
  build_number_from_commit_count: false
`
}

// MarshalYAML renders a merged configuration the way config files spell it.
func MarshalYAML(cfg changelog.Configuration) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}
