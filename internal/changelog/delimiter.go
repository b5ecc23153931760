package changelog

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// DelimiterPair is the pair of markers that surround a tag, e.g. "[" and "]".
type DelimiterPair struct {
	Left  string `koanf:"left" yaml:"left" json:"left"`
	Right string `koanf:"right" yaml:"right" json:"right"`
}

var (
	// EmptyDelimiterPair is the decode fallback. No tags are ever found with it.
	EmptyDelimiterPair = DelimiterPair{}
	// DefaultInputDelimiters surround tags as authors write them in commit subjects.
	DefaultInputDelimiters = DelimiterPair{Left: "[", Right: "]"}
	// DefaultOutputDelimiters surround tags once the log has been normalized.
	DefaultOutputDelimiters = DelimiterPair{Left: "[", Right: "]"}
)

// IsEmpty reports whether either side of the pair is missing.
func (p DelimiterPair) IsEmpty() bool {
	return p.Left == "" || p.Right == ""
}

// Wrap surrounds tag with the pair.
func (p DelimiterPair) Wrap(tag string) string {
	return p.Left + tag + p.Right
}

// DelimiterConfiguration holds the delimiters used to find tags in the raw
// log (Input) and the ones tags are normalized to (Output).
type DelimiterConfiguration struct {
	Input  DelimiterPair `yaml:"input" json:"input"`
	Output DelimiterPair `yaml:"output" json:"output"`
}

// DefaultDelimiterConfiguration returns square brackets on both sides.
func DefaultDelimiterConfiguration() DelimiterConfiguration {
	return DelimiterConfiguration{Input: DefaultInputDelimiters, Output: DefaultOutputDelimiters}
}

// EmptyDelimiterConfiguration returns a configuration with both pairs empty.
func EmptyDelimiterConfiguration() DelimiterConfiguration {
	return DelimiterConfiguration{Input: EmptyDelimiterPair, Output: EmptyDelimiterPair}
}

// DecodeDelimiterConfiguration decodes the generic value produced by a config
// parser. A missing or malformed input/output sub-object becomes
// EmptyDelimiterPair; decoding never fails.
func DecodeDelimiterConfiguration(raw any) DelimiterConfiguration {
	m, ok := asStringMap(raw)
	if !ok {
		return EmptyDelimiterConfiguration()
	}
	return DelimiterConfiguration{
		Input:  decodeDelimiterPair(m["input"]),
		Output: decodeDelimiterPair(m["output"]),
	}
}

func decodeDelimiterPair(raw any) DelimiterPair {
	m, ok := asStringMap(raw)
	if !ok {
		return EmptyDelimiterPair
	}
	left, lok := m["left"].(string)
	right, rok := m["right"].(string)
	if !lok || !rok {
		return EmptyDelimiterPair
	}
	return DelimiterPair{Left: left, Right: right}
}

// asStringMap normalizes the map shapes produced by koanf, yaml.v3 and
// encoding/json.
func asStringMap(raw any) (map[string]any, bool) {
	switch m := raw.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			key, ok := k.(string)
			if !ok {
				continue
			}
			out[key] = v
		}
		return out, true
	default:
		return nil, false
	}
}

// UnmarshalJSON decodes leniently: only invalid JSON syntax is an error.
func (c *DelimiterConfiguration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = DecodeDelimiterConfiguration(raw)
	return nil
}

// UnmarshalYAML decodes leniently: a node that cannot be read as a generic
// value yields the empty configuration.
func (c *DelimiterConfiguration) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		*c = EmptyDelimiterConfiguration()
		return nil
	}
	*c = DecodeDelimiterConfiguration(raw)
	return nil
}
