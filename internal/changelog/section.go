package changelog

import "strings"

// SectionInfo configures one output section. Tags may include WildcardTag.
type SectionInfo struct {
	Title    string   `koanf:"title" yaml:"title" validate:"required"`
	Tags     []string `koanf:"tags" yaml:"tags" validate:"min=1,dive,required"`
	Excluded bool     `koanf:"excluded" yaml:"excluded,omitempty"`
}

// Section accumulates the formatted lines routed to one SectionInfo.
type Section struct {
	Info  SectionInfo `json:"info"`
	Lines []string    `json:"lines"`
}

// NewSections creates one empty section per info, preserving order.
func NewSections(infos []SectionInfo) []Section {
	sections := make([]Section, len(infos))
	for i, info := range infos {
		sections[i] = Section{Info: info, Lines: []string{}}
	}
	return sections
}

// Append adds a formatted line at the end of the section.
func (s *Section) Append(line string) {
	s.Lines = append(s.Lines, line)
}

// Visible reports whether the section is rendered at all.
func (s Section) Visible() bool {
	return !s.Info.Excluded && len(s.Lines) > 0
}

// Render returns the title heading followed by one bullet per line.
func (s Section) Render() string {
	var b strings.Builder
	b.WriteString("### ")
	b.WriteString(s.Info.Title)
	b.WriteString("\n")
	for _, line := range s.Lines {
		b.WriteString(" - ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
