package changelog

// WildcardTag routes every line that no other section claims.
const WildcardTag = "*"

// Configuration is everything the generator consumes from config files.
type Configuration struct {
	Delimiters              DelimiterConfiguration `yaml:"delimiters"`
	Format                  FormatConfig           `yaml:"format"`
	ContributorHandlePrefix string                 `yaml:"contributor_handle_prefix"`
	Contributors            []Contributor          `yaml:"contributors" validate:"dive"`
	Transform               TransformConfig        `yaml:"transform"`
	Git                     GitConfig              `yaml:"git"`
}

// FormatConfig controls section layout and boilerplate.
// Sections are rendered in slice order.
type FormatConfig struct {
	Sections    []SectionInfo `yaml:"sections" validate:"unique=Title,dive"`
	Header      string        `yaml:"header,omitempty"`
	Footer      string        `yaml:"footer,omitempty"`
	ShowTags    bool          `yaml:"show_tags"`
	ShowAuthors bool          `yaml:"show_authors"`
}

// Contributor maps a commit author email to a display handle.
type Contributor struct {
	Email  string `koanf:"email" yaml:"email" validate:"required"`
	Handle string `koanf:"handle" yaml:"handle"`
}

// TransformConfig configures the pre-sort marker and the transformer chain.
type TransformConfig struct {
	MarkerPattern    string   `yaml:"marker_pattern" validate:"marker"`
	ExcludePatterns  []string `yaml:"exclude_patterns" validate:"dive,pattern"`
	DedupCherryPicks bool     `yaml:"dedup_cherry_picks"`
}

// GitConfig configures the git history source.
type GitConfig struct {
	RepoPath                   string `yaml:"repo_path,omitempty"`
	TagPrefix                  string `yaml:"tag_prefix"`
	BuildNumberFromCommitCount bool   `yaml:"build_number_from_commit_count"`
}

// DefaultMergePatterns match subjects of automated merge commits.
var DefaultMergePatterns = []string{
	`^Merge branch '`,
	`^Merge pull request #`,
	`^Merge remote-tracking branch '`,
}

// DefaultConfiguration returns the built-in configuration that project and
// user overrides are merged into.
func DefaultConfiguration() Configuration {
	return Configuration{
		Delimiters: DefaultDelimiterConfiguration(),
		Format: FormatConfig{
			Sections: []SectionInfo{
				{Title: "Features", Tags: []string{"feature"}},
				{Title: "Bug Fixes", Tags: []string{"bugfix", "fix"}},
				{Title: "Platform Improvements", Tags: []string{"platform"}},
				{Title: "Timeline", Tags: []string{WildcardTag}},
				{Title: "Version Changes", Tags: []string{"version"}, Excluded: true},
			},
		},
		ContributorHandlePrefix: "@",
		Transform: TransformConfig{
			MarkerPattern:    DefaultMarkerPattern,
			ExcludePatterns:  append([]string(nil), DefaultMergePatterns...),
			DedupCherryPicks: true,
		},
		Git: GitConfig{TagPrefix: "v"},
	}
}

// FindContributor returns the contributor registered for email.
func (c Configuration) FindContributor(email string) (Contributor, bool) {
	if email == "" {
		return Contributor{}, false
	}
	for _, contributor := range c.Contributors {
		if contributor.Email == email {
			return contributor, true
		}
	}
	return Contributor{}, false
}

// Overrides is a partial Configuration. Nil pointers and nil slices mean
// "not specified" and leave the base value untouched when merged.
type Overrides struct {
	Delimiters              *DelimiterConfiguration `koanf:"delimiters"`
	Format                  *FormatOverrides        `koanf:"format"`
	ContributorHandlePrefix *string                 `koanf:"contributor_handle_prefix"`
	Contributors            []Contributor           `koanf:"contributors"`
	Transform               *TransformOverrides     `koanf:"transform"`
	Git                     *GitOverrides           `koanf:"git"`
}

// FormatOverrides is the partial form of FormatConfig.
type FormatOverrides struct {
	Sections    []SectionOverride `koanf:"sections"`
	Header      *string           `koanf:"header"`
	Footer      *string           `koanf:"footer"`
	ShowTags    *bool             `koanf:"show_tags"`
	ShowAuthors *bool             `koanf:"show_authors"`
}

// SectionOverride patches the section with the same title, or adds a new
// section when no title matches.
type SectionOverride struct {
	Title    string   `koanf:"title"`
	Tags     []string `koanf:"tags"`
	Excluded *bool    `koanf:"excluded"`
}

// TransformOverrides is the partial form of TransformConfig.
type TransformOverrides struct {
	MarkerPattern    *string  `koanf:"marker_pattern"`
	ExcludePatterns  []string `koanf:"exclude_patterns"`
	DedupCherryPicks *bool    `koanf:"dedup_cherry_picks"`
}

// GitOverrides is the partial form of GitConfig.
type GitOverrides struct {
	RepoPath                   *string `koanf:"repo_path"`
	TagPrefix                  *string `koanf:"tag_prefix"`
	BuildNumberFromCommitCount *bool   `koanf:"build_number_from_commit_count"`
}

// MergeInto applies every field o specifies onto base and leaves the rest.
func (o Overrides) MergeInto(base *Configuration) {
	if o.Delimiters != nil {
		if !o.Delimiters.Input.IsEmpty() {
			base.Delimiters.Input = o.Delimiters.Input
		}
		if !o.Delimiters.Output.IsEmpty() {
			base.Delimiters.Output = o.Delimiters.Output
		}
	}
	if o.Format != nil {
		o.Format.mergeInto(&base.Format)
	}
	setString(&base.ContributorHandlePrefix, o.ContributorHandlePrefix)
	if o.Contributors != nil {
		base.Contributors = append([]Contributor(nil), o.Contributors...)
	}
	if o.Transform != nil {
		setString(&base.Transform.MarkerPattern, o.Transform.MarkerPattern)
		if o.Transform.ExcludePatterns != nil {
			base.Transform.ExcludePatterns = append([]string(nil), o.Transform.ExcludePatterns...)
		}
		setBool(&base.Transform.DedupCherryPicks, o.Transform.DedupCherryPicks)
	}
	if o.Git != nil {
		setString(&base.Git.RepoPath, o.Git.RepoPath)
		setString(&base.Git.TagPrefix, o.Git.TagPrefix)
		setBool(&base.Git.BuildNumberFromCommitCount, o.Git.BuildNumberFromCommitCount)
	}
}

func (f FormatOverrides) mergeInto(base *FormatConfig) {
	setString(&base.Header, f.Header)
	setString(&base.Footer, f.Footer)
	setBool(&base.ShowTags, f.ShowTags)
	setBool(&base.ShowAuthors, f.ShowAuthors)

	if f.Sections == nil {
		return
	}

	// Copy so the base's backing array is never shared with the result.
	sections := make([]SectionInfo, len(base.Sections))
	for i, s := range base.Sections {
		s.Tags = append([]string(nil), s.Tags...)
		sections[i] = s
	}

	for _, override := range f.Sections {
		idx := indexOfSection(sections, override.Title)
		if idx < 0 {
			info := SectionInfo{Title: override.Title, Tags: append([]string(nil), override.Tags...)}
			if override.Excluded != nil {
				info.Excluded = *override.Excluded
			}
			sections = append(sections, info)
			continue
		}
		if override.Tags != nil {
			sections[idx].Tags = append([]string(nil), override.Tags...)
		}
		setBool(&sections[idx].Excluded, override.Excluded)
	}
	base.Sections = sections
}

func indexOfSection(sections []SectionInfo, title string) int {
	for i, s := range sections {
		if s.Title == title {
			return i
		}
	}
	return -1
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
