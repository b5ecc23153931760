package config

import (
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/taglog/internal/changelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateYAMLSyntaxFromBytes(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		data     string
		wantErr  bool
		wantPos  bool
	}{
		"empty":           {data: "   \n"},
		"valid":           {data: "format:\n  header: x\n"},
		"unclosed flow":   {data: "a: 1\nb: [x\n", wantErr: true},
		"bad indent":      {data: "a:\n  b: 1\n c: 2\n", wantErr: true, wantPos: true},
		"tab indentation": {data: "a:\n\tb: 1\n", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := ValidateYAMLSyntaxFromBytes([]byte(tt.data), "config.yml")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "config.yml", ve.FilePath)
			if tt.wantPos {
				assert.Positive(t, ve.Line)
			}
		})
	}
}

func TestValidateYAMLSyntax_MissingFile(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateYAMLSyntax(filepath.Join(t.TempDir(), "nope.yml")))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mutate  func(*changelog.Configuration)
		wantErr string
	}{
		"defaults": {
			mutate: func(*changelog.Configuration) {},
		},
		"missing title": {
			mutate: func(c *changelog.Configuration) {
				c.Format.Sections = append(c.Format.Sections, changelog.SectionInfo{Tags: []string{"x"}})
			},
			wantErr: "title",
		},
		"duplicate title": {
			mutate: func(c *changelog.Configuration) {
				c.Format.Sections = append(c.Format.Sections, changelog.SectionInfo{Title: "Features", Tags: []string{"x"}})
			},
			wantErr: "field 'format.sections': title values must be unique",
		},
		"empty tag": {
			mutate: func(c *changelog.Configuration) {
				c.Format.Sections[0].Tags = []string{""}
			},
			wantErr: "field 'format.sections[0].tags[0]': is required",
		},
		"contributor without email": {
			mutate: func(c *changelog.Configuration) {
				c.Contributors = []changelog.Contributor{{Handle: "ghost"}}
			},
			wantErr: "field 'contributors[0].email': is required",
		},
		"section without tags": {
			mutate: func(c *changelog.Configuration) {
				c.Format.Sections[1].Tags = nil
			},
			wantErr: "field 'format.sections[1].tags': must not be empty",
		},
		"bad marker": {
			mutate: func(c *changelog.Configuration) {
				c.Transform.MarkerPattern = "@@@(.*@@@"
			},
			wantErr: "field 'transform.marker_pattern': invalid regular expression",
		},
		"bad exclude pattern": {
			mutate: func(c *changelog.Configuration) {
				c.Transform.ExcludePatterns = []string{"^ok", "[unclosed"}
			},
			wantErr: "field 'transform.exclude_patterns[1]': invalid regular expression",
		},
		"empty marker uses default": {
			mutate: func(c *changelog.Configuration) {
				c.Transform.MarkerPattern = ""
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := changelog.DefaultConfiguration()
			tt.mutate(&cfg)
			err := Validate(&cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "c.yml:3:5: bad", (&ValidationError{FilePath: "c.yml", Line: 3, Column: 5, Message: "bad"}).Error())
	assert.Equal(t, "c.yml: field 'git.tag_prefix': bad", (&ValidationError{FilePath: "c.yml", Field: "git.tag_prefix", Message: "bad"}).Error())
	assert.Equal(t, "c.yml: bad", (&ValidationError{FilePath: "c.yml", Message: "bad"}).Error())
}
