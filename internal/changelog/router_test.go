package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRouter_LastDeclarationWins(t *testing.T) {
	t.Parallel()

	infos := []SectionInfo{
		{Title: "A", Tags: []string{"fix"}},
		{Title: "B", Tags: []string{"feature", "fix"}},
	}
	r := NewRouter(infos)

	idx, ok := r.SectionFor("fix")
	assert.True(t, ok)
	assert.Equal(t, 1, idx, "the later section claiming a tag must own it")

	idx, ok = r.Route(Line{Tags: []string{"feature", "fix"}})
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	idx, ok = r.Route(Line{Tags: []string{"fix"}})
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestRouter_Route(t *testing.T) {
	t.Parallel()

	withWildcard := []SectionInfo{
		{Title: "Features", Tags: []string{"feature"}},
		{Title: "Fixes", Tags: []string{"fix"}},
		{Title: "Other", Tags: []string{WildcardTag}},
	}
	withoutWildcard := withWildcard[:2]

	tests := map[string]struct {
		infos  []SectionInfo
		tags   []string
		want   int
		wantOK bool
	}{
		"first mapped tag wins": {
			infos: withWildcard, tags: []string{"unknown", "fix", "feature"},
			want: 1, wantOK: true,
		},
		"unmapped tags go to wildcard": {
			infos: withWildcard, tags: []string{"docs"},
			want: 2, wantOK: true,
		},
		"no tags go to wildcard": {
			infos: withWildcard, tags: nil,
			want: 2, wantOK: true,
		},
		"no tags without wildcard are dropped": {
			infos: withoutWildcard, tags: nil,
			wantOK: false,
		},
		"unmapped tags without wildcard are dropped": {
			infos: withoutWildcard, tags: []string{"docs"},
			wantOK: false,
		},
		"no sections": {
			infos: nil, tags: []string{"fix"},
			wantOK: false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			idx, ok := NewRouter(tt.infos).Route(Line{Tags: tt.tags, Value: "v"})
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, idx)
			}
		})
	}
}

func TestRouter_WildcardRedeclared(t *testing.T) {
	t.Parallel()

	r := NewRouter([]SectionInfo{
		{Title: "First catch-all", Tags: []string{WildcardTag}},
		{Title: "Second catch-all", Tags: []string{WildcardTag}},
	})
	idx, ok := r.Route(Line{Value: "untagged"})
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
}
