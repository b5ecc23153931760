package changelog

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortLines(t *testing.T) {
	t.Parallel()

	marker := regexp.MustCompile(DefaultMarkerPattern)

	tests := map[string]struct {
		input string
		want  string
	}{
		"sorts by marker payload not line text": {
			input: "zzz @@@b@@@\naaa @@@c@@@\nmmm @@@a@@@",
			want:  "mmm @@@a@@@\nzzz @@@b@@@\naaa @@@c@@@",
		},
		"identical markers become adjacent": {
			input: "&&&1&&& pick @@@same@@@\nother @@@middle@@@\n&&&2&&& pick @@@same@@@",
			want:  "other @@@middle@@@\n&&&1&&& pick @@@same@@@\n&&&2&&& pick @@@same@@@",
		},
		"stable for equal keys": {
			input: "first @@@k@@@\nsecond @@@k@@@\nthird @@@k@@@",
			want:  "first @@@k@@@\nsecond @@@k@@@\nthird @@@k@@@",
		},
		"lines without marker use raw text": {
			input: "b plain\n@@@c@@@\na plain",
			want:  "a plain\nb plain\n@@@c@@@",
		},
		"empty input": {
			input: "",
			want:  "",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SortLines(tt.input, marker))
		})
	}
}

func TestSortLines_CustomMarker(t *testing.T) {
	t.Parallel()

	marker, err := CompileMarker(`<<(\d+)>>`)
	require.NoError(t, err)

	got := SortLines("b <<2>>\na <<3>>\nc <<1>>", marker)
	assert.Equal(t, []string{"c <<1>>", "b <<2>>", "a <<3>>"}, strings.Split(got, "\n"))
}

func TestCompileMarker(t *testing.T) {
	t.Parallel()

	re, err := CompileMarker("")
	require.NoError(t, err)
	assert.Equal(t, DefaultMarkerPattern, re.String())

	_, err = CompileMarker("(")
	assert.Error(t, err)
}
