package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategory_String(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		category ErrorCategory
		want     string
	}{
		"argument":      {category: Argument, want: "Argument Error"},
		"configuration": {category: Configuration, want: "Configuration Error"},
		"source":        {category: Source, want: "Source Error"},
		"runtime":       {category: Runtime, want: "Runtime Error"},
		"unknown":       {category: ErrorCategory(42), want: "Error"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.category.String())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("tag v9.9.9 not found")

	assert.Nil(t, Wrap(nil, Source))
	assert.Nil(t, WrapWithMessage(nil, Source, "x"))

	wrapped := WrapWithMessage(cause, Source, "reading history", "check tags")
	assert.Equal(t, "reading history: tag v9.9.9 not found", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, []string{"check tags"}, wrapped.Remediation)
}

func TestAsCLIError(t *testing.T) {
	t.Parallel()

	cliErr := NewConfigError("bad config")
	outer := fmt.Errorf("loading: %w", cliErr)

	assert.Same(t, cliErr, AsCLIError(outer))
	assert.True(t, IsCLIError(outer))
	assert.False(t, IsCLIError(stderrors.New("plain")))
	assert.Nil(t, AsCLIError(nil))
}

func TestFormatErrorPlain(t *testing.T) {
	t.Parallel()

	err := NewArgumentErrorWithUsage("a version range is required",
		"taglog compare --versions \"<old> <new>\"",
		"Pass --versions explicitly",
	)

	got := FormatErrorPlain(err)
	want := "Error [Argument Error]: a version range is required\n" +
		"\nUsage: taglog compare --versions \"<old> <new>\"\n" +
		"\nTo fix this:\n  • Pass --versions explicitly\n"
	assert.Equal(t, want, got)
	assert.Empty(t, FormatErrorPlain(nil))
}

func TestMessages(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err      *CLIError
		category ErrorCategory
		contains string
	}{
		"invalid versions": {
			err:      InvalidVersions("1.0", stderrors.New("expected two versions")),
			category: Argument,
			contains: `invalid --versions "1.0"`,
		},
		"versions required": {err: VersionsRequired(), category: Argument, contains: "version range"},
		"unknown format": {
			err:      UnknownFormat("pdf", []string{"markdown", "html", "json"}),
			category: Argument,
			contains: "unknown output format: pdf",
		},
		"config invalid": {
			err:      ConfigInvalid(stderrors.New("line 3")),
			category: Configuration,
			contains: "invalid configuration: line 3",
		},
		"config exists": {err: ConfigFileExists(".taglog/config.yml"), category: Configuration, contains: "already exists"},
		"history": {
			err:      HistoryUnavailable(stderrors.New("repository does not exist")),
			category: Source,
			contains: "reading commit history failed",
		},
		"not writable": {
			err:      FileNotWritable("/out.md", stderrors.New("permission denied")),
			category: Runtime,
			contains: "cannot write to file: /out.md",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.category, tt.err.Category)
			assert.Contains(t, tt.err.Error(), tt.contains)
			assert.NotEmpty(t, tt.err.Remediation)
		})
	}
}

func TestFprintAny(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	FprintAny(&buf, stderrors.New("boom"))
	require.Contains(t, buf.String(), "boom")
	assert.Contains(t, buf.String(), "Runtime Error")

	buf.Reset()
	FprintAny(&buf, fmt.Errorf("outer: %w", NewSourceError("no history")))
	assert.Contains(t, buf.String(), "Source Error")
	assert.Contains(t, buf.String(), "no history")

	buf.Reset()
	FprintAny(&buf, nil)
	assert.Empty(t, buf.String())
}
