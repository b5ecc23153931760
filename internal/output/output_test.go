package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		markdown string
		contains []string
	}{
		"version and section": {
			markdown: "# 1.2.0\n\n### Features\n - Add X\n",
			contains: []string{"<h1>1.2.0</h1>", "<h3>Features</h3>", "<li>Add X</li>"},
		},
		"gfm strikethrough": {
			markdown: " - ~~Dropped~~ thing\n",
			contains: []string{"<del>Dropped</del>"},
		},
		"autolinks": {
			markdown: " - See https://example.com/pr/1\n",
			contains: []string{`<a href="https://example.com/pr/1">`},
		},
		"empty": {
			markdown: "",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := RenderHTML(tt.markdown)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestRenderJSON(t *testing.T) {
	t.Parallel()

	got, err := RenderJSON(map[string]any{"version": "1.0.0"})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"version\": \"1.0.0\"\n}\n", got)

	_, err = RenderJSON(make(chan int))
	assert.ErrorContains(t, err, "rendering JSON")
}

func TestIsValidFormat(t *testing.T) {
	t.Parallel()

	for _, f := range Formats {
		assert.True(t, IsValidFormat(f), f)
	}
	assert.False(t, IsValidFormat("pdf"))
	assert.False(t, IsValidFormat(""))
}

func TestWriteResult(t *testing.T) {
	t.Parallel()

	t.Run("stdout", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, WriteResult("", []byte("hello"), &buf))
		require.NoError(t, WriteResult("-", []byte(" world"), &buf))
		assert.Equal(t, "hello world", buf.String())
	})

	t.Run("file with parent dirs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		path := filepath.Join(t.TempDir(), "dist", "notes", "CHANGELOG.md")
		require.NoError(t, WriteResult(path, []byte("# 1.0.0\n"), &buf))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# 1.0.0\n", string(data))
		assert.Empty(t, buf.String())
	})

	t.Run("unwritable path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		blocker := filepath.Join(dir, "file")
		require.NoError(t, os.WriteFile(blocker, nil, 0o644))

		err := WriteResult(filepath.Join(blocker, "out.md"), []byte("x"), &bytes.Buffer{})
		assert.Error(t, err)
	})
}

func TestPrintHelpers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintSuccess(&buf, "wrote CHANGELOG.md")
	PrintWarning(&buf, "no sections")
	PrintRule(&buf, "1.2.0")
	assert.Contains(t, buf.String(), "wrote CHANGELOG.md")
	assert.Contains(t, buf.String(), "no sections")
	assert.Contains(t, buf.String(), "1.2.0")
	assert.False(t, IsTerminal(&buf))
}
