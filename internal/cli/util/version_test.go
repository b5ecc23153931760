package util

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ariel-frischer/taglog/internal/build"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateCommit(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		commit string
		want   string
	}{
		"full sha": {commit: "0123456789abcdef", want: "01234567"},
		"short":    {commit: "abc", want: "abc"},
		"unknown":  {commit: "unknown", want: "unknown"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, truncateCommit(tt.commit))
		})
	}
}

func TestPrintPlainVersion(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printPlainVersion(&buf, build.Info{Version: "1.2.0", Commit: "abc", BuildDate: "2026-01-01", GoVersion: "go1.25.1", Platform: "linux/amd64"})
	assert.Equal(t, "taglog 1.2.0\ncommit: abc\nbuilt: 2026-01-01\ngo: go1.25.1\nplatform: linux/amd64\n", buf.String())
}

func TestPrintPrettyVersion(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printPrettyVersion(&buf, build.Info{Version: "1.2.0", Commit: "0123456789", BuildDate: "today", GoVersion: "go1.25.1", Platform: "linux/amd64"})
	out := buf.String()
	assert.Contains(t, out, "1.2.0")
	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "0123456789")
	assert.Contains(t, out, SourceURL)
	assert.NotContains(t, out, "development build")

	buf.Reset()
	printPrettyVersion(&buf, build.Info{Version: "dev", Commit: "unknown", DevBuild: true})
	assert.Contains(t, buf.String(), "development build")
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "taglog"}
	root.AddGroup(&cobra.Group{ID: "info", Title: "Info"})
	root.AddCommand(NewVersionCommand())

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"version", "--json"})
	require.NoError(t, root.Execute())

	var info build.Info
	require.NoError(t, json.Unmarshal(buf.Bytes(), &info))
	assert.Equal(t, build.Version, info.Version)

	buf.Reset()
	root.SetArgs([]string{"v", "--plain", "--json=false"})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "taglog "+build.Version)
}
