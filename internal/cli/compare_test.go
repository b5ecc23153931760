// Package cli tests the compare command end to end against stdin and
// throwaway git repositories.
// Related: internal/cli/compare.go
// Tags: cli, compare, changelog

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ariel-frischer/taglog/internal/cli/shared"
	"github.com/ariel-frischer/taglog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taglog.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runWithStdin(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut strings.Builder
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := execute(t.Context(), cmd)
	return out.String(), errOut.String(), err
}

// releaseRepo creates a repository with v1.0.0 and v1.1.0 tags and returns
// its directory.
func releaseRepo(t *testing.T) string {
	t.Helper()
	return testutil.ReleaseHistory(t, "v").Dir
}

func TestCompare_Stdin(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "format:\n  header: \"# Notes\"\n")
	stdout, _, err := runWithStdin(t, "[fix] Fix Y\n[feature] Add X\n[misc] Tidy\n",
		"compare", "--stdin", "--config", cfg)
	require.NoError(t, err)

	want := "# Notes\n" +
		"\n### Features\n - Add X\n" +
		"\n### Bug Fixes\n - Fix Y\n" +
		"\n### Timeline\n - Tidy\n"
	assert.Equal(t, want, stdout)
}

func TestCompare_StdinWithVersions(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, `contributors:
  - email: alice@example.com
    handle: alice
`)
	stdout, _, err := runWithStdin(t, "[feature] Add X\n",
		"compare", "--stdin", "--config", cfg,
		"--versions", "1.0.0 1.1.0", "--release-manager", "alice@example.com", "--build-number", "42")
	require.NoError(t, err)

	want := "# 1.1.0 (42)\n" +
		"\n### Release Manager\n - @alice\n" +
		"\n### Features\n - Add X\n"
	assert.Equal(t, want, stdout)
}

func TestCompare_BuildNumberWithoutVersionWarns(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "")
	stdout, stderr, err := runWithStdin(t, "[feature] Add X\n",
		"compare", "--stdin", "--config", cfg, "--build-number", "42")
	require.NoError(t, err)
	assert.Equal(t, "### Features\n - Add X\n", stdout)
	assert.Contains(t, stderr, "--build-number has no effect")
}

func TestCompare_GitRepository(t *testing.T) {
	t.Parallel()

	dir := releaseRepo(t)
	cfg := writeConfig(t, fmt.Sprintf("git:\n  repo_path: %q\n", dir))

	stdout, _, err := runWithStdin(t, "", "compare", "--config", cfg)
	require.NoError(t, err)

	want := "# 1.1.0\n" +
		"\n### Features\n - Add X\n" +
		"\n### Bug Fixes\n - Fix Y\n"
	assert.Equal(t, want, stdout)
}

func TestCompare_Formats(t *testing.T) {
	t.Parallel()

	dir := releaseRepo(t)
	cfg := writeConfig(t, fmt.Sprintf("git:\n  repo_path: %q\n", dir))

	t.Run("html", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runWithStdin(t, "", "compare", "--config", cfg, "--versions", "1.0.0 1.1.0", "--format", "html")
		require.NoError(t, err)
		assert.Contains(t, stdout, "<h1>1.1.0</h1>")
		assert.Contains(t, stdout, "<h3>Features</h3>")
		assert.Contains(t, stdout, "<li>Add X</li>")
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runWithStdin(t, "", "compare", "--config", cfg, "--versions", "1.0.0 1.1.0", "-f", "json")
		require.NoError(t, err)

		var doc changelogDocument
		require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
		assert.Equal(t, "1.1.0", doc.Version)
		assert.Equal(t, "1.0.0", doc.PreviousVersion)
		assert.Equal(t, []sectionDocument{
			{Title: "Features", Lines: []string{"Add X"}},
			{Title: "Bug Fixes", Lines: []string{"Fix Y"}},
		}, doc.Sections)
	})
}

func TestCompare_OutputFile(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "")
	target := filepath.Join(t.TempDir(), "dist", "CHANGELOG.md")

	stdout, stderr, err := runWithStdin(t, "[feature] Add X\n", "compare", "--stdin", "--config", cfg, "--output", target)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Wrote "+target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "### Features\n - Add X\n", string(data))
}

func TestCompare_Errors(t *testing.T) {
	t.Parallel()

	notARepo := writeConfig(t, fmt.Sprintf("git:\n  repo_path: %q\n", t.TempDir()))
	brokenConfig := writeConfig(t, "format: [\n")
	noMatchingTags := writeConfig(t, fmt.Sprintf("git:\n  repo_path: %q\n  tag_prefix: release-\n", releaseRepo(t)))

	tests := map[string]struct {
		args     []string
		wantCode int
		wantErr  string
	}{
		"unknown format": {
			args:     []string{"compare", "--stdin", "--format", "pdf"},
			wantCode: shared.ExitInvalidArguments,
			wantErr:  "unknown output format: pdf",
		},
		"malformed versions": {
			args:     []string{"compare", "--stdin", "--versions", "1.0.0"},
			wantCode: shared.ExitInvalidArguments,
			wantErr:  "invalid --versions",
		},
		"broken config": {
			args:     []string{"compare", "--stdin", "--config", brokenConfig},
			wantCode: shared.ExitConfigError,
			wantErr:  "invalid configuration",
		},
		"missing config file": {
			args:     []string{"compare", "--stdin", "--config", filepath.Join(t.TempDir(), "nope.yml")},
			wantCode: shared.ExitConfigError,
			wantErr:  "file not found",
		},
		"not a repository": {
			args:     []string{"compare", "--config", notARepo, "--versions", "1.0.0 1.1.0"},
			wantCode: shared.ExitGenerationFailed,
			wantErr:  "reading commit history failed",
		},
		"no release tags": {
			args:     []string{"compare", "--config", noMatchingTags},
			wantCode: shared.ExitInvalidArguments,
			wantErr:  "a version range is required",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, stderr, err := runWithStdin(t, "[feature] Add X\n", tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, ExitCode(err))
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}
