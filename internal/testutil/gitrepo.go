// Package testutil provides test utilities and helpers for taglog tests.
package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// GitRepo is a throwaway repository for history tests. Commits get
// deterministic, strictly increasing timestamps.
type GitRepo struct {
	t    testing.TB
	Dir  string
	Repo *git.Repository
	n    int
}

// NewGitRepo initializes an empty repository in a temp directory.
func NewGitRepo(t testing.TB) *GitRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return &GitRepo{t: t, Dir: dir, Repo: repo}
}

// Commit records a commit touching a single file and returns its hash.
func (r *GitRepo) Commit(message, email string) plumbing.Hash {
	r.t.Helper()
	r.n++

	wt, err := r.Repo.Worktree()
	require.NoError(r.t, err)

	require.NoError(r.t, os.WriteFile(filepath.Join(r.Dir, "file.txt"), []byte(strconv.Itoa(r.n)), 0o644))
	_, err = wt.Add("file.txt")
	require.NoError(r.t, err)

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test User",
			Email: email,
			When:  time.Date(2026, 1, 1, 0, r.n, 0, 0, time.UTC),
		},
	})
	require.NoError(r.t, err)
	return hash
}

// Tag creates a lightweight tag at hash.
func (r *GitRepo) Tag(name string, hash plumbing.Hash) {
	r.t.Helper()
	_, err := r.Repo.CreateTag(name, hash, nil)
	require.NoError(r.t, err)
}

// AnnotatedTag creates an annotated tag at hash.
func (r *GitRepo) AnnotatedTag(name string, hash plumbing.Hash, message string) {
	r.t.Helper()
	_, err := r.Repo.CreateTag(name, hash, &git.CreateTagOptions{
		Tagger:  &object.Signature{Name: "Test User", Email: "tagger@example.com", When: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
		Message: message,
	})
	require.NoError(r.t, err)
}

// ReleaseHistory builds the canonical two-release fixture:
// v1.0.0 at an initial import, then a feature, an automated merge and a fix
// tagged v1.1.0.
func ReleaseHistory(t testing.TB, tagPrefix string) *GitRepo {
	t.Helper()
	r := NewGitRepo(t)
	r.Tag(tagPrefix+"1.0.0", r.Commit("[feature] Initial import", "alice@example.com"))
	r.Commit("[feature] Add X", "alice@example.com")
	r.Commit("Merge branch 'topic'", "bob@example.com")
	r.Tag(tagPrefix+"1.1.0", r.Commit("[fix] Fix Y", "bob@example.com"))
	return r
}
