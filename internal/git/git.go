// Package git reads commit history and release tags for changelog generation.
// It uses the go-git library, so no git CLI installation is required.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/ariel-frischer/taglog/internal/changelog"
	"github.com/ariel-frischer/taglog/internal/version"
)

// ErrNotEnoughTags is returned by LatestVersions when fewer than two
// version tags exist.
var ErrNotEnoughTags = errors.New("at least two version tags are required")

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// Source reads raw changelog lines from a repository.
// It implements changelog.LogSource and changelog.BuildNumberSource.
type Source struct {
	repoPath    string
	tagPrefix   string
	countBuilds bool
}

// NewSource creates a Source from the git section of the configuration.
func NewSource(cfg changelog.GitConfig) *Source {
	return &Source{
		repoPath:    cfg.RepoPath,
		tagPrefix:   cfg.TagPrefix,
		countBuilds: cfg.BuildNumberFromCommitCount,
	}
}

// TagName returns the tag a version is released under.
func (s *Source) TagName(v version.Version) string {
	return s.tagPrefix + v.String()
}

// ChangeLog returns one line per commit reachable from the new version but
// not from the old one, newest first:
//
//	&&&<hash>&&& <subject> @@@<subject>@@@###<author email>###
//
// The new version falls back to HEAD when it has not been tagged yet.
func (s *Source) ChangeLog(ctx context.Context, opts changelog.Options) (string, error) {
	repo, err := openRepo(s.repoPath)
	if err != nil {
		return "", err
	}

	oldHash, err := s.resolveTag(repo, opts.Versions.Old)
	if err != nil {
		return "", err
	}
	newHash, err := s.resolveNew(repo, opts.Versions.New)
	if err != nil {
		return "", err
	}

	released, err := reachable(ctx, repo, oldHash)
	if err != nil {
		return "", err
	}

	var lines []string
	err = walk(ctx, repo, newHash, func(c *object.Commit) error {
		if released[c.Hash] {
			return nil
		}
		lines = append(lines, formatCommit(c))
		return nil
	})
	if err != nil {
		return "", err
	}

	logDebug("[git] ChangeLog: %d commits between %s and %s", len(lines), oldHash, newHash)
	return strings.Join(lines, "\n"), nil
}

// BuildNumber counts the commits reachable from the new version when enabled.
func (s *Source) BuildNumber(ctx context.Context, opts changelog.Options) (string, bool, error) {
	if !s.countBuilds {
		return "", false, nil
	}
	repo, err := openRepo(s.repoPath)
	if err != nil {
		return "", false, err
	}
	head, err := s.resolveNew(repo, opts.Versions.New)
	if err != nil {
		return "", false, err
	}

	count := 0
	if err := walk(ctx, repo, head, func(*object.Commit) error {
		count++
		return nil
	}); err != nil {
		return "", false, err
	}
	return strconv.Itoa(count), true, nil
}

// LatestVersions returns the two highest version tags as a pair.
func (s *Source) LatestVersions(ctx context.Context) (version.Pair, error) {
	repo, err := openRepo(s.repoPath)
	if err != nil {
		return version.Pair{}, err
	}

	versions, err := s.versionTags(repo)
	if err != nil {
		return version.Pair{}, err
	}
	if err := ctx.Err(); err != nil {
		return version.Pair{}, err
	}
	if len(versions) < 2 {
		return version.Pair{}, fmt.Errorf("found %d version tags with prefix %q: %w", len(versions), s.tagPrefix, ErrNotEnoughTags)
	}

	pair := version.Pair{Old: versions[len(versions)-2], New: versions[len(versions)-1]}
	logDebug("[git] LatestVersions: %s", pair)
	return pair, nil
}

// versionTags returns every tag that parses as a version, ascending.
func (s *Source) versionTags(repo *git.Repository) ([]version.Version, error) {
	iter, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var versions []version.Version
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if !strings.HasPrefix(name, s.tagPrefix) {
			return nil
		}
		v, err := version.Parse(strings.TrimPrefix(name, s.tagPrefix))
		if err != nil {
			return nil
		}
		versions = append(versions, v)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Compare(versions[j]) < 0
	})
	return versions, nil
}

// resolveTag resolves a version tag to the commit it points at.
func (s *Source) resolveTag(repo *git.Repository, v version.Version) (plumbing.Hash, error) {
	name := s.TagName(v)
	hash, err := repo.ResolveRevision(plumbing.Revision(plumbing.NewTagReferenceName(name)))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving tag %s: %w", name, err)
	}
	return *hash, nil
}

// resolveNew resolves the new version's tag, or HEAD if it is untagged.
func (s *Source) resolveNew(repo *git.Repository, v version.Version) (plumbing.Hash, error) {
	hash, err := s.resolveTag(repo, v)
	if err == nil {
		return hash, nil
	}
	logDebug("[git] tag %s not found, using HEAD", s.TagName(v))

	head, err := repo.Head()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("getting HEAD reference: %w", err)
	}
	return head.Hash(), nil
}

// reachable returns the set of commits reachable from hash.
func reachable(ctx context.Context, repo *git.Repository, hash plumbing.Hash) (map[plumbing.Hash]bool, error) {
	seen := make(map[plumbing.Hash]bool)
	err := walk(ctx, repo, hash, func(c *object.Commit) error {
		seen[c.Hash] = true
		return nil
	})
	return seen, err
}

// walk visits the history of hash newest first, honoring ctx between commits.
func walk(ctx context.Context, repo *git.Repository, hash plumbing.Hash, fn func(*object.Commit) error) error {
	iter, err := repo.Log(&git.LogOptions{From: hash})
	if err != nil {
		return fmt.Errorf("reading log from %s: %w", hash, err)
	}
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(c)
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return fmt.Errorf("walking log from %s: %w", hash, err)
	}
	return nil
}

// formatCommit renders a commit as a raw changelog line.
func formatCommit(c *object.Commit) string {
	subject := Subject(c.Message)
	return fmt.Sprintf("&&&%s&&& %s @@@%s@@@###%s###", c.Hash, subject, subject, c.Author.Email)
}

// Subject returns the first non-empty line of a commit message.
func Subject(message string) string {
	for _, line := range strings.Split(message, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			return s
		}
	}
	return ""
}
