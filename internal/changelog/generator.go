package changelog

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/taglog/internal/version"
)

// LogSource returns the raw history for a version range.
type LogSource interface {
	ChangeLog(ctx context.Context, opts Options) (string, error)
}

// BuildNumberSource looks up the build number of the new version. It
// reports false when there is none.
type BuildNumberSource interface {
	BuildNumber(ctx context.Context, opts Options) (string, bool, error)
}

// Options are the per-run settings resolved by the CLI.
type Options struct {
	// UseStdIn reads the raw log from the generator's stdin reader instead
	// of the LogSource.
	UseStdIn bool
	// NoShowVersion suppresses the version header.
	NoShowVersion bool
	// NormalizeTags lowercases and trims tags before routing.
	NormalizeTags bool
	// Versions is the range being described.
	Versions version.Pair
	// ReleaseManager is the email of the contributor shipping the release.
	ReleaseManager string
	// BuildNumber, when set, takes precedence over the BuildNumberSource.
	BuildNumber string
}

// Generator assembles changelog text from raw history.
type Generator struct {
	cfg    Configuration
	source LogSource
	stdin  io.Reader
	builds BuildNumberSource
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithLogSource sets the history source used when Options.UseStdIn is false.
func WithLogSource(s LogSource) GeneratorOption {
	return func(g *Generator) { g.source = s }
}

// WithStdIn sets the reader used when Options.UseStdIn is true.
func WithStdIn(r io.Reader) GeneratorOption {
	return func(g *Generator) { g.stdin = r }
}

// WithBuildNumberSource sets the build number lookup.
func WithBuildNumberSource(s BuildNumberSource) GeneratorOption {
	return func(g *Generator) { g.builds = s }
}

// NewGenerator creates a Generator for cfg.
func NewGenerator(cfg Configuration, opts ...GeneratorOption) *Generator {
	g := &Generator{cfg: cfg}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces the changelog text. Failing to read the raw log is the
// only fatal condition; every optional block is omitted when unavailable.
func (g *Generator) Generate(ctx context.Context, opts Options) (string, error) {
	sections, err := g.Sections(ctx, opts)
	if err != nil {
		return "", err
	}

	var blocks []string
	if h := g.cfg.Format.Header; h != "" {
		blocks = append(blocks, withNewline(h))
	}

	versionHeader, err := g.versionHeader(ctx, opts)
	if err != nil {
		return "", err
	}
	if versionHeader != "" {
		blocks = append(blocks, "# "+versionHeader+"\n")
	}

	if rm, ok := g.releaseManager(opts); ok {
		blocks = append(blocks, "### Release Manager\n - "+g.cfg.ContributorHandlePrefix+rm.Handle+"\n")
	}

	for _, s := range sections {
		if s.Visible() {
			blocks = append(blocks, s.Render())
		}
	}

	if f := g.cfg.Format.Footer; f != "" {
		blocks = append(blocks, withNewline(f))
	}

	return strings.Join(blocks, "\n"), nil
}

// Sections runs the pipeline up to routing and returns every configured
// section, including excluded and empty ones, in configured order.
func (g *Generator) Sections(ctx context.Context, opts Options) ([]Section, error) {
	raw, err := g.rawChangeLog(ctx, opts)
	if err != nil {
		return nil, err
	}

	lines, err := g.filteredLines(raw)
	if err != nil {
		return nil, err
	}

	parsed, err := ParseLines(ctx, lines, g.cfg.Delimiters, opts.NormalizeTags)
	if err != nil {
		return nil, fmt.Errorf("parsing lines: %w", err)
	}

	sections := NewSections(g.cfg.Format.Sections)
	router := NewRouter(g.cfg.Format.Sections)
	dropped := 0
	for _, line := range parsed {
		idx, ok := router.Route(line)
		if !ok {
			dropped++
			continue
		}
		sections[idx].Append(g.formatLine(line))
	}
	if dropped > 0 {
		logDebug("[changelog] %d lines matched no section", dropped)
	}
	return sections, nil
}

func (g *Generator) rawChangeLog(ctx context.Context, opts Options) (string, error) {
	if opts.UseStdIn {
		if g.stdin == nil {
			return "", &SourceError{Source: "standard input", Err: io.ErrUnexpectedEOF}
		}
		data, err := io.ReadAll(g.stdin)
		if err != nil {
			return "", &SourceError{Source: "standard input", Err: err}
		}
		return string(data), nil
	}

	if g.source == nil {
		return "", &SourceError{Source: "git log", Err: ErrNoLogSource}
	}
	raw, err := g.source.ChangeLog(ctx, opts)
	if err != nil {
		return "", &SourceError{Source: "git log", Err: err}
	}
	return raw, nil
}

// filteredLines sorts, transforms and splits the raw log into non-empty lines.
func (g *Generator) filteredLines(raw string) ([]string, error) {
	chain, err := NewTransformers(g.cfg)
	if err != nil {
		return nil, err
	}
	marker, err := CompileMarker(g.cfg.Transform.MarkerPattern)
	if err != nil {
		return nil, fmt.Errorf("compiling marker pattern: %w", err)
	}

	// Cherry-picks are only adjacent, and so only collapsible, after sorting.
	transformed := chain.Apply(SortLines(raw, marker))

	var lines []string
	for _, line := range strings.Split(transformed, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func (g *Generator) formatLine(line Line) string {
	value := line.Value
	if g.cfg.Format.ShowTags && len(line.Tags) > 0 {
		wrapped := make([]string, len(line.Tags))
		for i, tag := range line.Tags {
			wrapped[i] = g.cfg.Delimiters.Output.Wrap(tag)
		}
		value = strings.Join(wrapped, " ") + " " + value
	}
	if g.cfg.Format.ShowAuthors {
		if c, ok := g.cfg.FindContributor(line.Email); ok {
			value += " (" + g.cfg.ContributorHandlePrefix + c.Handle + ")"
		}
	}
	return value
}

func (g *Generator) versionHeader(ctx context.Context, opts Options) (string, error) {
	if opts.NoShowVersion {
		return "", nil
	}
	header := opts.Versions.New.String()

	if opts.BuildNumber != "" {
		return fmt.Sprintf("%s (%s)", header, opts.BuildNumber), nil
	}
	if g.builds == nil {
		return header, nil
	}
	build, ok, err := g.builds.BuildNumber(ctx, opts)
	if err != nil {
		return "", fmt.Errorf("looking up build number: %w", err)
	}
	if !ok || build == "" {
		return header, nil
	}
	return fmt.Sprintf("%s (%s)", header, build), nil
}

func (g *Generator) releaseManager(opts Options) (Contributor, bool) {
	if opts.ReleaseManager == "" {
		return Contributor{}, false
	}
	return g.cfg.FindContributor(opts.ReleaseManager)
}

func withNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
