package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ariel-frischer/taglog/internal/changelog"
	"github.com/ariel-frischer/taglog/internal/cli/shared"
	clierrors "github.com/ariel-frischer/taglog/internal/errors"
	"github.com/ariel-frischer/taglog/internal/git"
	"github.com/ariel-frischer/taglog/internal/output"
	"github.com/ariel-frischer/taglog/internal/progress"
	"github.com/ariel-frischer/taglog/internal/version"
	"github.com/spf13/cobra"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Generate the changelog for a version range",
		Long: `Generate the changelog for a version range.

The commit history between the two release tags is read from the git
repository (or from standard input with --stdin), filtered, routed into
sections by tag and rendered as markdown, HTML or JSON.

Without --versions, the two highest release tags are used.`,
		Example: `  taglog compare
  taglog compare --versions "6.12.1 6.13.0" --release-manager alice@example.com
  taglog compare --versions "1.0.0 1.1.0" --format html --output dist/notes.html
  cat history.txt | taglog compare --stdin --no-show-version`,
		GroupID: GroupGenerate,
		Args:    cobra.NoArgs,
		RunE:    runCompare,
	}

	cmd.Flags().String("versions", "", `Version range as "<old> <new>"`)
	cmd.Flags().Bool("stdin", false, "Read the raw log from standard input instead of git")
	cmd.Flags().Bool("no-show-version", false, "Omit the version header")
	cmd.Flags().String("release-manager", "", "Email of the contributor shipping the release")
	cmd.Flags().Bool("normalize-tags", false, "Lowercase and trim tags before routing")
	cmd.Flags().String("build-number", "", "Build number shown next to the version (overrides git lookup)")
	cmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().StringP("format", "f", output.FormatMarkdown, fmt.Sprintf("Output format (%s)", strings.Join(output.Formats, ", ")))
	return cmd
}

// compareFlags are the parsed flags of `taglog compare`.
type compareFlags struct {
	versions       string
	stdin          bool
	noShowVersion  bool
	releaseManager string
	normalizeTags  bool
	buildNumber    string
	output         string
	format         string
}

func readCompareFlags(cmd *cobra.Command) compareFlags {
	var f compareFlags
	f.versions, _ = cmd.Flags().GetString("versions")
	f.stdin, _ = cmd.Flags().GetBool("stdin")
	f.noShowVersion, _ = cmd.Flags().GetBool("no-show-version")
	f.releaseManager, _ = cmd.Flags().GetString("release-manager")
	f.normalizeTags, _ = cmd.Flags().GetBool("normalize-tags")
	f.buildNumber, _ = cmd.Flags().GetString("build-number")
	f.output, _ = cmd.Flags().GetString("output")
	f.format, _ = cmd.Flags().GetString("format")
	return f
}

func runCompare(cmd *cobra.Command, _ []string) error {
	flags := readCompareFlags(cmd)
	if !output.IsValidFormat(flags.format) {
		return clierrors.UnknownFormat(flags.format, output.Formats)
	}

	loaded, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}
	cfg := loaded.Config
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	source := git.NewSource(cfg.Git)
	opts, err := resolveOptions(ctx, flags, source)
	if err != nil {
		return err
	}

	if opts.NoShowVersion && opts.BuildNumber != "" {
		output.PrintWarning(cmd.ErrOrStderr(), "--build-number has no effect without a version header")
	}

	spinner := progress.NewSpinner(cmd.ErrOrStderr(), terminalCapabilities(cmd))
	genOpts := []changelog.GeneratorOption{
		changelog.WithStdIn(cmd.InOrStdin()),
		changelog.WithLogSource(spinningSource{source: source, spinner: spinner}),
	}
	if !flags.stdin {
		genOpts = append(genOpts, changelog.WithBuildNumberSource(source))
	}
	gen := changelog.NewGenerator(cfg, genOpts...)

	rendered, err := render(ctx, gen, opts, flags.format)
	if err != nil {
		if changelog.IsSourceError(err) {
			return clierrors.HistoryUnavailable(err)
		}
		return err
	}

	stdout := cmd.OutOrStdout()
	toStdout := flags.output == "" || flags.output == "-"
	if toStdout && flags.format == output.FormatMarkdown && output.IsTerminal(stdout) {
		output.PrintRule(stdout, ruleLabel(opts))
	}
	if err := output.WriteResult(flags.output, []byte(rendered), stdout); err != nil {
		return clierrors.FileNotWritable(flags.output, err)
	}
	if !toStdout {
		output.PrintSuccess(cmd.ErrOrStderr(), "Wrote "+flags.output)
	}
	return nil
}

// resolveOptions turns flags into generator options. Without --versions the
// range comes from the repository's two highest release tags; with --stdin
// and no range the version header is dropped.
func resolveOptions(ctx context.Context, flags compareFlags, source *git.Source) (changelog.Options, error) {
	opts := changelog.Options{
		UseStdIn:       flags.stdin,
		NoShowVersion:  flags.noShowVersion,
		NormalizeTags:  flags.normalizeTags,
		ReleaseManager: flags.releaseManager,
		BuildNumber:    flags.buildNumber,
	}

	switch {
	case flags.versions != "":
		pair, err := version.ParsePair(flags.versions)
		if err != nil {
			return opts, clierrors.InvalidVersions(flags.versions, err)
		}
		opts.Versions = pair
	case flags.stdin:
		opts.NoShowVersion = true
	default:
		pair, err := source.LatestVersions(ctx)
		if errors.Is(err, git.ErrNotEnoughTags) {
			return opts, clierrors.VersionsRequired()
		}
		if err != nil {
			return opts, clierrors.HistoryUnavailable(err)
		}
		opts.Versions = pair
	}
	return opts, nil
}

func ruleLabel(opts changelog.Options) string {
	if opts.NoShowVersion || opts.Versions.New.IsZero() {
		return "changelog"
	}
	return opts.Versions.Old.String() + " → " + opts.Versions.New.String()
}

func render(ctx context.Context, gen *changelog.Generator, opts changelog.Options, format string) (string, error) {
	switch format {
	case output.FormatJSON:
		sections, err := gen.Sections(ctx, opts)
		if err != nil {
			return "", err
		}
		return output.RenderJSON(newChangelogDocument(opts, sections))
	case output.FormatHTML:
		markdown, err := gen.Generate(ctx, opts)
		if err != nil {
			return "", err
		}
		return output.RenderHTML(markdown)
	default:
		return gen.Generate(ctx, opts)
	}
}

// changelogDocument is the --format json shape.
type changelogDocument struct {
	Version         string            `json:"version,omitempty"`
	PreviousVersion string            `json:"previous_version,omitempty"`
	Sections        []sectionDocument `json:"sections"`
}

type sectionDocument struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

func newChangelogDocument(opts changelog.Options, sections []changelog.Section) changelogDocument {
	doc := changelogDocument{Sections: []sectionDocument{}}
	if !opts.Versions.New.IsZero() {
		doc.Version = opts.Versions.New.String()
		doc.PreviousVersion = opts.Versions.Old.String()
	}
	for _, s := range sections {
		if !s.Visible() {
			continue
		}
		doc.Sections = append(doc.Sections, sectionDocument{Title: s.Info.Title, Lines: s.Lines})
	}
	return doc
}

// spinningSource shows a spinner while the wrapped source reads history.
type spinningSource struct {
	source  changelog.LogSource
	spinner *progress.Spinner
}

func (s spinningSource) ChangeLog(ctx context.Context, opts changelog.Options) (string, error) {
	s.spinner.Start(fmt.Sprintf("Reading history %s..%s", opts.Versions.Old, opts.Versions.New))
	raw, err := s.source.ChangeLog(ctx, opts)
	if err != nil {
		s.spinner.Fail("Reading history failed")
		return "", err
	}
	s.spinner.Success(fmt.Sprintf("Read %d commits", countLines(raw)))
	return raw, nil
}

func countLines(raw string) int {
	n := 0
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

// terminalCapabilities reports the capabilities of stderr, or none when
// the command writes somewhere else.
func terminalCapabilities(cmd *cobra.Command) progress.TerminalCapabilities {
	if f, ok := cmd.ErrOrStderr().(*os.File); ok {
		return progress.DetectTerminalCapabilities(f)
	}
	return progress.TerminalCapabilities{}
}
