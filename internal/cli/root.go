// Package cli implements the taglog command tree.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariel-frischer/taglog/internal/cli/config"
	"github.com/ariel-frischer/taglog/internal/cli/shared"
	"github.com/ariel-frischer/taglog/internal/cli/util"
	clierrors "github.com/ariel-frischer/taglog/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Command group IDs, re-exported for the command files in this package.
const (
	GroupGenerate      = shared.GroupGenerate
	GroupConfiguration = shared.GroupConfiguration
	GroupInfo          = shared.GroupInfo
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taglog",
		Short: "Generate changelogs from tagged commit subjects",
		Long: `taglog turns the commit history between two releases into a changelog.

Commit subjects carry tags such as "[feature]" or "[fix]". Each line is
routed to the section that claims its tag, cherry-picked duplicates are
collapsed, and the result is rendered with an optional header, version,
release manager and footer.

Source: https://github.com/ariel-frischer/taglog`,
		Example: `  # Changelog between the two most recent release tags
  taglog compare

  # Explicit range, written to a file
  taglog compare --versions "1.4.0 1.5.0" --output CHANGELOG.md

  # Feed a log from another tool
  git log --format='%s' v1.4.0..v1.5.0 | taglog compare --stdin --versions "1.4.0 1.5.0"

  # Show the merged configuration
  taglog config show`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupGlobals,
		PersistentPostRun: teardownGlobals,
	}

	cmd.PersistentFlags().StringP(shared.ConfigFlagName, "c", "", "Path to a config file (overrides user and project config)")
	cmd.PersistentFlags().BoolP("debug", "d", false, "Write debug logs to stderr")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	cmd.AddGroup(
		&cobra.Group{ID: GroupGenerate, Title: "Generate:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"},
		&cobra.Group{ID: GroupInfo, Title: "Info:"},
	)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), c.UseLine())
	})

	cmd.AddCommand(newCompareCmd(), config.NewCommand(), util.NewVersionCommand())
	return cmd
}

func setupGlobals(cmd *cobra.Command, _ []string) error {
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		color.NoColor = true
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		return enableDebugLogging()
	}
	return nil
}

func teardownGlobals(*cobra.Command, []string) {
	disableDebugLogging()
}

// Execute runs the root command and prints any error to stderr.
// The returned error maps to an exit code with ExitCode.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx, rootCmd)
}

func execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		var exitErr *shared.ExitError
		if !errors.As(err, &exitErr) {
			clierrors.FprintAny(cmd.ErrOrStderr(), err)
		}
	}
	return err
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	return shared.ExitCode(err)
}
