// Package util provides the informational commands of the taglog CLI.
package util

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/taglog/internal/build"
	"github.com/ariel-frischer/taglog/internal/cli/shared"
	"github.com/ariel-frischer/taglog/internal/output"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// SourceURL is the project source URL
const SourceURL = "https://github.com/ariel-frischer/taglog"

// NewVersionCommand builds the `taglog version` command.
func NewVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Display version information (v)",
		Long:    "Display version, commit, build date, and Go version information for taglog",
		Example: `  # Show version info
  taglog version

  # Plain output (for scripts)
  taglog version --plain

  # Machine-readable
  taglog version --json`,
		GroupID: shared.GroupInfo,
		Args:    cobra.NoArgs,
		RunE:    runVersion,
	}
	cmd.Flags().Bool("plain", false, "Plain output without formatting")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	plain, _ := cmd.Flags().GetBool("plain")
	asJSON, _ := cmd.Flags().GetBool("json")
	info := build.Current()
	out := cmd.OutOrStdout()

	switch {
	case asJSON:
		rendered, err := output.RenderJSON(info)
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
	case plain:
		printPlainVersion(out, info)
	default:
		printPrettyVersion(out, info)
	}
	return nil
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(out io.Writer, info build.Info) {
	fmt.Fprintf(out, "taglog %s\n", info.Version)
	fmt.Fprintf(out, "commit: %s\n", info.Commit)
	fmt.Fprintf(out, "built: %s\n", info.BuildDate)
	fmt.Fprintf(out, "go: %s\n", info.GoVersion)
	fmt.Fprintf(out, "platform: %s\n", info.Platform)
}

// printPrettyVersion prints a styled version output inside a box
func printPrettyVersion(out io.Writer, info build.Info) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	rows := []struct {
		label string
		value string
	}{
		{"Version", info.Version},
		{"Commit", truncateCommit(info.Commit)},
		{"Built", info.BuildDate},
		{"Go", info.GoVersion},
		{"Platform", info.Platform},
	}

	const labelWidth = 10
	inner := 0
	for _, r := range rows {
		inner = max(inner, labelWidth+3+len(r.value))
	}
	inner += 2

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s  %s\n\n", cyan("taglog"), dim("tag-routed changelogs from git history"))
	fmt.Fprintln(out, "  ╭"+strings.Repeat("─", inner)+"╮")
	for _, r := range rows {
		pad := inner - (labelWidth + 3 + len(r.value)) - 1
		fmt.Fprintf(out, "  │ %s   %s%s│\n", yellow(fmt.Sprintf("%*s", labelWidth, r.label)), white(r.value), strings.Repeat(" ", pad))
	}
	fmt.Fprintln(out, "  ╰"+strings.Repeat("─", inner)+"╯")
	if info.DevBuild {
		fmt.Fprintf(out, "  %s\n", yellow("development build"))
	}
	fmt.Fprintf(out, "  %s\n\n", dim(SourceURL))
}

// truncateCommit shortens commit hash if it's too long
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
