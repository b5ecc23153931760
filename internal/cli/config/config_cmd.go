// Package config provides the `taglog config` command tree: show, init,
// path and validate.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/taglog/internal/cli/shared"
	"github.com/ariel-frischer/taglog/internal/config"
	clierrors "github.com/ariel-frischer/taglog/internal/errors"
	"github.com/ariel-frischer/taglog/internal/output"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewCommand builds the `taglog config` command tree.
func NewCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:     "config",
		Short:   "Inspect and initialize taglog configuration",
		GroupID: shared.GroupConfiguration,
		Long: `Inspect and initialize taglog configuration.

Configuration precedence (highest to lowest):
  1. Environment variables (TAGLOG_*)
  2. Explicit file (--config)
  3. Project config (.taglog/config.yml, or .taglog/config.json)
  4. User config (~/.config/taglog/config.yml)
  5. Built-in defaults`,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the merged configuration",
		Example: `  taglog config show
  taglog config show --json`,
		Args: cobra.NoArgs,
		RunE: runConfigShow,
	}
	showCmd.Flags().Bool("json", false, "Output in JSON format")

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a commented config template",
		Long: `Write a commented config template.

By default the template is written to .taglog/config.yml in the given
path (or the current directory). Use --user to write the user-level config
instead. Existing files are left unchanged unless --force is given.`,
		Example: `  taglog config init
  taglog config init ~/src/service
  taglog config init --user --force`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runConfigInit,
	}
	initCmd.Flags().Bool("user", false, "Write the user-level config instead of the project config")
	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file locations taglog reads",
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	}

	validateCmd := &cobra.Command{
		Use:          "validate",
		Short:        "Load every config layer and report problems",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runConfigValidate,
	}

	configCmd.AddCommand(showCmd, initCmd, pathCmd, validateCmd)
	return configCmd
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	loaded, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	data, err := config.MarshalYAML(loaded.Config)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		var generic map[string]any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return fmt.Errorf("converting config: %w", err)
		}
		rendered, err := output.RenderJSON(map[string]any{
			"sources": layerNames(loaded.Layers),
			"config":  generic,
		})
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
		return nil
	}

	fmt.Fprintln(out, "# Configuration Sources:")
	for _, layer := range loaded.Layers {
		fmt.Fprintf(out, "#   %s\n", layer)
	}
	fmt.Fprintln(out)
	_, err = out.Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	user, _ := cmd.Flags().GetBool("user")
	force, _ := cmd.Flags().GetBool("force")

	var target string
	if user {
		path, err := config.UserConfigPath()
		if err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Configuration, "resolving user config path")
		}
		target = path
	} else {
		root := ""
		if len(args) > 0 {
			resolved, err := ResolvePath(args[0])
			if err != nil {
				return clierrors.Wrap(err, clierrors.Argument)
			}
			root = resolved
		}
		target = config.ProjectConfigPath(root)
	}

	if _, err := os.Stat(target); err == nil && !force {
		return clierrors.ConfigFileExists(target)
	}
	if err := EnsureDirectory(filepath.Dir(target)); err != nil {
		return clierrors.FileNotWritable(target, err)
	}
	if err := os.WriteFile(target, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return clierrors.FileNotWritable(target, err)
	}

	output.PrintSuccess(cmd.OutOrStdout(), "Wrote "+target)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	dim := color.New(color.Faint).SprintFunc()

	userPath, err := config.UserConfigPath()
	if err != nil {
		userPath = "(unavailable: " + err.Error() + ")"
	}
	rows := []struct{ label, path string }{
		{"user", userPath},
		{"project", config.ProjectConfigPath("")},
		{"project (json)", config.ProjectJSONConfigPath("")},
	}
	if explicit, _ := cmd.Flags().GetString(shared.ConfigFlagName); explicit != "" {
		rows = append(rows, struct{ label, path string }{"explicit", explicit})
	}

	for _, row := range rows {
		state := "missing"
		if _, err := os.Stat(row.path); err == nil {
			state = "found"
		}
		fmt.Fprintf(out, "%-15s %s %s\n", row.label, row.path, dim("("+state+")"))
	}
	fmt.Fprintf(out, "%-15s %v\n", "environment", config.EnvVarNames())
	return nil
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	loaded, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}
	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Configuration is valid (%d sections from %d sources)",
		len(loaded.Config.Format.Sections), len(loaded.Layers)))
	return nil
}

func layerNames(layers []config.Layer) []string {
	names := make([]string, 0, len(layers))
	for _, l := range layers {
		names = append(names, l.String())
	}
	return names
}
