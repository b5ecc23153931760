package shared

import (
	"github.com/ariel-frischer/taglog/internal/config"
	clierrors "github.com/ariel-frischer/taglog/internal/errors"
	"github.com/spf13/cobra"
)

// LoadConfig loads the layered configuration honoring the --config flag.
// Failures come back as Configuration CLI errors.
func LoadConfig(cmd *cobra.Command) (*config.Loaded, error) {
	path, _ := cmd.Flags().GetString(ConfigFlagName)
	loaded, err := config.Load(path)
	if err != nil {
		return nil, clierrors.ConfigInvalid(err)
	}
	return loaded, nil
}
