package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"meltr/internal/config"
)

// loadConfig resolves the effective configuration: an explicit --config
// path wins, otherwise the nearest meltr.toml found walking up from the
// working directory, otherwise defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	return config.Discover(".")
}
