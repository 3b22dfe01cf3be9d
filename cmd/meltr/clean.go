package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"meltr/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the melted-table cache",
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	cache, err := driver.OpenCache("meltr")
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	if err := cache.Clean(); err != nil {
		return fmt.Errorf("failed to clean cache: %w", err)
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		fmt.Fprintln(os.Stdout, "cache cleaned")
	}
	return nil
}
