package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"meltr/internal/driver"
	"meltr/internal/tablefmt"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.csv",
	Short: "Dump the token stream of a delimited text file",
	Long:  `Tokenize shows the exact cell tokens the melter would consume, with their zero-based grid positions rendered 1-based`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	maxWarnings, err := cmd.Root().PersistentFlags().GetInt("max-warnings")
	if err != nil {
		return fmt.Errorf("failed to get max-warnings flag: %w", err)
	}

	result, err := driver.Tokenize(path, driver.Options{Config: cfg}, maxWarnings)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		result.Bag.Sort()
		tablefmt.Warnings(os.Stderr, result.Bag.Items(), useColor(cmd, os.Stderr))
	}

	return tablefmt.Tokens(os.Stdout, result.Tokens)
}
