package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"meltr/internal/guess"
)

var guessCmd = &cobra.Command{
	Use:   "guess value...",
	Short: "Show the guessed data type of one or more values",
	Long:  `Guess runs the per-value type detection used for melted string cells under the configured locale`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGuess,
}

func runGuess(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	loc := cfg.LocaleValue()

	for _, value := range args {
		fmt.Fprintf(os.Stdout, "%-12s %q\n", guess.Guess(value, loc), value)
	}
	return nil
}
