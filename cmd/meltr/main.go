package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"meltr/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "meltr",
	Short: "Melt delimited text into a long-format diagnostic table",
	Long: `meltr converts delimited text files into a long-format
(row, col, data_type, value) table for diagnostics and type inspection,
processing files far larger than memory in bounded chunks`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(meltCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(guessCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-warnings", 1000, "maximum number of warnings to keep")
	rootCmd.PersistentFlags().String("config", "", "path to meltr.toml (default: search upwards)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}
