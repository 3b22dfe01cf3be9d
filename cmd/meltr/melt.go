package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"meltr/internal/config"
	"meltr/internal/driver"
	"meltr/internal/melt"
	"meltr/internal/progress"
	"meltr/internal/tablefmt"
	"meltr/internal/ui"
)

var meltCmd = &cobra.Command{
	Use:   "melt [flags] file.csv",
	Short: "Melt a delimited text file into a long-format table",
	Long: `Melt scans a delimited text file and emits one output row per cell:
its 1-based row and column, a guessed data type, and the raw value`,
	Args: cobra.ExactArgs(1),
	RunE: runMelt,
}

func init() {
	meltCmd.Flags().String("delim", "", "field delimiter (default from config, else ',')")
	meltCmd.Flags().String("quote", "", "quote character (default from config, else '\"')")
	meltCmd.Flags().StringSlice("na", nil, "strings to treat as missing")
	meltCmd.Flags().Int("chunk-lines", 0, "melt in chunks of this many source rows (0 = single pass)")
	meltCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	meltCmd.Flags().Bool("progress", false, "show a progress bar on stderr")
	meltCmd.Flags().String("ui", "off", "interactive progress display (auto|on|off)")
	meltCmd.Flags().Bool("cache", false, "cache melted tables for unchanged inputs")
	meltCmd.Flags().Int("max-value-width", 0, "truncate values in pretty output (0 = no limit)")
}

func runMelt(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyMeltFlags(cmd, &cfg)

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "pretty", "json", "msgpack":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	opts := driver.Options{Config: cfg}
	if chunk, _ := cmd.Flags().GetInt("chunk-lines"); chunk > 0 {
		opts.ChunkLines = chunk
	}
	if cached, _ := cmd.Flags().GetBool("cache"); cached {
		cache, err := driver.OpenCache("meltr")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		opts.Cache = cache
	}

	uiFlag, _ := cmd.Flags().GetString("ui")
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	var res *driver.Result
	if shouldUseTUI(mode) && format == "pretty" {
		res, err = runMeltWithUI(path, opts)
	} else {
		if showProgress, _ := cmd.Flags().GetBool("progress"); showProgress {
			opts.Progress = progress.NewBar(os.Stderr, path, 40)
		}
		res, err = driver.Melt(path, opts)
	}
	if err != nil {
		return err
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		tablefmt.Warnings(os.Stderr, res.Table.Warnings, useColor(cmd, os.Stderr))
	}

	return writeTable(cmd, res.Table, format)
}

func writeTable(cmd *cobra.Command, table *melt.Table, format string) error {
	switch format {
	case "pretty":
		maxWidth, _ := cmd.Flags().GetInt("max-value-width")
		return tablefmt.Pretty(os.Stdout, table, tablefmt.Options{
			Color:         useColor(cmd, os.Stdout),
			MaxValueWidth: maxWidth,
		})
	case "json":
		return tablefmt.JSON(os.Stdout, table)
	case "msgpack":
		return tablefmt.Msgpack(os.Stdout, table)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// applyMeltFlags overlays command-line format flags onto the configuration.
func applyMeltFlags(cmd *cobra.Command, cfg *config.Config) {
	if delim, _ := cmd.Flags().GetString("delim"); delim != "" {
		cfg.Format.Delim = delim
	}
	if quote, _ := cmd.Flags().GetString("quote"); quote != "" {
		cfg.Format.Quote = quote
	}
	if na, _ := cmd.Flags().GetStringSlice("na"); na != nil {
		cfg.Format.NA = na
	}
	if maxWarnings, err := cmd.Root().PersistentFlags().GetInt("max-warnings"); err == nil && maxWarnings > 0 {
		cfg.Tuning.MaxWarnings = maxWarnings
	}
}

type outcome struct {
	res *driver.Result
	err error
}

// runMeltWithUI pairs the melt goroutine with the Bubble Tea progress
// model; the melter streams events through a non-blocking channel sink.
func runMeltWithUI(path string, opts driver.Options) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan outcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events, Path: path}
		res, err := driver.Melt(path, opts)
		outcomeCh <- outcome{res: res, err: err}
		close(events)
	}()

	model := ui.NewMeltModel(path, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	out := <-outcomeCh
	if uiErr != nil {
		return out.res, uiErr
	}
	return out.res, out.err
}
