package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbosity int
	log       = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	rootCmd = &cobra.Command{
		Use:   "infographic",
		Short: "Turn plain text into step-by-step infographics",
		Long: `infographic turns a block of text into a titled sequence of steps using a
language model, lays the steps out in one of several arrangements and
exports the result as PNG, JPEG, SVG or a standalone HTML page.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(verbosity)
			log.Debug("command started", "command", cmd.Name())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG)")

	rootCmd.AddCommand(
		newGenerateCmd(),
		newRenderCmd(),
		newPreviewCmd(),
		newCatalogCmd(),
		newCopySVGCmd(),
		newSettingsCmd(),
	)
}

func setupLogger(v int) {
	level := slog.LevelWarn
	switch {
	case v >= 2:
		level = slog.LevelDebug
	case v == 1:
		level = slog.LevelInfo
	}
	log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
