package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/keinplan-arcade/internal/core"
	"github.com/vovakirdan/keinplan-arcade/internal/platform/desktop"
)

var flagScale int

var windowCmd = &cobra.Command{
	Use:   "window [game]",
	Short: "Play in a desktop window",
	Long: `Open a desktop window with real keyboard, mouse, touch and gamepad
support. Without a game, the window starts at the menu.

Requires a cgo build.

Examples:
  arcade window
  arcade window gravity-balls --scale 4`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagScale, "scale", 3, "Window pixels per playfield pixel")
}

func runWindow(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	opts := desktop.Options{
		Registry: a.registry,
		Logger:   a.logger,
		Scale:    flagScale,
	}
	if len(args) == 1 {
		if err := a.checkGame(args[0]); err != nil {
			return err
		}
		opts.Start = args[0]
	}

	opts.Config = core.DefaultConfig()
	opts.Config.FPS = a.settings.FPS
	opts.Config.Seed = a.settings.Seed

	if store := a.openStore(); store != nil {
		defer store.Close()
		opts.Store = store
	}
	return desktop.Run(opts)
}
