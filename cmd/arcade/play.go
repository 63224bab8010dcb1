package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/keinplan-arcade/internal/input"
	"github.com/vovakirdan/keinplan-arcade/internal/platform/remote"
	"github.com/vovakirdan/keinplan-arcade/internal/platform/tui"
)

var flagRemote string

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game in the terminal.

Controls:
  WASD/Arrows  - Move
  Space        - Jump
  E/Click      - Action (select, zoom in)
  Q            - Zoom out
  P/Esc        - Pause
  R / B        - Restart / back to menu (paused or game over)
  Ctrl+C       - Quit

With --remote, a phone or browser can connect to ws://<addr>/pad and act as a
touch joystick or gamepad.

Examples:
  arcade play block-puzzle
  arcade play cube-racer --seed 42
  arcade play gravity-balls --remote :8080`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game, Tab for scores.
After a game ends, play again or return to the menu.

Examples:
  arcade menu
  arcade menu --fps 60
  arcade menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runTerminal(cmd, "")
	},
}

func init() {
	playCmd.Flags().StringVar(&flagRemote, "remote", "", "Serve the remote pad on this address (e.g. :8080)")
	menuCmd.Flags().StringVar(&flagRemote, "remote", "", "Serve the remote pad on this address (e.g. :8080)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	return runTerminal(cmd, args[0])
}

// runTerminal hosts one session in this terminal, optionally with a
// remote pad server feeding the same aggregator.
func runTerminal(cmd *cobra.Command, start string) error {
	a, err := newApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	if start != "" {
		if err := a.checkGame(start); err != nil {
			return err
		}
	}

	opts := tui.Options{
		Config:   a.runtime(),
		Registry: a.registry,
		Logger:   a.logger,
		Start:    start,
	}
	if store := a.openStore(); store != nil {
		defer store.Close()
		opts.Store = store
	}

	m := tui.NewModel(opts)
	defer m.Close()
	p := tui.NewProgram(m)

	addr := a.settings.RemoteAddr
	if cmd.Flags().Changed("remote") {
		addr = flagRemote
	}
	if addr != "" {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		pad := remote.NewServer(func(f func(*input.Aggregator)) {
			p.Send(tui.InputMsg(f))
		}, a.logger.WithPrefix("remote"))
		m.Bus().SubscribeAll(pad.Broadcast)

		go func() {
			if err := pad.ListenAndServe(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("remote pad stopped", "err", err)
			}
		}()
	}

	_, err = p.Run()
	return err
}
