package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the games and their best scores",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	games := a.registry.List()
	out := cmd.OutOrStdout()
	if len(games) == 0 {
		fmt.Fprintln(out, "No games available.")
		return nil
	}

	store := a.openStore()
	if store != nil {
		defer store.Close()
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		BorderRow(false).
		Headers("ID", "TITLE", "BEST")
	for _, g := range games {
		best := "-"
		if store != nil {
			if n, err := store.HighScore(g.ID); err == nil && n > 0 {
				best = strconv.Itoa(n)
			}
		}
		t.Row(g.ID, g.Title, best)
	}

	fmt.Fprintln(out, t.Render())
	fmt.Fprintln(out, "Run 'arcade play <id>' to play a game.")
	return nil
}
