// arcade runs the KeinPlan minigames in a terminal, over SSH or in a window.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade scores [game]     - Show the score history
//	arcade serve             - Start SSH server for remote play
//	arcade window [game]     - Play in a desktop window
//
// Global flags:
//
//	--fps <rate>          - Frames per second (default: 30)
//	--seed <value>        - RNG seed for reproducible gameplay
//	--db <path>           - Database path (default: ~/.arcade/scores.db)
//	--config-dir <dir>    - Directory with <game>.yaml overrides
//	--log-file <path>     - Write logs to a rotating file
//	--log-level <level>   - debug, info, warn or error
//
// Every global flag has an ARCADE_* environment variable; explicit flags win.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagConfigDir string
	flagLogFile   string
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "KeinPlan Arcade - four small 3D minigames",
	Long: `KeinPlan Arcade bundles four minigames: Block Puzzle, Cube Racer,
Gravity Balls and Space Shooter. Play them in the terminal, host them over
SSH, or open a desktop window.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  scores   - View the score history
  serve    - Start SSH server for remote play
  window   - Play in a desktop window

Examples:
  arcade list
  arcade play cube-racer
  arcade play space-shooter --remote :8080
  arcade menu
  arcade serve --ssh :2222
  arcade scores block-puzzle`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 30, "Frames per second")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	pf.StringVar(&flagConfigDir, "config-dir", "", "Directory with <game>.yaml overrides")
	pf.StringVar(&flagLogFile, "log-file", "", "Rotating log file (terminal play logs nowhere without it)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(windowCmd)
}
