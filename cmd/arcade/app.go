package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/keinplan-arcade/internal/config"
	"github.com/vovakirdan/keinplan-arcade/internal/core"
	"github.com/vovakirdan/keinplan-arcade/internal/games"
	"github.com/vovakirdan/keinplan-arcade/internal/logging"
	"github.com/vovakirdan/keinplan-arcade/internal/registry"
	"github.com/vovakirdan/keinplan-arcade/internal/storage"
)

// settings are the global options after env and flags are merged.
type settings struct {
	FPS        int
	Seed       int64
	DBPath     string
	ConfigDir  string
	LogFile    string
	LogLevel   string
	SSHAddr    string
	RemoteAddr string
}

// resolveSettings applies env over defaults and explicit flags over env.
func resolveSettings(cmd *cobra.Command, env config.Env) settings {
	s := settings{
		FPS:        env.FPS,
		Seed:       env.Seed,
		DBPath:     env.DBPath,
		ConfigDir:  env.ConfigDir,
		LogFile:    env.LogFile,
		LogLevel:   env.LogLevel,
		SSHAddr:    env.SSHAddr,
		RemoteAddr: env.RemoteAddr,
	}
	flags := cmd.Flags()
	if flags.Changed("fps") {
		s.FPS = flagFPS
	}
	if flags.Changed("seed") {
		s.Seed = flagSeed
	}
	if flags.Changed("db") {
		s.DBPath = flagDBPath
	}
	if flags.Changed("config-dir") {
		s.ConfigDir = flagConfigDir
	}
	if flags.Changed("log-file") {
		s.LogFile = flagLogFile
	}
	if flags.Changed("log-level") {
		s.LogLevel = flagLogLevel
	}
	return s
}

// app holds what every command needs: settings, the registry and a logger.
type app struct {
	settings settings
	registry *registry.Registry
	logger   *log.Logger
	closeLog func() error
}

// newApp loads env, game configs and the logger. quiet discards logs unless
// a log file is set, for commands that own the terminal.
func newApp(cmd *cobra.Command, quiet bool) (*app, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	s := resolveSettings(cmd, env)

	logger, closeLog, err := logging.New(logging.Options{
		Level:  s.LogLevel,
		File:   s.LogFile,
		Prefix: "arcade",
		Quiet:  quiet,
	})
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadGames(s.ConfigDir)
	if err != nil {
		logger.Warn("using defaults for some games", "err", err)
	}

	return &app{
		settings: s,
		registry: games.NewRegistry(cfg),
		logger:   logger,
		closeLog: closeLog,
	}, nil
}

func (a *app) close() {
	if a.closeLog != nil {
		a.closeLog()
	}
}

// openStore opens the scores database. Failure is logged and play goes on
// without persistence.
func (a *app) openStore() *storage.Store {
	store, err := storage.Open(a.settings.DBPath)
	if err != nil {
		a.logger.Warn("could not open scores database", "path", a.settings.DBPath, "err", err)
		return nil
	}
	return store
}

// runtime builds the host config for the current terminal.
func (a *app) runtime() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.FPS = a.settings.FPS
	cfg.Seed = a.settings.Seed
	return cfg
}

// checkGame rejects unknown kinds before any host starts.
func (a *app) checkGame(kind string) error {
	if !a.registry.Exists(kind) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games): %w", kind, registry.ErrUnknownKind)
	}
	return nil
}
