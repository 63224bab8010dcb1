package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/keinplan-arcade/internal/platform/tui"
)

var (
	sshListen   string
	hostKeyPath string
	idleMinutes int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host the arcade over SSH",
	Long: `Host the arcade over SSH. Every connection gets its own menu, session
and event bus; all of them share the scores database.

The listen address defaults to $ARCADE_SSH_ADDR or :23234. Without --host-key
a key is generated at ~/.arcade/host_key on first start.

Examples:
  arcade serve
  arcade serve --ssh :2222 --idle-timeout 10
  ssh -p 23234 localhost`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&sshListen, "ssh", ":23234", "listen address")
	f.StringVar(&hostKeyPath, "host-key", "", "host key file")
	f.IntVar(&idleMinutes, "idle-timeout", 30, "minutes of silence before a client is dropped")
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = a.settings.SSHAddr
	cfg.HostKeyPath = hostKeyPath
	cfg.IdleTimeout = time.Duration(idleMinutes) * time.Minute
	if cmd.Flags().Changed("ssh") {
		cfg.Address = sshListen
	}
	cfg.Runtime.FPS, cfg.Runtime.Seed = a.settings.FPS, a.settings.Seed

	store := a.openStore()
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(cfg, a.registry, store, a.logger.WithPrefix("ssh"))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "arcade listening on %s (ctrl+c to stop)\n", cfg.Address)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.ListenAndServe(ctx)
}
