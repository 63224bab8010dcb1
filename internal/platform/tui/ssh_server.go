package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/keinplan-arcade/internal/core"
	"github.com/vovakirdan/keinplan-arcade/internal/registry"
	"github.com/vovakirdan/keinplan-arcade/internal/storage"
)

const shutdownGrace = 10 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Address string
	// HostKeyPath defaults to ~/.arcade/host_key; wish generates the key
	// when the file is missing.
	HostKeyPath string
	IdleTimeout time.Duration
	// Runtime supplies FPS, seed and frame clamping. The screen size comes
	// from each PTY.
	Runtime core.RuntimeConfig
}

// DefaultSSHServerConfig listens on :23234 and drops clients after 30 idle
// minutes.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Runtime:     core.DefaultConfig(),
	}
}

// SSHServer runs one Model, with its own bus and session, per SSH
// connection. The registry and the store are shared.
type SSHServer struct {
	cfg      SSHServerConfig
	server   *ssh.Server
	registry *registry.Registry
	store    *storage.Store
	logger   *log.Logger
	models   sync.Map // ssh.Session -> Model, until its program exits
}

// NewSSHServer creates a new SSH server. store may be nil to run without
// persistence.
func NewSSHServer(cfg SSHServerConfig, reg *registry.Registry, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "ssh"})
	}
	s := &SSHServer{cfg: cfg, registry: reg, store: store, logger: logger}

	keyPath, err := hostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	s.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			s.releaseModel,
			bubbletea.MiddlewareWithProgramHandler(s.newProgram, termenv.Ascii),
			s.logConnection,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	return s, nil
}

// hostKey resolves the key path and makes sure its directory exists.
func hostKey(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".arcade", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

func (s *SSHServer) sessionOptions(user string, width, height int) Options {
	rt := s.cfg.Runtime
	rt.ScreenW, rt.ScreenH = width, height
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	opts := Options{
		Config:   rt,
		Registry: s.registry,
		Logger:   s.logger.With("user", user, "conn", uuid.NewString()[:8]),
		User:     user,
	}
	if s.store != nil {
		opts.Store = s.store
	}
	return opts
}

// newProgram builds the program for one connection. The model is kept
// until releaseModel, which wish runs after the program has exited.
func (s *SSHServer) newProgram(sess ssh.Session) *tea.Program {
	pty, _, ok := sess.Pty()
	if !ok {
		wish.Fatalln(sess, "arcade needs a terminal, try: ssh -t")
		return nil
	}

	m := NewModel(s.sessionOptions(sess.User(), pty.Window.Width, pty.Window.Height))
	s.models.Store(sess, m)

	opts := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	}, bubbletea.MakeOptions(sess)...)
	return tea.NewProgram(m, opts...)
}

// releaseModel closes the connection's session. It sits inside the Bubble
// Tea middleware, so it runs on the connection goroutine once no frame can
// still be in flight.
func (s *SSHServer) releaseModel(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		if v, ok := s.models.LoadAndDelete(sess); ok {
			v.(Model).Close()
		}
		next(sess)
	}
}

func (s *SSHServer) logConnection(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		remote := sess.RemoteAddr().String()
		s.logger.Info("connected", "user", sess.User(), "remote", remote)
		next(sess)
		s.logger.Info("disconnected", "user", sess.User(), "remote", remote,
			"after", time.Since(start).Round(time.Second))
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("listening", "address", s.cfg.Address)

	errc := make(chan error, 1)
	go func() {
		err := s.server.ListenAndServe()
		if errors.Is(err, ssh.ErrServerClosed) {
			err = nil
		}
		errc <- err
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	s.logger.Info("shutting down")
	return s.Shutdown()
}

// Shutdown stops accepting connections and waits up to ten seconds for
// open sessions. The store stays open; its owner closes it.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return s.server.Shutdown(ctx)
}
