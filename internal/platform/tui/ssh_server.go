package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/shapefall/internal/core"
	"github.com/vovakirdan/shapefall/internal/platform/web"
	"github.com/vovakirdan/shapefall/internal/storage"
)

const shutdownGrace = 10 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Address     string        // host:port for SSH
	HostKeyPath string        // empty means ~/.shapefall/host_key, generated on first start
	DBPath      string        // shared leaderboard for all sessions
	IdleTimeout time.Duration // idle connections are dropped after this
	TickRate    int

	// HTTPAddress, when set, also serves the leaderboard API.
	HTTPAddress string

	// Logger defaults to a timestamped stderr logger.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns the settings used by `shapefall serve`.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.shapefall/scores.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer hosts one puzzle session per SSH connection, plus the optional
// leaderboard API over the same store.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	web    *web.Server
	logger *log.Logger
}

// NewSSHServer builds the server. A scores database that cannot be opened
// is logged and the server runs without saving runs.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "shapefall-ssh"})
	}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("scores disabled", "db", cfg.DBPath, "error", err)
		store = nil
	}

	s := &SSHServer{config: cfg, store: store, logger: logger}
	s.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newSession),
			s.trackSession,
		),
	)
	if err != nil {
		s.closeStore()
		return nil, fmt.Errorf("ssh: new server: %w", err)
	}

	if cfg.HTTPAddress != "" {
		s.web = web.NewServer(cfg.HTTPAddress, store, logger.WithPrefix("shapefall-http"))
	}
	return s, nil
}

// hostKeyPath resolves the key location and makes sure its directory exists.
func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("ssh: home directory: %w", err)
		}
		path = filepath.Join(home, ".shapefall", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("ssh: host key directory: %w", err)
	}
	return path, nil
}

// newSession starts a menu for a connection sized to its terminal.
// Connections without a PTY are refused.
func (s *SSHServer) newSession(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("refusing session without pty", "user", sess.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	model := NewSessionModel(s.store, cfg, s.logger.With("user", sess.User()))
	return model, []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
}

// trackSession logs connect and disconnect with the session length.
func (s *SSHServer) trackSession(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		l := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		l.Info("connected")
		next(sess)
		l.Info("disconnected", "duration", time.Since(start).Round(time.Second))
	}
}

// ListenAndServe serves until ctx is done or a listener fails, then shuts
// everything down.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 2)

	s.logger.Info("listening", "ssh", s.config.Address, "http", s.config.HTTPAddress)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- fmt.Errorf("ssh: %w", err)
		}
	}()
	if s.web != nil {
		go func() {
			if err := s.web.ListenAndServe(); err != nil {
				errc <- fmt.Errorf("http: %w", err)
			}
		}()
	}

	var serveErr error
	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")
	case serveErr = <-errc:
		s.logger.Error("listener failed", "error", serveErr)
	}
	return errors.Join(serveErr, s.Shutdown())
}

// Shutdown stops both listeners, then closes the store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.web != nil {
		err = errors.Join(err, s.web.Shutdown(ctx))
	}
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("closing scores database", "error", err)
	}
}

// Addr returns the configured SSH address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
