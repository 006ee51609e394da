// Package widget implements the memory usage bar segment: a poll that turns
// kernel counters into display text and a click handler that launches an
// optional command.
package widget

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/CristiGvl/picoMemStat/internal/memory"
	"github.com/CristiGvl/picoMemStat/internal/platform"
)

// ButtonPrimary is the pointer button that triggers Execute
const ButtonPrimary = 1

// DefaultFormat shows used and total memory in mebibytes
const DefaultFormat = "{MemUsed}M/{MemTotal}M"

// Config holds the two options the widget reads
type Config struct {
	Format  string
	Execute string
}

// Launcher starts a command without waiting for it
type Launcher func(command string) error

// Stat is a memory usage widget
type Stat struct {
	reader memory.Reader
	config atomic.Pointer[Config]
	launch Launcher
	logger *slog.Logger
}

// Option configures a Stat
type Option func(*Stat)

// WithLauncher replaces the process launcher used by OnClick
func WithLauncher(l Launcher) Option {
	return func(s *Stat) { s.launch = l }
}

// WithLogger sets the logger used for click failures
func WithLogger(l *slog.Logger) Option {
	return func(s *Stat) { s.logger = l }
}

// New creates a widget reading counters from reader
func New(reader memory.Reader, cfg Config, opts ...Option) *Stat {
	s := &Stat{
		reader: reader,
		launch: ShellLauncher,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.SetConfig(cfg)
	return s
}

// SetConfig swaps the widget configuration. Safe to call while polling.
func (s *Stat) SetConfig(cfg Config) {
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	s.config.Store(&cfg)
}

// Config returns the current configuration
func (s *Stat) Config() Config {
	return *s.config.Load()
}

// Counters reads, parses and derives one set of counters
func (s *Stat) Counters(ctx context.Context) (memory.Info, error) {
	raw, err := s.reader.ReadCounters(ctx)
	if err != nil {
		return nil, err
	}

	info, err := memory.ParseCounters(raw)
	if err != nil {
		return nil, err
	}

	if err := info.ComputeDerived(); err != nil {
		return nil, err
	}
	return info, nil
}

// PollInfo is Poll that also returns the counters behind the text
func (s *Stat) PollInfo(ctx context.Context) (string, memory.Info, error) {
	info, err := s.Counters(ctx)
	if err != nil {
		return "", nil, err
	}

	text, err := memory.Render(info, s.Config().Format)
	if err != nil {
		return "", nil, err
	}
	return text, info, nil
}

// Poll returns the rendered display text
func (s *Stat) Poll(ctx context.Context) (string, error) {
	text, _, err := s.PollInfo(ctx)
	return text, err
}

// OnClick launches the configured command for a primary button press.
// The command runs detached; launch errors are only logged.
func (s *Stat) OnClick(button int) {
	cfg := s.Config()
	if button != ButtonPrimary || cfg.Execute == "" {
		return
	}

	if err := s.launch(cfg.Execute); err != nil {
		s.logger.Warn("click command failed to start",
			slog.String("command", cfg.Execute),
			slog.String("error", err.Error()))
	}
}

// ShellLauncher runs command through the platform shell and reaps it in the
// background
func ShellLauncher(command string) error {
	cmd := platform.ShellCommand(command)
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "start %q", command)
	}

	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
