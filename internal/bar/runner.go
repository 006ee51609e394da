// Package bar drives the widget like a status bar host: it owns the poll
// timer, delivers clicks and applies config reloads from a single loop.
package bar

import (
	"context"
	"log/slog"
	"time"

	"github.com/CristiGvl/picoMemStat/internal/config"
	"github.com/CristiGvl/picoMemStat/internal/memory"
	"github.com/CristiGvl/picoMemStat/internal/widget"
)

// Runner serializes polls, clicks and reloads so none of them overlap
type Runner struct {
	Stat     *widget.Stat
	Output   Output
	Config   config.Config
	Clicks   <-chan int
	Reloads  <-chan config.Config
	// Override reapplies command-line settings to every reloaded config
	Override func(*config.Config)
	Logger   *slog.Logger
}

// Run polls immediately, then on every interval tick, until ctx is done
func (r *Runner) Run(ctx context.Context) error {
	if r.Logger == nil {
		r.Logger = slog.Default()
	}

	if err := r.Output.Begin(); err != nil {
		return err
	}
	if err := r.tick(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(r.Config.Interval)
	defer ticker.Stop()

	clicks, reloads := r.Clicks, r.Reloads
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := r.tick(ctx); err != nil {
				return err
			}
		case button, ok := <-clicks:
			if !ok {
				clicks = nil
				continue
			}
			r.Logger.Debug("click", slog.Int("button", button))
			r.Stat.OnClick(button)
		case conf, ok := <-reloads:
			if !ok {
				reloads = nil
				continue
			}
			if r.Override != nil {
				r.Override(&conf)
			}
			if err := conf.Validate(); err != nil {
				r.Logger.Warn("config reload rejected", slog.String("error", err.Error()))
				continue
			}
			if conf.Source != r.Config.Source {
				r.Logger.Warn("source changes take effect after restart", slog.String("source", conf.Source))
			}
			r.Config = conf
			r.Stat.SetConfig(conf.Widget())
			ticker.Reset(conf.Interval)
			if err := r.tick(ctx); err != nil {
				return err
			}
		}
	}
}

// tick polls once and writes the segment. Poll failures blank the segment;
// only output errors stop the loop.
func (r *Runner) tick(ctx context.Context) error {
	seg := Segment{
		Color:      r.Config.Foreground,
		Background: r.Config.Background,
	}

	text, info, err := r.Stat.PollInfo(ctx)
	if err != nil {
		r.Logger.Error("poll failed", slog.String("error", err.Error()))
	} else {
		seg.Text = text
		if r.Config.Urgent(info[memory.KeyMemsza]) {
			seg.Urgent = true
			seg.Color = r.Config.UrgentColor
		}
	}

	return r.Output.Write(seg)
}
