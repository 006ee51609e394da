package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-ini/ini"
	"github.com/pkg/errors"

	"github.com/CristiGvl/picoMemStat/internal/widget"
)

// Section is the INI section holding widget settings
const Section = "memory"

// MinInterval bounds how often the counters file may be polled
const MinInterval = 100 * time.Millisecond

// Config represents the widget and bar settings
type Config struct {
	Format        string        `ini:"format"`
	Execute       string        `ini:"execute"`
	Interval      time.Duration `ini:"interval"`
	Source        string        `ini:"source"`
	Foreground    string        `ini:"foreground"`
	Background    string        `ini:"background"`
	UrgentColor   string        `ini:"urgent_color"`
	UrgentPercent int           `ini:"urgent_percent"`
}

// Default returns the built-in settings. Colours follow the bar theme.
func Default() Config {
	return Config{
		Format:      widget.DefaultFormat,
		Interval:    time.Second,
		Foreground:  "#f3f4f5",
		Background:  "#2F343F",
		UrgentColor: "#cd1f3f",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/picomemstat/config.ini or its platform equivalent
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.ini"
	}
	return filepath.Join(dir, "picomemstat", "config.ini")
}

// Read loads filename over the defaults. A missing file is not an error.
func Read(filename string) (Config, error) {
	return load(filename, false)
}

// errNotReady marks a config file that is missing or empty, which is what a
// watcher sees while an editor truncates or replaces it
var errNotReady = errors.New("config file missing or empty")

// load reads filename over the defaults. With required set, a missing or
// empty file yields errNotReady instead of the defaults.
func load(filename string, required bool) (Config, error) {
	conf := Default()

	fi, err := os.Stat(filename)
	switch {
	case os.IsNotExist(err):
		if required {
			return conf, errNotReady
		}
		return conf, conf.Validate()
	case err != nil:
		return conf, errors.Wrapf(err, "stat %s", filename)
	case required && fi.Size() == 0:
		return conf, errNotReady
	}

	// colours start with '#', so only whole-line comments are allowed
	file, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, filename)
	if err != nil {
		return conf, errors.Wrapf(err, "load %s", filename)
	}

	if err := file.Section(Section).StrictMapTo(&conf); err != nil {
		return conf, errors.Wrapf(err, "map [%s] section", Section)
	}

	return conf, conf.Validate()
}

// Validate checks value ranges
func (c Config) Validate() error {
	if c.Format == "" {
		return errors.New("format must not be empty")
	}
	if c.Interval < MinInterval {
		return errors.Errorf("interval %s is below the %s minimum", c.Interval, MinInterval)
	}
	if c.UrgentPercent < 0 || c.UrgentPercent > 100 {
		return errors.Errorf("urgent_percent %d is outside 0..100", c.UrgentPercent)
	}
	return nil
}

// Widget returns the subset of settings the widget itself reads
func (c Config) Widget() widget.Config {
	return widget.Config{Format: c.Format, Execute: c.Execute}
}

// Urgent reports whether a usage percentage crosses the urgency threshold
func (c Config) Urgent(percent int64) bool {
	return c.UrgentPercent > 0 && percent >= int64(c.UrgentPercent)
}
