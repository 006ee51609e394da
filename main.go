package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CristiGvl/picoMemStat/api"
	"github.com/CristiGvl/picoMemStat/internal/bar"
	"github.com/CristiGvl/picoMemStat/internal/config"
	"github.com/CristiGvl/picoMemStat/internal/memory"
	"github.com/CristiGvl/picoMemStat/internal/platform"
	"github.com/CristiGvl/picoMemStat/internal/widget"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", config.DefaultPath(), "Path to the INI config file")
	mode := flag.String("mode", "bar", "Run mode: bar, serve or once")
	output := flag.String("output", bar.OutputPlain, "Bar output: plain, i3bar or term")
	port := flag.String("port", "8080", "Port to run the server on (serve mode)")
	bind := flag.String("bind", "127.0.0.1", "IP address to bind the server to (serve mode)")
	format := flag.String("format", "", "Display template, overrides the config file")
	execute := flag.String("execute", "", "Command run on primary click, overrides the config file")
	interval := flag.Duration("interval", 0, "Poll interval, overrides the config file")
	source := flag.String("source", "", "Counters file, overrides the config file")
	logJSON := flag.Bool("log-json", false, "Log as JSON")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	var logHandler slog.Handler
	opts := &slog.HandlerOptions{Level: level}
	// stdout carries the bar protocol, so logs always go to stderr
	if *logJSON {
		logHandler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		logHandler = slog.NewTextHandler(os.Stderr, opts)
	}
	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	// Validate platform support
	if err := platform.ValidateSupport(); err != nil {
		logger.Error("platform validation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	conf, err := config.Read(*configPath)
	if err != nil {
		logger.Error("failed to read config", slog.String("file", *configPath), slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Explicit flags win over the file, on startup and on every reload
	overrides := map[string]func(*config.Config){
		"format":   func(c *config.Config) { c.Format = *format },
		"execute":  func(c *config.Config) { c.Execute = *execute },
		"interval": func(c *config.Config) { c.Interval = *interval },
		"source":   func(c *config.Config) { c.Source = *source },
	}
	var set []func(*config.Config)
	flag.Visit(func(f *flag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			set = append(set, apply)
		}
	})
	override := func(c *config.Config) {
		for _, apply := range set {
			apply(c)
		}
	}
	override(&conf)
	if err := conf.Validate(); err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	stat := widget.New(memory.NewReader(conf.Source), conf.Widget(), widget.WithLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "once":
		err = runOnce(ctx, stat)
	case "serve":
		err = runServer(ctx, stat, *bind+":"+*port, logger)
	case "bar":
		err = runBar(ctx, stat, conf, override, *configPath, *output, logger)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		logger.Error("exiting", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func runOnce(ctx context.Context, stat *widget.Stat) error {
	text, err := stat.Poll(ctx)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

func runBar(ctx context.Context, stat *widget.Stat, conf config.Config, override func(*config.Config), configPath, kind string, logger *slog.Logger) error {
	out, err := bar.NewOutput(kind, os.Stdout)
	if err != nil {
		return err
	}

	runner := &bar.Runner{
		Stat:     stat,
		Output:   out,
		Config:   conf,
		Clicks:   bar.ReadClicks(ctx, os.Stdin, bar.DecoderFor(kind), logger),
		Override: override,
		Logger:   logger,
	}

	reloads, err := config.Watch(ctx, configPath, logger)
	if err != nil {
		logger.Warn("config hot reload disabled", slog.String("error", err.Error()))
	} else {
		runner.Reloads = reloads
	}

	return runner.Run(ctx)
}

func runServer(ctx context.Context, stat *widget.Stat, address string, logger *slog.Logger) error {
	server, err := api.NewServer(stat)
	if err != nil {
		return err
	}

	// Handle graceful shutdown
	go func() {
		<-ctx.Done()
		if err := server.Shutdown(); err != nil {
			logger.Error("error during shutdown", slog.String("error", err.Error()))
		}
	}()

	logger.Info("starting picoMemStat server", slog.String("address", address))
	started := time.Now()
	if err := server.Start(address); err != nil {
		return err
	}
	logger.Info("server stopped", slog.Duration("uptime", time.Since(started)))
	return nil
}
