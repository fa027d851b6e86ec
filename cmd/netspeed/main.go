// Package main provides the entry point for netspeed, a status line printer
// that reports per-interface network throughput.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shini4i/netspeed/internal/config"
	"github.com/shini4i/netspeed/internal/logging"
	"github.com/shini4i/netspeed/internal/netspeed"
	"github.com/shini4i/netspeed/internal/statusline"
)

var (
	version = "dev"
)

type options struct {
	configPath  string
	once        bool
	initConfig  bool
	writeConfig bool
	showVersion bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to the configuration file (default: $XDG_CONFIG_HOME/netspeed/config.yaml)")
	flag.BoolVar(&opts.once, "1", false, "Print one line with measured rates and exit")
	flag.BoolVar(&opts.initConfig, "init-config", false, "Write the default configuration and exit")
	flag.BoolVar(&opts.writeConfig, "write-config", false, "Rewrite the configuration with defaults filled in and exit")
	flag.BoolVar(&opts.showVersion, "version", false, "Show version and exit")
	flag.Parse()

	if opts.showVersion {
		fmt.Printf("netspeed %s\n", version)
		os.Exit(0)
	}

	logging.SetupFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		slog.Error("netspeed failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, stdout io.Writer) error {
	paths, err := resolvePaths(opts.configPath)
	if err != nil {
		return err
	}
	path := paths.ConfigFile

	if opts.initConfig {
		return writeDefaultConfig(paths)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}

	if opts.writeConfig {
		return rewriteConfig(paths, cfg)
	}

	src, err := netspeed.NewSource(netspeed.SourceKind(cfg.Source), cfg.SourceOptions())
	if err != nil {
		return err
	}
	registry, err := netspeed.NewRegistry(src, cfg.Settings(), cfg.AggregateInterfaces)
	if err != nil {
		return err
	}

	line := statusline.New(cfg, registry)
	interval := cfg.Interval()

	if opts.once {
		return printOnce(ctx, line, stdout, interval)
	}

	slog.Debug("Starting status line", "config", path, "source", cfg.Source, "interval", interval)
	return line.Run(ctx, stdout, interval)
}

// printOnce primes every slot, waits one interval and prints a single line.
func printOnce(ctx context.Context, line *statusline.Line, w io.Writer, interval time.Duration) error {
	line.Render()

	timer := time.NewTimer(interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	_, err := fmt.Fprintln(w, line.Render())
	return err
}

// resolvePaths uses the XDG location unless an explicit file is given.
func resolvePaths(path string) (*config.Paths, error) {
	if path != "" {
		return config.PathsFor(path), nil
	}
	paths, err := config.GetPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}
	return paths, nil
}

func writeDefaultConfig(paths *config.Paths) error {
	if err := paths.EnsurePaths(); err != nil {
		return err
	}
	if err := config.Create(paths.ConfigFile, config.DefaultConfig()); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("config %s already exists", paths.ConfigFile)
		}
		return err
	}
	slog.Info("Wrote default configuration", "path", paths.ConfigFile)
	return nil
}

// rewriteConfig saves a validated configuration back, so keys left out of
// the file show up with their defaults.
func rewriteConfig(paths *config.Paths, cfg *config.Config) error {
	if err := paths.EnsurePaths(); err != nil {
		return err
	}
	if err := config.Save(paths.ConfigFile, cfg); err != nil {
		return err
	}
	slog.Info("Rewrote configuration", "path", paths.ConfigFile)
	return nil
}
