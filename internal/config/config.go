// Package config manages the status line configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"math"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/shini4i/netspeed/internal/fileutil"
	"github.com/shini4i/netspeed/internal/netspeed"
)

const (
	// AppName is the application identifier used for XDG paths.
	AppName = "netspeed"
	// ConfigFileName is the name of the main configuration file.
	ConfigFileName = "config.yaml"
)

// MaxIntervalMs is the largest interval_ms that still fits a time.Duration.
const MaxIntervalMs = uint64(math.MaxInt64 / int64(time.Millisecond))

// formatVerb matches a single %s verb with optional flags, width and precision.
var formatVerb = regexp.MustCompile(`%[-+# 0]*[0-9]*(\.[0-9]*)?s`)

// Status line functions a component can call.
const (
	FuncRx    = "netspeed_rx"
	FuncTx    = "netspeed_tx"
	FuncRxAll = "netspeed_rx_all"
	FuncTxAll = "netspeed_tx_all"
)

// Component is one segment of the status line.
type Component struct {
	// Function is one of the Func* constants.
	Function string `yaml:"function"`
	// Argument is the interface name for per-interface functions.
	Argument string `yaml:"argument,omitempty"`
	// Format is a printf pattern with a single %s verb for the rate,
	// optionally with flags and width such as %-10s.
	Format string `yaml:"format"`
}

// Config represents the application configuration.
type Config struct {
	IntervalMs          uint64      `yaml:"interval_ms"`
	Source              string      `yaml:"source"`
	SysfsRoot           string      `yaml:"sysfs_root,omitempty"`
	ProcfsRoot          string      `yaml:"procfs_root,omitempty"`
	UnitBase            uint64      `yaml:"unit_base"`
	Placeholder         string      `yaml:"placeholder"`
	Separator           string      `yaml:"separator"`
	AggregateInterfaces []string    `yaml:"aggregate_interfaces"`
	Components          []Component `yaml:"components"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		IntervalMs:          1000,
		Source:              string(netspeed.SourceAuto),
		UnitBase:            uint64(netspeed.Binary),
		Placeholder:         "n/a",
		Separator:           " | ",
		AggregateInterfaces: append([]string(nil), netspeed.DefaultAggregateInterfaces...),
		Components: []Component{
			{Function: FuncRxAll, Format: "down %s"},
			{Function: FuncTxAll, Format: "up %s"},
		},
	}
}

// Paths holds the resolved configuration locations.
type Paths struct {
	ConfigDir  string
	ConfigFile string
}

// GetPaths returns the configuration paths following XDG Base Directory spec.
func GetPaths() (*Paths, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(homeDir, ".config")
	}

	configDir := filepath.Join(configHome, AppName)
	return &Paths{
		ConfigDir:  configDir,
		ConfigFile: filepath.Join(configDir, ConfigFileName),
	}, nil
}

// PathsFor returns the paths for an explicitly chosen config file.
func PathsFor(configFile string) *Paths {
	return &Paths{
		ConfigDir:  filepath.Dir(configFile),
		ConfigFile: configFile,
	}
}

// EnsurePaths creates the configuration directory.
func (p *Paths) EnsurePaths() error {
	if err := os.MkdirAll(p.ConfigDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

// Load reads the configuration from disk.
// A missing or empty file yields DefaultConfig. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to disk atomically.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := fileutil.AtomicWrite(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Create writes cfg to path, refusing to replace an existing file.
func Create(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := fileutil.AtomicCreate(path, data, 0600); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	return nil
}

// Settings returns the meter settings derived from the configuration.
func (c *Config) Settings() netspeed.Settings {
	return netspeed.Settings{
		IntervalMs: c.IntervalMs,
		Base:       netspeed.Base(c.UnitBase),
	}
}

// Interval returns IntervalMs as a time.Duration. Call Validate first.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// SourceOptions returns the filesystem roots for file-backed counter sources.
func (c *Config) SourceOptions() netspeed.SourceOptions {
	return netspeed.SourceOptions{
		SysfsRoot:  c.SysfsRoot,
		ProcfsRoot: c.ProcfsRoot,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.IntervalMs == 0 {
		return fmt.Errorf("interval_ms must be greater than zero")
	}
	if c.IntervalMs > MaxIntervalMs {
		return fmt.Errorf("interval_ms must not exceed %d", MaxIntervalMs)
	}
	switch netspeed.SourceKind(c.Source) {
	case netspeed.SourceAuto, netspeed.SourceSysfs, netspeed.SourceProcfs, netspeed.SourceIfaddrs:
	default:
		return fmt.Errorf("unknown source %q", c.Source)
	}
	if !netspeed.Base(c.UnitBase).Valid() {
		return fmt.Errorf("unit_base must be 1000 or 1024, got %d", c.UnitBase)
	}

	usesAggregate := false
	for i, comp := range c.Components {
		if err := comp.validate(); err != nil {
			return fmt.Errorf("component %d: %w", i, err)
		}
		if comp.Function == FuncRxAll || comp.Function == FuncTxAll {
			usesAggregate = true
		}
	}

	if usesAggregate && len(c.AggregateInterfaces) == 0 {
		return fmt.Errorf("aggregate_interfaces must not be empty")
	}
	seen := make(map[string]bool, len(c.AggregateInterfaces))
	for _, iface := range c.AggregateInterfaces {
		if err := netspeed.ValidateInterfaceName(iface); err != nil {
			return fmt.Errorf("aggregate_interfaces: %w", err)
		}
		if seen[iface] {
			return fmt.Errorf("aggregate_interfaces: %q listed twice", iface)
		}
		seen[iface] = true
	}
	return nil
}

func (c Component) validate() error {
	switch c.Function {
	case FuncRx, FuncTx:
		if err := netspeed.ValidateInterfaceName(c.Argument); err != nil {
			return fmt.Errorf("%s: %w", c.Function, err)
		}
	case FuncRxAll, FuncTxAll:
		if c.Argument != "" {
			return fmt.Errorf("%s takes no argument", c.Function)
		}
	default:
		return fmt.Errorf("unknown function %q", c.Function)
	}

	verbs := strings.ReplaceAll(c.Format, "%%", "")
	if strings.Count(verbs, "%") != 1 || !formatVerb.MatchString(verbs) {
		return fmt.Errorf("format %q must contain exactly one %%s verb", c.Format)
	}
	return nil
}
