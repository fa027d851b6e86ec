package config

import (
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shini4i/netspeed/internal/netspeed"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, uint64(1000), cfg.IntervalMs)
	assert.Equal(t, "auto", cfg.Source)
	assert.Equal(t, uint64(1024), cfg.UnitBase)
	assert.Equal(t, "n/a", cfg.Placeholder)
	assert.Equal(t, []string{"wlan0", "eth0"}, cfg.AggregateInterfaces)
	require.Len(t, cfg.Components, 2)
	assert.Equal(t, FuncRxAll, cfg.Components[0].Function)
	assert.Equal(t, FuncTxAll, cfg.Components[1].Function)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultConfig_DoesNotAliasPackageDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AggregateInterfaces[0] = "ppp0"

	assert.Equal(t, "wlan0", netspeed.DefaultAggregateInterfaces[0])
}

func TestGetPaths(t *testing.T) {
	t.Run("with XDG_CONFIG_HOME set", func(t *testing.T) {
		tmpDir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", tmpDir)

		paths, err := GetPaths()
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(tmpDir, AppName), paths.ConfigDir)
		assert.Equal(t, filepath.Join(tmpDir, AppName, ConfigFileName), paths.ConfigFile)
	})

	t.Run("without XDG_CONFIG_HOME (uses HOME/.config)", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")

		paths, err := GetPaths()
		require.NoError(t, err)

		homeDir, err := os.UserHomeDir()
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(homeDir, ".config", AppName), paths.ConfigDir)
	})
}

func TestPaths_EnsurePaths(t *testing.T) {
	tmpDir := t.TempDir()
	paths := &Paths{
		ConfigDir:  filepath.Join(tmpDir, AppName),
		ConfigFile: filepath.Join(tmpDir, AppName, ConfigFileName),
	}

	require.NoError(t, paths.EnsurePaths())
	assert.DirExists(t, paths.ConfigDir)
}

func TestPathsFor(t *testing.T) {
	paths := PathsFor("/etc/netspeed/config.yaml")

	assert.Equal(t, "/etc/netspeed", paths.ConfigDir)
	assert.Equal(t, "/etc/netspeed/config.yaml", paths.ConfigFile)
}

func TestLoad(t *testing.T) {
	t.Run("loads existing config", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), ConfigFileName)
		configContent := `
interval_ms: 2000
source: procfs
procfs_root: /host/proc
unit_base: 1000
placeholder: "-"
separator: " "
aggregate_interfaces: [enp3s0, wlp2s0]
components:
  - function: netspeed_rx
    argument: enp3s0
    format: "rx %s"
`
		require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0600))

		cfg, err := Load(configPath)
		require.NoError(t, err)

		assert.Equal(t, uint64(2000), cfg.IntervalMs)
		assert.Equal(t, "procfs", cfg.Source)
		assert.Equal(t, "/host/proc", cfg.ProcfsRoot)
		assert.Equal(t, uint64(1000), cfg.UnitBase)
		assert.Equal(t, "-", cfg.Placeholder)
		assert.Equal(t, " ", cfg.Separator)
		assert.Equal(t, []string{"enp3s0", "wlp2s0"}, cfg.AggregateInterfaces)
		assert.Equal(t, []Component{{Function: FuncRx, Argument: "enp3s0", Format: "rx %s"}}, cfg.Components)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("keeps defaults for omitted keys", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), ConfigFileName)
		require.NoError(t, os.WriteFile(configPath, []byte("interval_ms: 500\n"), 0600))

		cfg, err := Load(configPath)
		require.NoError(t, err)

		assert.Equal(t, uint64(500), cfg.IntervalMs)
		assert.Equal(t, DefaultConfig().Components, cfg.Components)
	})

	t.Run("returns default config when file does not exist", func(t *testing.T) {
		cfg, err := Load("/nonexistent/path/config.yaml")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("returns default config for empty file", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), ConfigFileName)
		require.NoError(t, os.WriteFile(configPath, nil, 0600))

		cfg, err := Load(configPath)
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), ConfigFileName)
		require.NoError(t, os.WriteFile(configPath, []byte("interval_ms: [oops"), 0600))

		_, err := Load(configPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal config")
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), ConfigFileName)
		require.NoError(t, os.WriteFile(configPath, []byte("intervall: 1000\n"), 0600))

		_, err := Load(configPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal config")
	})
}

func TestSave(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ConfigFileName)
	cfg := DefaultConfig()
	cfg.IntervalMs = 3000
	cfg.Source = "sysfs"
	cfg.SysfsRoot = "/host/sys/class/net"

	require.NoError(t, Save(configPath, cfg))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestCreate(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ConfigFileName)

	require.NoError(t, Create(configPath, DefaultConfig()))
	loaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), loaded)

	err = Create(configPath, DefaultConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrExist)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:    "valid default config",
			mutate:  func(cfg *Config) {},
			wantErr: "",
		},
		{
			name:    "zero interval",
			mutate:  func(cfg *Config) { cfg.IntervalMs = 0 },
			wantErr: "interval_ms must be greater than zero",
		},
		{
			name:    "largest interval",
			mutate:  func(cfg *Config) { cfg.IntervalMs = MaxIntervalMs },
			wantErr: "",
		},
		{
			name:    "interval overflowing time.Duration",
			mutate:  func(cfg *Config) { cfg.IntervalMs = 10_000_000_000_000 },
			wantErr: "interval_ms must not exceed",
		},
		{
			name:    "interval at max uint64",
			mutate:  func(cfg *Config) { cfg.IntervalMs = math.MaxUint64 },
			wantErr: "interval_ms must not exceed",
		},
		{
			name:    "unknown source",
			mutate:  func(cfg *Config) { cfg.Source = "snmp" },
			wantErr: `unknown source "snmp"`,
		},
		{
			name:    "bad unit base",
			mutate:  func(cfg *Config) { cfg.UnitBase = 512 },
			wantErr: "unit_base must be 1000 or 1024",
		},
		{
			name:    "empty aggregate list with aggregate component",
			mutate:  func(cfg *Config) { cfg.AggregateInterfaces = nil },
			wantErr: "aggregate_interfaces must not be empty",
		},
		{
			name: "empty aggregate list without aggregate component",
			mutate: func(cfg *Config) {
				cfg.AggregateInterfaces = nil
				cfg.Components = []Component{{Function: FuncTx, Argument: "eth0", Format: "%s"}}
			},
			wantErr: "",
		},
		{
			name:    "invalid aggregate interface",
			mutate:  func(cfg *Config) { cfg.AggregateInterfaces = []string{"eth0", "../x"} },
			wantErr: "aggregate_interfaces: invalid interface name",
		},
		{
			name:    "duplicate aggregate interface",
			mutate:  func(cfg *Config) { cfg.AggregateInterfaces = []string{"eth0", "eth0"} },
			wantErr: `aggregate_interfaces: "eth0" listed twice`,
		},
		{
			name:    "unknown function",
			mutate:  func(cfg *Config) { cfg.Components[0].Function = "cpu_perc" },
			wantErr: `component 0: unknown function "cpu_perc"`,
		},
		{
			name:    "per-interface function without argument",
			mutate:  func(cfg *Config) { cfg.Components[1] = Component{Function: FuncRx, Format: "%s"} },
			wantErr: "component 1: netspeed_rx: invalid interface name",
		},
		{
			name:    "aggregate function with argument",
			mutate:  func(cfg *Config) { cfg.Components[0].Argument = "eth0" },
			wantErr: "component 0: netspeed_rx_all takes no argument",
		},
		{
			name:    "format without verb",
			mutate:  func(cfg *Config) { cfg.Components[0].Format = "down" },
			wantErr: "must contain exactly one %s",
		},
		{
			name:    "format with wrong verb",
			mutate:  func(cfg *Config) { cfg.Components[0].Format = "%d" },
			wantErr: "must contain exactly one %s",
		},
		{
			name:    "format with two verbs",
			mutate:  func(cfg *Config) { cfg.Components[0].Format = "%s %s" },
			wantErr: "must contain exactly one %s",
		},
		{
			name:    "format with width",
			mutate:  func(cfg *Config) { cfg.Components[0].Format = "down %8s" },
			wantErr: "",
		},
		{
			name:    "format left-aligned with width",
			mutate:  func(cfg *Config) { cfg.Components[0].Format = "down %-10s|" },
			wantErr: "",
		},
		{
			name:    "format with precision",
			mutate:  func(cfg *Config) { cfg.Components[0].Format = "%.6s" },
			wantErr: "",
		},
		{
			name:    "format with width on wrong verb",
			mutate:  func(cfg *Config) { cfg.Components[0].Format = "%8d" },
			wantErr: "must contain exactly one %s",
		},
		{
			name:    "format with escaped percent",
			mutate:  func(cfg *Config) { cfg.Components[0].Format = "%s 100%%" },
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfig_Settings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IntervalMs = 250
	cfg.UnitBase = 1000

	assert.Equal(t, netspeed.Settings{IntervalMs: 250, Base: netspeed.Decimal}, cfg.Settings())
}

func TestConfig_Interval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IntervalMs = 1500
	assert.Equal(t, 1500*time.Millisecond, cfg.Interval())

	cfg.IntervalMs = MaxIntervalMs
	require.NoError(t, cfg.Validate())
	assert.Positive(t, cfg.Interval())
}

func TestConfig_SourceOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SysfsRoot = "/a"
	cfg.ProcfsRoot = "/b"

	assert.Equal(t, netspeed.SourceOptions{SysfsRoot: "/a", ProcfsRoot: "/b"}, cfg.SourceOptions())
}
