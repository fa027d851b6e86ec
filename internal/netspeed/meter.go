package netspeed

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Settings holds the values shared by every meter of a registry.
type Settings struct {
	// IntervalMs is the time between polls in milliseconds.
	IntervalMs uint64
	// Base selects binary or decimal units for formatting.
	Base Base
}

func (s Settings) validate() error {
	if s.IntervalMs == 0 {
		return ErrInvalidInterval
	}
	if !s.Base.Valid() {
		return fmt.Errorf("unsupported unit base %d", s.Base)
	}
	return nil
}

// Meter turns successive counter readings into a throughput string.
// A Meter is not safe for concurrent use.
type Meter struct {
	name     string
	dir      Direction
	settings Settings
	read     func() (value uint64, members string, err error)

	members string
	slot    Slot
}

// NewMeter creates a meter for a single interface.
func NewMeter(src ByteCounterSource, iface string, dir Direction, settings Settings) (*Meter, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}
	if err := ValidateInterfaceName(iface); err != nil {
		return nil, err
	}
	if err := validateDirection(dir); err != nil {
		return nil, err
	}

	return &Meter{
		name:     iface,
		dir:      dir,
		settings: settings,
		read: func() (uint64, string, error) {
			v, err := src.ReadCounter(iface, dir)
			return v, iface, err
		},
	}, nil
}

// NewAggregateMeter creates a meter reporting the summed traffic of ifaces.
//
// Interfaces that cannot be read on a tick are left out of that tick's sum.
// When the set of contributing interfaces changes, the baseline is dropped
// and the tick counts as a first sample.
func NewAggregateMeter(src ByteCounterSource, ifaces []string, dir Direction, settings Settings) (*Meter, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}
	if err := validateDirection(dir); err != nil {
		return nil, err
	}
	if len(ifaces) == 0 {
		return nil, fmt.Errorf("%w: empty aggregate interface list", ErrInvalidInterfaceName)
	}
	seen := make(map[string]struct{}, len(ifaces))
	for _, iface := range ifaces {
		if err := ValidateInterfaceName(iface); err != nil {
			return nil, err
		}
		if _, dup := seen[iface]; dup {
			return nil, fmt.Errorf("%w: %q listed twice", ErrInvalidInterfaceName, iface)
		}
		seen[iface] = struct{}{}
	}
	names := append([]string(nil), ifaces...)

	return &Meter{
		name:     strings.Join(names, "+"),
		dir:      dir,
		settings: settings,
		read: func() (uint64, string, error) {
			return sumCounters(src, names, dir)
		},
	}, nil
}

func sumCounters(src ByteCounterSource, ifaces []string, dir Direction) (uint64, string, error) {
	var (
		total   uint64
		members []string
		errs    []error
	)
	for _, iface := range ifaces {
		v, err := src.ReadCounter(iface, dir)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		total += v
		members = append(members, iface)
	}
	if len(members) == 0 {
		return 0, "", fmt.Errorf("no readable interface among %s: %w", strings.Join(ifaces, ","), errors.Join(errs...))
	}
	return total, strings.Join(members, ","), nil
}

// Name returns the interface, or the "+"-joined interface list for aggregates.
func (m *Meter) Name() string {
	return m.name
}

// Direction returns the counter direction the meter reads.
func (m *Meter) Direction() Direction {
	return m.dir
}

// Rate reads the counter and returns bytes per second since the previous
// successful read. ok is false on the first sample. On a read error the
// stored baseline is left unchanged.
func (m *Meter) Rate() (rate uint64, ok bool, err error) {
	value, members, err := m.read()
	if err != nil {
		return 0, false, err
	}

	if members != m.members {
		if m.slot.Warm() {
			slog.Debug("Interface set changed, resetting baseline",
				"meter", m.name, "direction", m.dir, "from", m.members, "to", members)
		}
		m.slot.Reset()
		m.members = members
	}

	delta, ok := m.slot.Observe(value)
	if !ok {
		return 0, false, nil
	}
	return Rate(delta, m.settings.IntervalMs), true, nil
}

// Poll returns the formatted rate, or false when there is nothing to show.
// Read failures are logged and never fatal.
func (m *Meter) Poll() (string, bool) {
	rate, ok, err := m.Rate()
	if err != nil {
		slog.Warn("Failed to read interface counter", "interface", m.name, "direction", m.dir, "error", err)
		return "", false
	}
	if !ok {
		return "", false
	}
	return FormatHuman(rate, m.settings.Base), true
}

// Reset drops the meter's baseline.
func (m *Meter) Reset() {
	m.slot.Reset()
	m.members = ""
}
