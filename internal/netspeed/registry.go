package netspeed

import (
	"log/slog"
	"sync"
)

// DefaultAggregateInterfaces is used when no aggregate list is configured.
var DefaultAggregateInterfaces = []string{"wlan0", "eth0"}

type meterKey struct {
	iface string
	dir   Direction
	all   bool
}

// Registry owns the meters queried by a status line, one per interface and
// direction plus one per aggregate direction. It is safe for concurrent use.
type Registry struct {
	src       ByteCounterSource
	settings  Settings
	aggregate []string

	mu     sync.Mutex
	meters map[meterKey]*Meter
}

// NewRegistry creates a registry reading from src.
// If aggregate is empty, DefaultAggregateInterfaces is used.
func NewRegistry(src ByteCounterSource, settings Settings, aggregate []string) (*Registry, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}
	if len(aggregate) == 0 {
		aggregate = DefaultAggregateInterfaces
	}
	// Validates the list up front so bad configuration fails at startup.
	if _, err := NewAggregateMeter(src, aggregate, Receive, settings); err != nil {
		return nil, err
	}

	return &Registry{
		src:       src,
		settings:  settings,
		aggregate: append([]string(nil), aggregate...),
		meters:    make(map[meterKey]*Meter),
	}, nil
}

// RxSpeed returns the receive rate of iface.
func (r *Registry) RxSpeed(iface string) (string, bool) {
	return r.poll(meterKey{iface: iface, dir: Receive})
}

// TxSpeed returns the transmit rate of iface.
func (r *Registry) TxSpeed(iface string) (string, bool) {
	return r.poll(meterKey{iface: iface, dir: Transmit})
}

// RxSpeedAll returns the receive rate summed over the aggregate interfaces.
func (r *Registry) RxSpeedAll() (string, bool) {
	return r.poll(meterKey{dir: Receive, all: true})
}

// TxSpeedAll returns the transmit rate summed over the aggregate interfaces.
func (r *Registry) TxSpeedAll() (string, bool) {
	return r.poll(meterKey{dir: Transmit, all: true})
}

// AggregateInterfaces returns a copy of the aggregate interface list.
func (r *Registry) AggregateInterfaces() []string {
	return append([]string(nil), r.aggregate...)
}

// Reset drops every meter and its baseline.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.meters)
}

func (r *Registry) poll(key meterKey) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.meters[key]
	if !ok {
		var err error
		if key.all {
			m, err = NewAggregateMeter(r.src, r.aggregate, key.dir, r.settings)
		} else {
			m, err = NewMeter(r.src, key.iface, key.dir, r.settings)
		}
		if err != nil {
			slog.Warn("Cannot create meter", "interface", key.iface, "direction", key.dir, "error", err)
			return "", false
		}
		r.meters[key] = m
	}
	return m.Poll()
}
