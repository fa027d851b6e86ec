package netspeed

import (
	"fmt"

	psnet "github.com/shirou/gopsutil/v3/net"
)

// IfaddrsSource reads byte counters from the OS interface enumeration.
// On BSD systems this is getifaddrs, which lists an interface once per
// address family; all entries sharing the name are summed.
type IfaddrsSource struct {
	ioCounters func(pernic bool) ([]psnet.IOCountersStat, error)
}

// NewIfaddrsSource creates a source backed by gopsutil's per-NIC counters.
func NewIfaddrsSource() *IfaddrsSource {
	return &IfaddrsSource{ioCounters: psnet.IOCounters}
}

// ReadCounter enumerates interfaces and returns the counter for iface.
func (s *IfaddrsSource) ReadCounter(iface string, dir Direction) (uint64, error) {
	if err := ValidateInterfaceName(iface); err != nil {
		return 0, err
	}
	if err := validateDirection(dir); err != nil {
		return 0, err
	}

	counters, err := s.ioCounters(true)
	if err != nil {
		return 0, fmt.Errorf("%w: enumerate interfaces: %w", ErrStatsUnavailable, err)
	}

	var total uint64
	found := false
	for _, c := range counters {
		if c.Name != iface {
			continue
		}
		found = true
		if dir == Transmit {
			total += c.BytesSent
		} else {
			total += c.BytesRecv
		}
	}
	if !found {
		return 0, fmt.Errorf("%w: %s", ErrInterfaceNotFound, iface)
	}
	return total, nil
}
