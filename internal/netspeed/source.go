// Package netspeed computes network throughput from cumulative interface byte counters.
package netspeed

import (
	"errors"
	"fmt"
	"strings"
)

// Direction selects which counter of an interface is read.
type Direction int

const (
	// Receive selects the received-bytes counter.
	Receive Direction = iota
	// Transmit selects the transmitted-bytes counter.
	Transmit
)

// String returns the short name used in logs and sysfs file names.
func (d Direction) String() string {
	switch d {
	case Receive:
		return "rx"
	case Transmit:
		return "tx"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// maxInterfaceNameLen is IFNAMSIZ minus the terminating NUL.
const maxInterfaceNameLen = 15

var (
	// ErrInterfaceNotFound is returned when the OS has no statistics for the interface.
	ErrInterfaceNotFound = errors.New("interface not found")
	// ErrStatsUnavailable is returned when interface statistics cannot be obtained or parsed.
	ErrStatsUnavailable = errors.New("interface statistics unavailable")
	// ErrInvalidInterfaceName is returned for names that cannot address an interface.
	ErrInvalidInterfaceName = errors.New("invalid interface name")
	// ErrInvalidDirection is returned for a Direction other than Receive or Transmit.
	ErrInvalidDirection = errors.New("invalid direction")
	// ErrInvalidInterval is returned when the polling interval is zero.
	ErrInvalidInterval = errors.New("interval must be greater than zero")
	// ErrUnknownSource is returned by NewSource for an unrecognized source kind.
	ErrUnknownSource = errors.New("unknown counter source")
)

// ByteCounterSource reads the cumulative byte counter of a network interface.
type ByteCounterSource interface {
	// ReadCounter returns the current counter for iface in the given direction.
	ReadCounter(iface string, dir Direction) (uint64, error)
}

// SourceKind names a ByteCounterSource implementation.
type SourceKind string

const (
	// SourceAuto picks the platform default (see DefaultSource).
	SourceAuto SourceKind = "auto"
	// SourceSysfs reads /sys/class/net/<iface>/statistics.
	SourceSysfs SourceKind = "sysfs"
	// SourceProcfs parses /proc/net/dev.
	SourceProcfs SourceKind = "procfs"
	// SourceIfaddrs enumerates interfaces through the OS interface list.
	SourceIfaddrs SourceKind = "ifaddrs"
)

// SourceOptions carries the filesystem roots used by file-backed sources.
// Empty values fall back to the standard locations.
type SourceOptions struct {
	SysfsRoot  string
	ProcfsRoot string
}

// NewSource builds the ByteCounterSource named by kind.
func NewSource(kind SourceKind, opts SourceOptions) (ByteCounterSource, error) {
	switch kind {
	case SourceAuto, "":
		return DefaultSource(), nil
	case SourceSysfs:
		return NewSysfsSource(opts.SysfsRoot), nil
	case SourceProcfs:
		src, err := NewProcfsSource(opts.ProcfsRoot)
		if err != nil {
			return nil, err
		}
		return src, nil
	case SourceIfaddrs:
		return NewIfaddrsSource(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, kind)
	}
}

// ValidateInterfaceName reports whether name can address a network interface.
func ValidateInterfaceName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidInterfaceName, name)
	case len(name) > maxInterfaceNameLen:
		return fmt.Errorf("%w: %q exceeds %d bytes", ErrInvalidInterfaceName, name, maxInterfaceNameLen)
	case strings.ContainsAny(name, "/\x00") || strings.ContainsFunc(name, isSpace):
		return fmt.Errorf("%w: %q", ErrInvalidInterfaceName, name)
	}
	return nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func validateDirection(dir Direction) error {
	if dir != Receive && dir != Transmit {
		return fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}
	return nil
}
