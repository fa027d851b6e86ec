//go:build !linux

package netspeed

import "fmt"

// ProcfsSource is only available on Linux.
type ProcfsSource struct{}

// NewProcfsSource always fails outside Linux.
func NewProcfsSource(string) (*ProcfsSource, error) {
	return nil, fmt.Errorf("%w: procfs source requires linux", ErrUnknownSource)
}

// ReadCounter always fails outside Linux.
func (s *ProcfsSource) ReadCounter(string, Direction) (uint64, error) {
	return 0, ErrStatsUnavailable
}
