//go:build linux

package netspeed

import (
	"fmt"

	"github.com/prometheus/procfs"
)

// ProcfsSource reads byte counters from the net/dev table of a proc filesystem.
type ProcfsSource struct {
	fs procfs.FS
}

// NewProcfsSource opens the proc filesystem mounted at root.
// If root is empty, procfs.DefaultMountPoint is used.
func NewProcfsSource(root string) (*ProcfsSource, error) {
	if root == "" {
		root = procfs.DefaultMountPoint
	}
	fs, err := procfs.NewFS(root)
	if err != nil {
		return nil, fmt.Errorf("%w: open procfs at %s: %w", ErrStatsUnavailable, root, err)
	}
	return &ProcfsSource{fs: fs}, nil
}

// ReadCounter looks iface up in net/dev.
func (s *ProcfsSource) ReadCounter(iface string, dir Direction) (uint64, error) {
	if err := ValidateInterfaceName(iface); err != nil {
		return 0, err
	}
	if err := validateDirection(dir); err != nil {
		return 0, err
	}

	dev, err := s.fs.NetDev()
	if err != nil {
		return 0, fmt.Errorf("%w: read net/dev: %w", ErrStatsUnavailable, err)
	}
	line, ok := dev[iface]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrInterfaceNotFound, iface)
	}
	if dir == Transmit {
		return line.TxBytes, nil
	}
	return line.RxBytes, nil
}
