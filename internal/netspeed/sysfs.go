package netspeed

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultSysfsRoot is the base path for network interface statistics on Linux.
const DefaultSysfsRoot = "/sys/class/net"

// SysfsSource reads byte counters from per-interface sysfs statistics files.
type SysfsSource struct {
	root   string
	prefix string
}

// NewSysfsSource creates a source rooted at root.
// If root is empty, DefaultSysfsRoot is used.
func NewSysfsSource(root string) *SysfsSource {
	if root == "" {
		root = DefaultSysfsRoot
	}
	root = filepath.Clean(root)
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return &SysfsSource{root: root, prefix: prefix}
}

// ReadCounter reads <root>/<iface>/statistics/{rx,tx}_bytes.
func (s *SysfsSource) ReadCounter(iface string, dir Direction) (uint64, error) {
	if err := ValidateInterfaceName(iface); err != nil {
		return 0, err
	}
	if err := validateDirection(dir); err != nil {
		return 0, err
	}

	path := filepath.Join(s.root, iface, "statistics", dir.String()+"_bytes")
	value, err := s.readStatFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrInterfaceNotFound, iface)
		}
		return 0, err
	}
	return value, nil
}

// readStatFile reads a single stat file and parses it as uint64.
// The path must stay within the source root.
func (s *SysfsSource) readStatFile(path string) (uint64, error) {
	cleanPath := filepath.Clean(path)
	if !strings.HasPrefix(cleanPath, s.prefix) {
		return 0, fmt.Errorf("%w: stats path outside %s", ErrInvalidInterfaceName, s.root)
	}

	data, err := os.ReadFile(cleanPath) // #nosec G304 -- path validated above
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrStatsUnavailable, cleanPath, err)
	}
	return value, nil
}
