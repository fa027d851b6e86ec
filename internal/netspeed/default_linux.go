//go:build linux

package netspeed

// DefaultSource returns the sysfs statistics reader.
func DefaultSource() ByteCounterSource {
	return NewSysfsSource(DefaultSysfsRoot)
}
