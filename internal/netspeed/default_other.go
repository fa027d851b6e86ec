//go:build !linux

package netspeed

// DefaultSource returns the interface enumeration reader.
func DefaultSource() ByteCounterSource {
	return NewIfaddrsSource()
}
