package netspeed

import "fmt"

// Base is the scaling factor between successive units.
type Base uint64

const (
	// Binary scales by 1024 (KiB, MiB, ...).
	Binary Base = 1024
	// Decimal scales by 1000 (kB, MB, ...).
	Decimal Base = 1000
)

var (
	binaryUnits  = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	decimalUnits = []string{"B", "kB", "MB", "GB", "TB", "PB", "EB"}
)

// Valid reports whether b is Binary or Decimal.
func (b Base) Valid() bool {
	return b == Binary || b == Decimal
}

// FormatHuman formats n with one decimal place in the smallest unit that
// keeps the magnitude below base. Values beyond the largest unit stay in it.
// Any base other than Decimal is treated as Binary.
func FormatHuman(n uint64, base Base) string {
	units := binaryUnits
	if base == Decimal {
		units = decimalUnits
	} else {
		base = Binary
	}

	scaled := float64(n)
	i := 0
	for ; i < len(units)-1 && scaled >= float64(base); i++ {
		scaled /= float64(base)
	}
	return fmt.Sprintf("%.1f %s", scaled, units[i])
}

// Rate converts a counter delta observed over intervalMs into bytes per second,
// using integer arithmetic with floor division.
func Rate(delta, intervalMs uint64) uint64 {
	return delta * 1000 / intervalMs
}
