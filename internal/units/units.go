// Package units provides shared constants and formatting for distances.
// The engine and database work in metres throughout; conversion happens only
// at the reporting and API edges.
package units

import "fmt"

// Unit constants
const (
	Metres     = "m"
	Kilometres = "km"
)

// ValidUnits contains all valid distance unit values.
var ValidUnits = []string{Metres, Kilometres}

// IsValid checks if the given unit is in the list of valid units.
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// ConvertDistance converts a distance from metres to the target units.
func ConvertDistance(metres float64, targetUnits string) float64 {
	switch targetUnits {
	case Kilometres:
		return metres / 1000
	case Metres:
		return metres
	default:
		return metres // default to metres if unknown unit
	}
}

// FormatDistance renders a distance in the target units with its unit
// suffix, e.g. 1500m -> "1500 m" or "1.500 km".
func FormatDistance(metres float64, targetUnits string) string {
	v := ConvertDistance(metres, targetUnits)
	switch targetUnits {
	case Kilometres:
		return fmt.Sprintf("%.3f %s", v, Kilometres)
	default:
		return fmt.Sprintf("%g %s", v, Metres)
	}
}

// FormatPK formats a distance along the route in the "point kilométrique"
// style used by route surveys, e.g. 12345.6m -> "PK 12.346".
func FormatPK(metres float64) string {
	return fmt.Sprintf("PK %.3f", metres/1000)
}
