// Package vehicle describes the convoy geometry used by the corridor engine.
// Profiles correspond to the blade transports the tool is calibrated for;
// the engine itself only consumes the two derived scalars in Spec.
package vehicle

import (
	"fmt"
	"sort"
	"strings"
)

// ConvoyAllowance is the fixed tractor/trailer length allowance in metres
// added (halved) on top of the blade length when deriving the sweep length.
const ConvoyAllowance = 18.0

// Spec is the convoy geometry consumed by the corridor engine.
type Spec struct {
	// StaticWidth is the transport width on a straight, in metres.
	StaticWidth float64 `json:"static_width_m"`
	// SweepLength is the effective rigid length in metres used by the
	// curve-sweep model.
	SweepLength float64 `json:"sweep_length_m"`
}

// Validate reports the first invalid field, if any.
func (s Spec) Validate() error {
	if s.StaticWidth <= 0 {
		return fmt.Errorf("static width must be positive, got %g", s.StaticWidth)
	}
	if s.SweepLength <= 0 {
		return fmt.Errorf("sweep length must be positive, got %g", s.SweepLength)
	}
	return nil
}

// Profile is a named blade transport configuration.
type Profile struct {
	Name        string  `json:"name"`
	BladeLength float64 `json:"blade_length_m"`
	Width       float64 `json:"width_m"`
}

// Spec derives the engine spec from the profile: the sweep length is the
// blade length plus half the convoy allowance.
func (p Profile) Spec() Spec {
	return Spec{
		StaticWidth: p.Width,
		SweepLength: p.BladeLength + ConvoyAllowance/2,
	}
}

// Profiles lists the supported blade transports.
var Profiles = map[string]Profile{
	"N117": {Name: "N117", BladeLength: 60.0, Width: 5},
	"N131": {Name: "N131", BladeLength: 65.0, Width: 5},
	"N149": {Name: "N149", BladeLength: 75.0, Width: 5},
	"E82":  {Name: "E82", BladeLength: 45.0, Width: 5},
}

// Lookup resolves a profile by name, case-insensitively.
func Lookup(name string) (Profile, error) {
	p, ok := Profiles[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return Profile{}, fmt.Errorf("unknown blade profile %q (supported: %s)", name, Names())
	}
	return p, nil
}

// Names returns the supported profile names as a sorted, comma-separated list.
func Names() string {
	names := make([]string, 0, len(Profiles))
	for name := range Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
