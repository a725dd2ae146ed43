// Package profile defines the car setup data model: an ordered list of
// tunable menu settings and the tick math that converts target values into
// directional keypress counts.
package profile

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// MenuOrder is the fixed order in which the in-game pro-settings menu lists
// its entries. Profiles always visit settings in this order; moving from one
// setting to the next is a single Down press.
var MenuOrder = []string{
	"final_drive",
	"front_power_distrib",
	"grip_front",
	"grip_rear",
	"front_brake_balance",
	"brake_power",
	"load_front",
	"load_rear",
	"spring_front",
	"spring_rear",
	"compression_front",
	"compression_rear",
	"rebound_front",
	"rebound_rear",
	"arb_front",
	"arb_rear",
	"camber_front",
	"camber_rear",
}

// Increments holds the value change per tick for each setting. Camber moves
// in hundredths; everything else moves by one unit (or one percent).
var Increments = map[string]float64{
	"final_drive":         1,
	"front_power_distrib": 1,
	"grip_front":          1,
	"grip_rear":           1,
	"front_brake_balance": 1,
	"brake_power":         1,
	"load_front":          1,
	"load_rear":           1,
	"spring_front":        1,
	"spring_rear":         1,
	"compression_front":   1,
	"compression_rear":    1,
	"rebound_front":       1,
	"rebound_rear":        1,
	"arb_front":           1,
	"arb_rear":            1,
	"camber_front":        0.01,
	"camber_rear":         0.01,
}

// StartValues holds the non-zero menu defaults. These two settings use
// absolute target values, and pressing Right moves them toward zero.
var StartValues = map[string]float64{
	"front_power_distrib": 60,
	"front_brake_balance": 80,
}

// Range describes the value bounds for a setting, used by the simulator to
// clamp adjustments the way the in-game menu does.
type Range struct {
	Min float64
	Max float64
}

// Ranges holds authoring-time bounds per setting. Delta settings swing both
// ways around zero; the absolute settings are percentages.
var Ranges = map[string]Range{
	"front_power_distrib": {Min: 0, Max: 100},
	"front_brake_balance": {Min: 0, Max: 100},
	"camber_front":        {Min: -5, Max: 5},
	"camber_rear":         {Min: -5, Max: 5},
}

// defaultRange covers the delta settings without an explicit entry.
var defaultRange = Range{Min: -20, Max: 20}

// RangeFor returns the value bounds for a setting.
func RangeFor(name string) Range {
	if r, ok := Ranges[name]; ok {
		return r
	}
	return defaultRange
}

// Setting is one tunable menu entry with its target value.
type Setting struct {
	Name      string  `toml:"name"`
	Value     float64 `toml:"value"`
	Increment float64 `toml:"increment"`
	Absolute  bool    `toml:"absolute,omitempty"`
}

// NewSetting builds a Setting for a known menu entry, filling in its
// increment and absolute/delta semantics from the authoring tables.
func NewSetting(name string, value float64) (Setting, error) {
	inc, ok := Increments[name]
	if !ok {
		return Setting{}, fmt.Errorf("unknown setting: %s", name)
	}
	_, absolute := StartValues[name]
	return Setting{Name: name, Value: value, Increment: inc, Absolute: absolute}, nil
}

// Ticks returns the signed number of adjustment presses needed to reach the
// setting's target value. Positive means Right, negative means Left.
//
// Absolute settings count from their menu start value, and Right decreases
// them. Delta settings count from zero, and Right increases them.
func (s Setting) Ticks() int {
	if s.Increment == 0 {
		return 0
	}
	if s.Absolute {
		start := StartValues[s.Name]
		return int(math.Round((start - s.Value) / s.Increment))
	}
	return int(math.Round(s.Value / s.Increment))
}

// StartValue returns the value the menu shows before any adjustment.
func (s Setting) StartValue() float64 {
	if s.Absolute {
		return StartValues[s.Name]
	}
	return 0
}

// Profile is the ordered, car-specific list of menu settings. It is fully
// static: authored once, read-only at run time.
type Profile struct {
	Category     string    `toml:"category,omitempty"`
	Manufacturer string    `toml:"manufacturer,omitempty"`
	Model        string    `toml:"model,omitempty"`
	Settings     []Setting `toml:"settings"`
	Skipped      []string  `toml:"skipped,omitempty"`
}

// Car returns a display identifier for the profile's car.
func (p *Profile) Car() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.Category, p.Manufacturer, p.Model} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return "(unnamed)"
	}
	return strings.Join(parts, " / ")
}

// New builds a Profile from target values keyed by setting name. Settings
// are emitted in menu order; menu entries absent from values are recorded as
// skipped (not available for this car).
func New(values map[string]float64) *Profile {
	p := &Profile{}
	for _, name := range MenuOrder {
		v, ok := values[name]
		if !ok {
			p.Skipped = append(p.Skipped, name)
			continue
		}
		s, err := NewSetting(name, v)
		if err != nil {
			// MenuOrder and Increments share keys; unreachable.
			continue
		}
		p.Settings = append(p.Settings, s)
	}
	return p
}

// Drop removes the named settings from the profile, adding them to the
// skipped list. Unknown names are ignored.
func (p *Profile) Drop(names ...string) {
	for _, name := range names {
		i := slices.IndexFunc(p.Settings, func(s Setting) bool { return s.Name == name })
		if i < 0 {
			continue
		}
		p.Settings = slices.Delete(p.Settings, i, i+1)
		if !slices.Contains(p.Skipped, name) {
			p.Skipped = append(p.Skipped, name)
		}
	}
}

// Validate checks that the profile references known settings, in menu order,
// with sane increments. It returns the first problem found.
func (p *Profile) Validate() error {
	if len(p.Settings) == 0 {
		return fmt.Errorf("profile has no settings")
	}
	prev := -1
	for _, s := range p.Settings {
		pos := slices.Index(MenuOrder, s.Name)
		if pos < 0 {
			return fmt.Errorf("unknown setting: %s", s.Name)
		}
		if pos <= prev {
			return fmt.Errorf("setting %s out of menu order", s.Name)
		}
		prev = pos
		if s.Increment <= 0 {
			return fmt.Errorf("setting %s has non-positive increment %v", s.Name, s.Increment)
		}
		if _, abs := StartValues[s.Name]; abs != s.Absolute {
			return fmt.Errorf("setting %s has wrong absolute flag", s.Name)
		}
	}
	return nil
}
