// Package trigger owns the process-wide global hotkey: parsing the combo
// from config, acquiring the hook on start, and releasing it on stop.
package trigger

import (
	"fmt"
	"strings"
)

// Modifier is a platform-neutral modifier name. Platform files map these to
// the hook library's native modifiers.
type Modifier string

const (
	ModCtrl  Modifier = "ctrl"
	ModShift Modifier = "shift"
	ModAlt   Modifier = "alt"
	ModSuper Modifier = "super"
)

// Binding is a parsed hotkey combination: one or more modifiers plus a key.
type Binding struct {
	Mods []Modifier
	Key  string
}

// Parse reads a combo like "ctrl+alt+s". At least one modifier is required;
// a bare key would swallow normal typing process-wide.
func Parse(s string) (Binding, error) {
	parts := strings.Split(s, "+")
	if len(parts) < 2 {
		return Binding{}, fmt.Errorf("invalid hotkey %q (need modifier+key)", s)
	}

	var b Binding
	for _, part := range parts[:len(parts)-1] {
		switch m := Modifier(strings.ToLower(strings.TrimSpace(part))); m {
		case ModCtrl, ModShift, ModAlt, ModSuper:
			b.Mods = append(b.Mods, m)
		case "opt", "option":
			b.Mods = append(b.Mods, ModAlt)
		case "win", "cmd", "meta":
			b.Mods = append(b.Mods, ModSuper)
		default:
			return Binding{}, fmt.Errorf("invalid hotkey %q: unknown modifier %q", s, part)
		}
	}

	b.Key = strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
	if b.Key == "" {
		return Binding{}, fmt.Errorf("invalid hotkey %q: missing key", s)
	}
	if _, ok := keyNames[b.Key]; !ok {
		return Binding{}, fmt.Errorf("invalid hotkey %q: unknown key %q", s, b.Key)
	}
	return b, nil
}

func (b Binding) String() string {
	parts := make([]string, 0, len(b.Mods)+1)
	for _, m := range b.Mods {
		parts = append(parts, string(m))
	}
	parts = append(parts, b.Key)
	return strings.Join(parts, "+")
}
