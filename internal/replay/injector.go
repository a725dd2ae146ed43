// Package replay emits a plan's key events to the foreground window. It is
// open-loop: nothing observes the menu, dropped keys are not detected, and a
// run always walks the full plan.
package replay

import (
	"github.com/go-vgo/robotgo"

	"github.com/protunedev/protune/internal/sequence"
)

// Injector delivers one synthetic key event to whatever window currently has
// input focus.
type Injector interface {
	Tap(k sequence.Key) error
}

// SystemInjector taps keys through the OS input layer via robotgo.
type SystemInjector struct{}

// NewSystemInjector returns the production injector.
func NewSystemInjector() *SystemInjector {
	return &SystemInjector{}
}

// Tap emits a single key press+release.
func (SystemInjector) Tap(k sequence.Key) error {
	return robotgo.KeyTap(k.String())
}
