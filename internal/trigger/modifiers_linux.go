//go:build linux

package trigger

import "golang.design/x/hotkey"

// nativeModifiers maps combo modifiers to X11 modifier masks.
var nativeModifiers = map[Modifier]hotkey.Modifier{
	ModCtrl:  hotkey.ModCtrl,
	ModShift: hotkey.ModShift,
	ModAlt:   hotkey.Mod1,
	ModSuper: hotkey.Mod4,
}
