//go:build darwin

package trigger

import "golang.design/x/hotkey"

// nativeModifiers maps combo modifiers to Carbon hotkey modifiers.
var nativeModifiers = map[Modifier]hotkey.Modifier{
	ModCtrl:  hotkey.ModCtrl,
	ModShift: hotkey.ModShift,
	ModAlt:   hotkey.ModOption,
	ModSuper: hotkey.ModCmd,
}
