//go:build windows

package trigger

import "golang.design/x/hotkey"

// nativeModifiers maps combo modifiers to Win32 hotkey modifiers.
var nativeModifiers = map[Modifier]hotkey.Modifier{
	ModCtrl:  hotkey.ModCtrl,
	ModShift: hotkey.ModShift,
	ModAlt:   hotkey.ModAlt,
	ModSuper: hotkey.ModWin,
}
