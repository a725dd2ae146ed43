package trigger

import (
	"fmt"

	"golang.design/x/hotkey"
)

// keyNames maps combo key names to hook key codes. The names are the
// lower-case forms Parse accepts.
var keyNames = map[string]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"space":  hotkey.KeySpace,
	"enter":  hotkey.KeyReturn,
	"return": hotkey.KeyReturn,
	"escape": hotkey.KeyEscape,
	"esc":    hotkey.KeyEscape,
	"tab":    hotkey.KeyTab,
	"up":     hotkey.KeyUp,
	"down":   hotkey.KeyDown,
	"left":   hotkey.KeyLeft,
	"right":  hotkey.KeyRight,
	"f1":     hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3,
	"f4": hotkey.KeyF4, "f5": hotkey.KeyF5, "f6": hotkey.KeyF6,
	"f7": hotkey.KeyF7, "f8": hotkey.KeyF8, "f9": hotkey.KeyF9,
	"f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,
}

// Hotkey is the registered global hook. It is owned for the process
// lifetime of a listen run: acquired once at start, released at stop.
type Hotkey struct {
	binding Binding
	hk      *hotkey.Hotkey
}

// New builds the hook for a parsed binding without registering it.
func New(b Binding) (*Hotkey, error) {
	key, ok := keyNames[b.Key]
	if !ok {
		return nil, fmt.Errorf("hotkey: unsupported key %q", b.Key)
	}
	mods := make([]hotkey.Modifier, 0, len(b.Mods))
	for _, m := range b.Mods {
		native, ok := nativeModifiers[m]
		if !ok {
			return nil, fmt.Errorf("hotkey: modifier %q not available on this platform", m)
		}
		mods = append(mods, native)
	}
	return &Hotkey{binding: b, hk: hotkey.New(mods, key)}, nil
}

// Register installs the process-wide hook. It fails if another process
// already owns the combination; that is fatal to the binding.
func (h *Hotkey) Register() error {
	if err := h.hk.Register(); err != nil {
		return fmt.Errorf("failed to register hotkey %s (already bound by another process?): %w", h.binding, err)
	}
	return nil
}

// Keydown delivers one event per press of the registered combo.
func (h *Hotkey) Keydown() <-chan hotkey.Event {
	return h.hk.Keydown()
}

// Unregister releases the hook.
func (h *Hotkey) Unregister() error {
	return h.hk.Unregister()
}

// Binding returns the combo this hook was built from.
func (h *Hotkey) Binding() Binding {
	return h.binding
}
