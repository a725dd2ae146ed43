package config

import (
	"testing"
	"time"
)

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error: %v", err)
	}

	def := DefaultConfig()
	if cfg.Input.Hotkey != def.Input.Hotkey {
		t.Errorf("Hotkey = %q, want default %q", cfg.Input.Hotkey, def.Input.Hotkey)
	}
	if cfg.Input.KeyDelayMS != def.Input.KeyDelayMS {
		t.Errorf("KeyDelayMS = %d, want default %d", cfg.Input.KeyDelayMS, def.Input.KeyDelayMS)
	}
	if cfg.Apply.CountdownSecs != def.Apply.CountdownSecs {
		t.Errorf("CountdownSecs = %d, want default %d", cfg.Apply.CountdownSecs, def.Apply.CountdownSecs)
	}
	if cfg.Simulator.IdleTimeoutSecs != def.Simulator.IdleTimeoutSecs {
		t.Errorf("IdleTimeoutSecs = %d, want default %d", cfg.Simulator.IdleTimeoutSecs, def.Simulator.IdleTimeoutSecs)
	}
}

func TestParsePartial(t *testing.T) {
	data := []byte(`
[input]
hotkey = "ctrl+shift+r"

[simulator]
idle_timeout_secs = 20
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if cfg.Input.Hotkey != "ctrl+shift+r" {
		t.Errorf("Hotkey = %q", cfg.Input.Hotkey)
	}
	if cfg.Input.KeyDelayMS != 50 {
		t.Errorf("KeyDelayMS = %d, want filled-in default 50", cfg.Input.KeyDelayMS)
	}
	if cfg.Simulator.IdleTimeoutSecs != 20 {
		t.Errorf("IdleTimeoutSecs = %d", cfg.Simulator.IdleTimeoutSecs)
	}
	if cfg.Simulator.SessionTimeoutSecs != 30 {
		t.Errorf("SessionTimeoutSecs = %d, want filled-in default 30", cfg.Simulator.SessionTimeoutSecs)
	}
}

func TestParseClampsKeyDelay(t *testing.T) {
	cfg, err := Parse([]byte("[input]\nkey_delay_ms = 5000\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Input.KeyDelayMS != 1000 {
		t.Errorf("KeyDelayMS = %d, want clamped 1000", cfg.Input.KeyDelayMS)
	}
}

func TestParseRejectsBadHotkey(t *testing.T) {
	if _, err := Parse([]byte("[input]\nhotkey = \"s\"\n")); err == nil {
		t.Error("Parse() with modifier-less hotkey expected error")
	}
	if _, err := Parse([]byte("not toml at all {{{")); err == nil {
		t.Error("Parse() with invalid TOML expected error")
	}
}

func TestKeyDelay(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.KeyDelay(); got != 50*time.Millisecond {
		t.Errorf("KeyDelay() = %v, want 50ms", got)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()
	ApplyOverrides(Overrides{
		Hotkey:        "ctrl+alt+r",
		KeyDelayMS:    2000,
		CountdownSecs: 10,
		Profile:       "m3-racing",
	}, cfg)

	if cfg.Input.Hotkey != "ctrl+alt+r" {
		t.Errorf("Hotkey = %q", cfg.Input.Hotkey)
	}
	if cfg.Input.KeyDelayMS != 1000 {
		t.Errorf("KeyDelayMS = %d, want clamped 1000", cfg.Input.KeyDelayMS)
	}
	if cfg.Apply.CountdownSecs != 10 {
		t.Errorf("CountdownSecs = %d", cfg.Apply.CountdownSecs)
	}
	if cfg.Apply.DefaultProfile != "m3-racing" {
		t.Errorf("DefaultProfile = %q", cfg.Apply.DefaultProfile)
	}
}

func TestApplyOverridesZeroValuesKeepConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Apply.DefaultProfile = "kept"
	ApplyOverrides(Overrides{}, cfg)

	if cfg.Input.Hotkey != "ctrl+alt+s" {
		t.Errorf("Hotkey = %q, want untouched default", cfg.Input.Hotkey)
	}
	if cfg.Input.KeyDelayMS != 50 {
		t.Errorf("KeyDelayMS = %d, want untouched default", cfg.Input.KeyDelayMS)
	}
	if cfg.Apply.DefaultProfile != "kept" {
		t.Errorf("DefaultProfile = %q, want untouched", cfg.Apply.DefaultProfile)
	}
}
