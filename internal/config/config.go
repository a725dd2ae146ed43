// Package config loads the user configuration from the XDG config directory
// and applies CLI flag overrides on top of it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/protunedev/protune/internal/trigger"
)

const configFile = "protune/config.toml"

// UserConfig represents the user's custom configuration.
type UserConfig struct {
	Input     InputConfig     `toml:"input"`
	Apply     ApplyConfig     `toml:"apply"`
	Simulator SimulatorConfig `toml:"simulator"`
}

// InputConfig holds trigger and key emission settings.
type InputConfig struct {
	Hotkey     string `toml:"hotkey"`       // Global hotkey combo, e.g. ctrl+alt+s (default: ctrl+alt+s)
	KeyDelayMS int    `toml:"key_delay_ms"` // Pause between key events in milliseconds (default: 50, max: 1000)
}

// ApplyConfig holds one-shot apply settings.
type ApplyConfig struct {
	CountdownSecs  int    `toml:"countdown_secs"`  // Seconds to wait before a one-shot apply (default: 5)
	DefaultProfile string `toml:"default_profile"` // Profile used when --profile is not given
}

// SimulatorConfig holds menu simulator timeouts.
type SimulatorConfig struct {
	IdleTimeoutSecs    int `toml:"idle_timeout_secs"`    // Quit after this long without input (default: 10)
	SessionTimeoutSecs int `toml:"session_timeout_secs"` // Quit after this long overall (default: 30)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Input: InputConfig{
			Hotkey:     "ctrl+alt+s",
			KeyDelayMS: 50,
		},
		Apply: ApplyConfig{
			CountdownSecs: 5,
		},
		Simulator: SimulatorConfig{
			IdleTimeoutSecs:    10,
			SessionTimeoutSecs: 30,
		},
	}
}

// KeyDelay returns the inter-key delay as a duration.
func (c *UserConfig) KeyDelay() time.Duration {
	return time.Duration(c.Input.KeyDelayMS) * time.Millisecond
}

// Parse unmarshals a config file, fills missing fields with defaults, and
// validates the result.
func Parse(data []byte) (*UserConfig, error) {
	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	fillMissing(&cfg, DefaultConfig())
	if _, err := trigger.Parse(cfg.Input.Hotkey); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func fillMissing(cfg, def *UserConfig) {
	if cfg.Input.Hotkey == "" {
		cfg.Input.Hotkey = def.Input.Hotkey
	}
	if cfg.Input.KeyDelayMS <= 0 {
		cfg.Input.KeyDelayMS = def.Input.KeyDelayMS
	} else if cfg.Input.KeyDelayMS > 1000 {
		cfg.Input.KeyDelayMS = 1000
	}
	if cfg.Apply.CountdownSecs <= 0 {
		cfg.Apply.CountdownSecs = def.Apply.CountdownSecs
	}
	if cfg.Simulator.IdleTimeoutSecs <= 0 {
		cfg.Simulator.IdleTimeoutSecs = def.Simulator.IdleTimeoutSecs
	}
	if cfg.Simulator.SessionTimeoutSecs <= 0 {
		cfg.Simulator.SessionTimeoutSecs = def.Simulator.SessionTimeoutSecs
	}
}

// LoadUserConfig loads the user configuration from the XDG config directory,
// creating a commented default file on first run.
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile(configFile)
	if err != nil {
		return createDefaultConfig()
	}

	// #nosec G304 - configPath is from XDG search, reading user config is intentional
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// createDefaultConfig creates a default config file in the user's config directory.
func createDefaultConfig() (*UserConfig, error) {
	cfg := DefaultConfig()

	configPath, err := xdg.ConfigFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# protune configuration file\n")
	sb.WriteString("#\n")
	sb.WriteString("# hotkey: global trigger combo for `protune listen`\n")
	sb.WriteString("#   Format: modifier+...+key, modifiers: ctrl, shift, alt, super\n")
	sb.WriteString("#   Default: ctrl+alt+s\n")
	sb.WriteString("#\n")
	sb.WriteString("# key_delay_ms: pause between emitted key events\n")
	sb.WriteString("#   Range: 1 to 1000. Raise this if the game drops keys.\n")
	sb.WriteString("#   Default: 50\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + configPath + "\n\n")
	sb.Write(data)

	if err := os.WriteFile(configPath, []byte(sb.String()), 0600); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}
	return cfg, nil
}

// Reset overwrites the user's config file with the defaults and returns its
// path.
func Reset() (string, error) {
	if _, err := createDefaultConfig(); err != nil {
		return "", err
	}
	return xdg.ConfigFile(configFile)
}

// GetConfigPath returns the path to the config file, or where it would be
// created.
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(configFile)
	if err != nil {
		return xdg.ConfigFile(configFile)
	}
	return path, nil
}

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the config default.
type Overrides struct {
	// Hotkey overrides the trigger combo
	Hotkey string

	// KeyDelayMS overrides the inter-key delay (0 means use config)
	KeyDelayMS int

	// CountdownSecs overrides the one-shot apply countdown (0 means use config)
	CountdownSecs int

	// Profile overrides the default profile name
	Profile string
}

// ApplyOverrides applies CLI flag overrides on top of the loaded config.
func ApplyOverrides(o Overrides, cfg *UserConfig) {
	if o.Hotkey != "" {
		cfg.Input.Hotkey = o.Hotkey
	}
	if o.KeyDelayMS > 0 {
		delay := o.KeyDelayMS
		if delay > 1000 {
			delay = 1000
		}
		cfg.Input.KeyDelayMS = delay
	}
	if o.CountdownSecs > 0 {
		cfg.Apply.CountdownSecs = o.CountdownSecs
	}
	if o.Profile != "" {
		cfg.Apply.DefaultProfile = o.Profile
	}
}
