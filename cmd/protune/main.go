// Package main implements protune, an open-loop keystroke replayer for
// in-game pro-settings menus. It stores car setups as profile files, imports
// them from the community spreadsheet, and replays them into the foreground
// window on a global hotkey.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var debugMode bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "protune",
		Short: "Pro-settings keystroke replayer",
		Long: `protune - pro-settings keystroke replayer

Applies a car's tuning setup by replaying directional keystrokes into the
in-game pro-settings menu. Replay is open-loop: the game menu must be on the
first setting before triggering, and nothing verifies the values afterwards.`,
		Example: `  # Wait for the hotkey (default ctrl+alt+s) and replay a profile
  protune listen --profile bmw_m3_racing

  # Replay once after a 5 second countdown
  protune apply --profile bmw_m3_racing

  # Print the keystroke transcript without emitting anything
  protune show bmw_m3_racing

  # Import a car from the community spreadsheet
  protune import settings.xlsx --category RACING --manufacturer BMW --model "BMW M3"

  # Dry-run the menu locally
  protune simulate --profile bmw_m3_racing`,
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	var listenProfile, listenHotkey string
	var listenKeyDelay int

	listenCmd := &cobra.Command{
		Use:   "listen",
		Short: "Wait for the global hotkey and replay on each press",
		Long: `Register the global hotkey and block until interrupted.

Each hotkey press replays the profile once. Presses that arrive while a
replay is running are ignored. Registration fails immediately if another
process owns the combination.`,
		Example: `  # Listen with the configured hotkey
  protune listen --profile bmw_m3_racing

  # Use a different combination and a slower key rate
  protune listen --profile bmw_m3_racing --hotkey ctrl+shift+f9 --key-delay 80`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runListen(listenProfile, listenHotkey, listenKeyDelay)
		},
	}
	listenCmd.Flags().StringVarP(&listenProfile, "profile", "p", "", "Profile to replay (default: from config)")
	listenCmd.Flags().StringVar(&listenHotkey, "hotkey", "", "Trigger combo, e.g. ctrl+alt+s (default: from config)")
	listenCmd.Flags().IntVar(&listenKeyDelay, "key-delay", 0, "Delay between key events in milliseconds (default: from config)")

	var applyProfile string
	var applyCountdown, applyKeyDelay int

	applyCmd := &cobra.Command{
		Use:   "apply",
		Short: "Replay a profile once after a countdown",
		Long: `Replay a profile once, after a countdown that leaves time to focus the
game window and open the pro-settings menu on its first entry.`,
		Example: `  protune apply --profile bmw_m3_racing
  protune apply --profile bmw_m3_racing --countdown 10`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runApply(applyProfile, applyCountdown, applyKeyDelay)
		},
	}
	applyCmd.Flags().StringVarP(&applyProfile, "profile", "p", "", "Profile to replay (default: from config)")
	applyCmd.Flags().IntVar(&applyCountdown, "countdown", 0, "Seconds to wait before replaying (default: from config)")
	applyCmd.Flags().IntVar(&applyKeyDelay, "key-delay", 0, "Delay between key events in milliseconds (default: from config)")

	showCmd := &cobra.Command{
		Use:   "show <profile>",
		Short: "Print a profile's keystroke transcript",
		Long:  `Print the exact key events a replay would emit, without emitting them.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runShow(args[0])
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a profile file without running it",
		Long:  `Parse a profile file and report problems: unknown settings, wrong menu order, bad increments.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored profiles",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runList()
		},
	}

	dirCmd := &cobra.Command{
		Use:   "dir",
		Short: "Show the profile directory path",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDir()
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runDelete(args[0])
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export <name> <dest>",
		Short: "Copy a stored profile to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runExport(args[0], args[1])
		},
	}

	var importCategory, importManufacturer, importModel, importOutput string
	var importSkip []string
	var importListCategories, importListCars bool

	importCmd := &cobra.Command{
		Use:   "import <spreadsheet.xlsx>",
		Short: "Build a profile from the community settings spreadsheet",
		Long: `Read the community pro-settings spreadsheet and store one car's setup as
a profile. Settings the spreadsheet has no value for are recorded as skipped
(not available for that car).`,
		Example: `  # See what the spreadsheet contains
  protune import settings.xlsx --list-categories
  protune import settings.xlsx --list-cars --category RACING

  # Import one car
  protune import settings.xlsx --category RACING --manufacturer BMW --model "BMW M3"

  # Import without the final drive adjustment
  protune import settings.xlsx --category RACING --manufacturer BMW --model "BMW M3" \
    --skip-settings final_drive`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runImport(args[0], importOptions{
				category:       importCategory,
				manufacturer:   importManufacturer,
				model:          importModel,
				output:         importOutput,
				skip:           importSkip,
				listCategories: importListCategories,
				listCars:       importListCars,
			})
		},
	}
	importCmd.Flags().StringVar(&importCategory, "category", "", "Vehicle category (e.g. STREET TIER 1, RACING, DRIFT)")
	importCmd.Flags().StringVar(&importManufacturer, "manufacturer", "", "Vehicle manufacturer name")
	importCmd.Flags().StringVar(&importModel, "model", "", "Car model name")
	importCmd.Flags().StringVarP(&importOutput, "output", "o", "", "Profile name to save as (default: derived from model)")
	importCmd.Flags().StringSliceVar(&importSkip, "skip-settings", nil, "Settings to leave out (e.g. final_drive)")
	importCmd.Flags().BoolVar(&importListCategories, "list-categories", false, "List vehicle categories and exit")
	importCmd.Flags().BoolVar(&importListCars, "list-cars", false, "List cars in --category and exit")

	var simulateProfile string

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Dry-run a profile in a local menu simulator",
		Long: `Open a local copy of the pro-settings menu for a profile: the same rows,
directional semantics, and clamping, without the game. Closes after 10
seconds without input or 30 seconds overall, like the in-game menu.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSimulate(simulateProfile)
		},
	}
	simulateCmd.Flags().StringVarP(&simulateProfile, "profile", "p", "", "Profile to simulate (default: from config)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage protune configuration",
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the protune configuration file in your default editor.

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the protune configuration file to default settings.

This will overwrite your existing configuration after confirmation.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return resetConfigToDefaults()
		},
	}

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)

	rootCmd.AddCommand(listenCmd, applyCmd, showCmd, validateCmd)
	rootCmd.AddCommand(listCmd, dirCmd, deleteCmd, exportCmd)
	rootCmd.AddCommand(importCmd, simulateCmd, configCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
