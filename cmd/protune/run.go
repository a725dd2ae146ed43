package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/protunedev/protune/internal/config"
	"github.com/protunedev/protune/internal/importer"
	"github.com/protunedev/protune/internal/profile"
	"github.com/protunedev/protune/internal/replay"
	"github.com/protunedev/protune/internal/sequence"
	"github.com/protunedev/protune/internal/simulator"
	"github.com/protunedev/protune/internal/trigger"
)

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if debugMode {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func loadConfig(logger *log.Logger, overrides config.Overrides) *config.UserConfig {
	cfg, err := config.LoadUserConfig()
	if err != nil {
		logger.Warn("failed to load config, using defaults", "err", err)
		cfg = config.DefaultConfig()
	}
	config.ApplyOverrides(overrides, cfg)
	return cfg
}

// resolveProfile loads a profile by name from the store, or from a file path
// when the argument looks like one.
func resolveProfile(name string) (*profile.Profile, error) {
	if name == "" {
		return nil, fmt.Errorf("no profile specified (use --profile or set default_profile in the config)")
	}
	if strings.ContainsRune(name, os.PathSeparator) || strings.HasSuffix(name, ".toml") {
		if _, err := os.Stat(name); err == nil {
			return profile.LoadFile(name)
		}
	}
	store, err := profile.DefaultStore()
	if err != nil {
		return nil, err
	}
	return store.Load(name)
}

func runListen(profileName, hotkeyCombo string, keyDelayMS int) error {
	logger := newLogger()
	cfg := loadConfig(logger, config.Overrides{
		Hotkey:     hotkeyCombo,
		KeyDelayMS: keyDelayMS,
		Profile:    profileName,
	})

	prof, err := resolveProfile(cfg.Apply.DefaultProfile)
	if err != nil {
		return err
	}
	plan := sequence.Build(prof)

	binding, err := trigger.Parse(cfg.Input.Hotkey)
	if err != nil {
		return err
	}
	hk, err := trigger.New(binding)
	if err != nil {
		return err
	}
	if err := hk.Register(); err != nil {
		return err
	}
	defer func() {
		if err := hk.Unregister(); err != nil {
			logger.Warn("failed to unregister hotkey", "err", err)
		}
	}()

	player := replay.New(replay.NewSystemInjector(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutting down")
		cancel()
	}()

	logger.Info("listening",
		"hotkey", binding.String(),
		"profile", prof.Car(),
		"events", plan.Total(),
		"key_delay", cfg.KeyDelay())

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-hk.Keydown():
			go func() {
				err := player.Run(ctx, plan, cfg.KeyDelay())
				switch {
				case errors.Is(err, replay.ErrBusy):
					logger.Warn("trigger ignored: replay already running")
				case err != nil:
					logger.Error("replay failed", "err", err)
				default:
					replay.NotifyDone(os.Stdout, prof.Car(), plan)
				}
			}()
		}
	}
}

func runApply(profileName string, countdownSecs, keyDelayMS int) error {
	logger := newLogger()
	cfg := loadConfig(logger, config.Overrides{
		KeyDelayMS:    keyDelayMS,
		CountdownSecs: countdownSecs,
		Profile:       profileName,
	})

	prof, err := resolveProfile(cfg.Apply.DefaultProfile)
	if err != nil {
		return err
	}
	plan := sequence.Build(prof)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("focus the game window on the first menu setting",
		"profile", prof.Car(), "events", plan.Total())
	for i := cfg.Apply.CountdownSecs; i > 0; i-- {
		fmt.Fprintf(os.Stderr, "\rreplaying in %d... ", i)
		select {
		case <-ctx.Done():
			fmt.Fprintln(os.Stderr)
			return nil
		case <-time.After(time.Second):
		}
	}
	fmt.Fprintln(os.Stderr)

	player := replay.New(replay.NewSystemInjector(), logger)
	if err := player.Run(ctx, plan, cfg.KeyDelay()); err != nil {
		return err
	}
	replay.NotifyDone(os.Stdout, prof.Car(), plan)
	return nil
}

func runShow(name string) error {
	prof, err := resolveProfile(name)
	if err != nil {
		return err
	}
	fmt.Printf("Car: %s\n", prof.Car())
	if len(prof.Skipped) > 0 {
		fmt.Printf("Skipped settings: %s\n", strings.Join(prof.Skipped, ", "))
	}
	fmt.Println()
	fmt.Print(sequence.Build(prof).Transcript())
	return nil
}

func runValidate(path string) error {
	prof, err := profile.LoadFile(path)
	if err != nil {
		return err
	}
	plan := sequence.Build(prof)
	fmt.Printf("%s: ok (%s, %d settings, %d key events)\n",
		path, prof.Car(), len(prof.Settings), plan.Total())
	return nil
}

func runList() error {
	store, err := profile.DefaultStore()
	if err != nil {
		return err
	}
	files, err := store.List()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No profiles found. Use `protune import` to create one.")
		return nil
	}
	for _, f := range files {
		fmt.Printf("%-30s %8s  %s\n", f.Name, formatFileSize(f.Size), f.Modified.Format("Jan 02 15:04"))
	}
	return nil
}

func formatFileSize(size int64) string {
	if size < 1024 {
		return fmt.Sprintf("%dB", size)
	}
	return fmt.Sprintf("%.1fKB", float64(size)/1024)
}

func runDir() error {
	dir, err := profile.DataDir()
	if err != nil {
		return err
	}
	fmt.Println(dir)
	return nil
}

func runDelete(name string) error {
	store, err := profile.DefaultStore()
	if err != nil {
		return err
	}
	if err := store.Delete(name); err != nil {
		return err
	}
	fmt.Printf("Deleted '%s'\n", name)
	return nil
}

func runExport(name, dest string) error {
	store, err := profile.DefaultStore()
	if err != nil {
		return err
	}
	if err := store.Export(name, dest); err != nil {
		return err
	}
	fmt.Printf("Exported '%s' to %s\n", name, dest)
	return nil
}

type importOptions struct {
	category       string
	manufacturer   string
	model          string
	output         string
	skip           []string
	listCategories bool
	listCars       bool
}

func runImport(path string, opts importOptions) error {
	wb, err := importer.Open(path)
	if err != nil {
		return err
	}

	if opts.listCategories {
		fmt.Println("Available vehicle categories:")
		for _, c := range wb.Categories() {
			fmt.Printf("  - %s\n", c)
		}
		return nil
	}

	if opts.listCars {
		if opts.category == "" {
			return fmt.Errorf("--category is required with --list-cars")
		}
		cars, err := wb.Cars(opts.category)
		if err != nil {
			return err
		}
		fmt.Printf("Available cars in category %q:\n", opts.category)
		mfrs := make([]string, 0, len(cars))
		for mfr := range cars {
			mfrs = append(mfrs, mfr)
		}
		sort.Strings(mfrs)
		for _, mfr := range mfrs {
			fmt.Printf("\n%s\n", mfr)
			for _, model := range cars[mfr] {
				fmt.Printf("  - %s\n", model)
			}
		}
		return nil
	}

	if opts.category == "" || opts.manufacturer == "" || opts.model == "" {
		return fmt.Errorf("--category, --manufacturer, and --model are required to import a car")
	}

	prof, err := wb.Setup(opts.category, opts.manufacturer, opts.model)
	if err != nil {
		return err
	}
	prof.Drop(opts.skip...)
	if err := prof.Validate(); err != nil {
		return err
	}

	name := opts.output
	if name == "" {
		name = slugify(opts.model)
	}

	store, err := profile.DefaultStore()
	if err != nil {
		return err
	}
	savedPath, err := store.Save(name, prof)
	if err != nil {
		return err
	}

	fmt.Printf("Profile saved: %s\n", savedPath)
	fmt.Printf("Settings applied: %d\n", len(prof.Settings))
	if len(prof.Skipped) > 0 {
		fmt.Println("Skipped settings (not available for this car):")
		for _, s := range prof.Skipped {
			fmt.Printf("  - %s\n", s)
		}
	}
	return nil
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, s)
}

func runSimulate(profileName string) error {
	logger := newLogger()
	cfg := loadConfig(logger, config.Overrides{Profile: profileName})

	prof, err := resolveProfile(cfg.Apply.DefaultProfile)
	if err != nil {
		return err
	}

	model := simulator.New(prof, simulator.Config{
		IdleTimeout:    time.Duration(cfg.Simulator.IdleTimeoutSecs) * time.Second,
		SessionTimeout: time.Duration(cfg.Simulator.SessionTimeoutSecs) * time.Second,
	})

	p := tea.NewProgram(model)
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("simulator error: %w", err)
	}
	if m, ok := finalModel.(*simulator.Model); ok && m.QuitReason() != "" {
		fmt.Printf("Simulator closed: %s\n", m.QuitReason())
	}
	return nil
}

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func editConfigFile() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	// Make sure the file exists so the editor has something to open.
	if _, err := os.Stat(path); err != nil {
		if _, err := config.LoadUserConfig(); err != nil {
			return err
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, candidate := range []string{"vim", "vi", "nano", "emacs"} {
			if _, err := exec.LookPath(candidate); err == nil {
				editor = candidate
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found: set $EDITOR or $VISUAL")
	}

	cmd := exec.Command(editor, path) // #nosec G204 - editor comes from the user's environment
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func resetConfigToDefaults() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	fmt.Printf("Reset %s to defaults? [y/N] ", path)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	if strings.ToLower(strings.TrimSpace(answer)) != "y" {
		fmt.Println("Aborted.")
		return nil
	}
	if _, err := config.Reset(); err != nil {
		return err
	}
	fmt.Printf("Configuration reset: %s\n", path)
	return nil
}
