// Package main provides the CLI entrypoint for dtspeed.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/dtspeed/internal/config"
	"github.com/verte-zerg/dtspeed/internal/logging"
	"github.com/verte-zerg/dtspeed/internal/model"
	"github.com/verte-zerg/dtspeed/internal/pace"
	"github.com/verte-zerg/dtspeed/internal/report"
	"github.com/verte-zerg/dtspeed/internal/store"
	"github.com/verte-zerg/dtspeed/internal/tui"
	"github.com/verte-zerg/dtspeed/internal/view"
)

var (
	rootDBPath   string
	rootLogLevel string
	rootLogFile  string
	rootNoSave   bool

	calcGoal   string
	calcDay    string
	calcAvg    string
	calcFormat string
	calcSave   bool

	resetYes   bool
	resetClear bool
)

// isInteractive is swapped in tests.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dtspeed",
		Short:         "28-day period pace calculator",
		Long:          "Find the average you must run from today forward to finish the 28-day period at your goal.",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runCalculatorCmd,
	}

	rootCmd.PersistentFlags().StringVar(&rootDBPath, "db", config.DefaultDBPath(), "path to the settings database")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", logging.DefaultLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&rootLogFile, "log-file", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&rootNoSave, "no-save", false, "do not read or write saved inputs")

	rootCmd.AddCommand(newCalcCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// appEnv holds what every command needs once config has been resolved.
type appEnv struct {
	cfg      model.Config
	logger   *slog.Logger
	store    *store.Store
	closeLog func() error
}

func openEnv(cmd *cobra.Command) (*appEnv, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	env := &appEnv{cfg: cfg, logger: logger, closeLog: closeLog}
	if !cfg.Persist {
		logger.Debug("persistence disabled")
		return env, nil
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	env.store = st
	return env, nil
}

func (e *appEnv) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.logger.Warn("failed to close db", "error", err)
		}
	}
	if err := e.closeLog(); err != nil {
		logErrf("failed to close log file: %v\n", err)
	}
}

func (e *appEnv) defaults() model.Settings {
	return model.DefaultSettings(e.cfg.DefaultGoal)
}

// settingsStore returns the store as an interface value, nil when
// persistence is off.
func (e *appEnv) settingsStore() tui.SettingsStore {
	if e.store == nil {
		return nil
	}
	return e.store
}

func (e *appEnv) savedSettings(ctx context.Context) model.Settings {
	if e.store == nil {
		return e.defaults()
	}
	saved, ok, err := e.store.LoadSettings(ctx)
	if err != nil {
		e.logger.Warn("failed to load saved inputs; using defaults", "error", err)
		return e.defaults()
	}
	if !ok {
		return e.defaults()
	}
	return saved
}

func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "db", &rootDBPath, fileCfg.Storage.DBPath)
	applyStringConfig(cmd, "log-level", &rootLogLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &rootLogFile, fileCfg.Log.File)

	persist := !rootNoSave
	if fileCfg.Calculator.Persist != nil && !cmd.Flags().Changed("no-save") {
		persist = *fileCfg.Calculator.Persist
	}

	cfg := model.Config{
		DefaultGoal: model.DefaultGoal,
		Persist:     persist,
		DBPath:      rootDBPath,
		LogLevel:    rootLogLevel,
		LogFile:     rootLogFile,
	}
	if fileCfg.Calculator.Goal != nil {
		cfg.DefaultGoal = *fileCfg.Calculator.Goal
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.Config) error {
	if _, err := pace.ParseTime(cfg.DefaultGoal); err != nil {
		return fmt.Errorf("invalid default goal %q in config: %w", cfg.DefaultGoal, err)
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.Persist && strings.TrimSpace(cfg.DBPath) == "" {
		return fmt.Errorf("--db must not be empty")
	}
	return nil
}

func runCalculatorCmd(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	if !isInteractive() {
		env.logger.Info("not attached to a terminal; printing saved result")
		settings := env.savedSettings(cmd.Context())
		return report.Render(cmd.OutOrStdout(), view.Recompute(settings, true), report.FormatText)
	}

	m := tui.NewModel(env.settingsStore(), env.logger, env.defaults())
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newCalcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Print the required average without the interactive form",
		Long: "Print the required average for the given inputs. Inputs not passed as flags " +
			"come from the saved form, then from the defaults.",
		Args: cobra.NoArgs,
		RunE: runCalcCmd,
	}
	cmd.Flags().StringVar(&calcGoal, "goal", "", "goal period average (m:ss)")
	cmd.Flags().StringVar(&calcDay, "day", "", "day of the period (1-28)")
	cmd.Flags().StringVar(&calcAvg, "avg", "", "current period average (m:ss)")
	cmd.Flags().StringVar(&calcFormat, "format", report.FormatText, "output format (text, json, yaml)")
	cmd.Flags().BoolVar(&calcSave, "save", false, "save the resulting inputs for the next run")
	return cmd
}

func runCalcCmd(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	if calcSave && env.store == nil {
		return fmt.Errorf("--save cannot be used when persistence is disabled")
	}

	ctx := cmd.Context()
	settings := env.savedSettings(ctx)
	applyInput(cmd, "goal", &settings.Goal, calcGoal)
	applyInput(cmd, "day", &settings.DayOfPeriod, calcDay)
	applyInput(cmd, "avg", &settings.CurrentAvg, calcAvg)

	if err := report.Render(cmd.OutOrStdout(), view.Recompute(settings, true), calcFormat); err != nil {
		return err
	}
	if calcSave {
		if err := env.store.SaveSettings(ctx, settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		env.logger.Debug("settings saved", "goal", settings.Goal, "day", settings.DayOfPeriod)
	}
	return nil
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset saved inputs to defaults",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().BoolVar(&resetYes, "yes", false, "skip the confirmation prompt")
	cmd.Flags().BoolVar(&resetClear, "clear", false, "remove the saved inputs instead of writing defaults")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	if env.store == nil {
		return fmt.Errorf("persistence is disabled; nothing to reset")
	}
	if !resetYes {
		confirmed, err := confirmReset()
		if err != nil {
			return err
		}
		if !confirmed {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Reset cancelled.")
			return err
		}
	}

	ctx := cmd.Context()
	if resetClear {
		if err := env.store.ClearSettings(ctx); err != nil {
			return fmt.Errorf("failed to clear settings: %w", err)
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "Saved inputs removed.")
		return err
	}
	defaults := env.defaults()
	if err := env.store.SaveSettings(ctx, defaults); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Reset to defaults: goal %s, day %s.\n", defaults.Goal, defaults.DayOfPeriod)
	return err
}

func confirmReset() (bool, error) {
	if !isInteractive() {
		return false, fmt.Errorf("not attached to a terminal; pass --yes to reset")
	}
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reset saved inputs to defaults?").
				Description("Goal, day of period and current average will be overwritten.").
				Affirmative("Reset").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithShowHelp(false)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("failed to run prompt: %w", err)
	}
	return confirmed, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeDefaultConfig(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeDefaultConfig creates the config template unless a file already exists.
func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInput(cmd *cobra.Command, name string, target *string, value string) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# dtspeed configuration
# Uncomment a value to enable it. CLI flags override config values.

[calculator]
# goal = %q          # Goal used by the defaults and by reset
# persist = true          # Save form inputs between runs

[storage]
# db-path = %q

[log]
# level = %q            # debug, info, warn or error
# file = ""               # Log file (default: stderr)
`,
		model.DefaultGoal,
		config.DefaultDBPath(),
		logging.DefaultLevel,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
