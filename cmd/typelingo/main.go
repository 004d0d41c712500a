// Package main provides the CLI entrypoint for typelingo.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/typelingo/internal/config"
	"github.com/verte-zerg/typelingo/internal/library"
	"github.com/verte-zerg/typelingo/internal/logger"
	"github.com/verte-zerg/typelingo/internal/model"
	"github.com/verte-zerg/typelingo/internal/store"
	"github.com/verte-zerg/typelingo/internal/translate"
	"github.com/verte-zerg/typelingo/internal/tui"
	"github.com/verte-zerg/typelingo/internal/validation"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

var (
	translatorURL     string
	translatorTimeout time.Duration
	richPunct         bool
	logLevel          string
	logFormat         string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typelingo",
		Short:         "Learn a language by typing and aligning translated text",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&translatorURL, "translator-url", translate.DefaultURL, "translation endpoint")
	flags.DurationVar(&translatorTimeout, "timeout", defaultTimeout, "translation request timeout")
	flags.BoolVar(&richPunct, "rich-punct", false, "accept quotes while typing")
	flags.StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", defaultLogFormat, "log format (text, json)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

// app holds the resources shared by every command.
type app struct {
	cfg     model.Config
	logger  *slog.Logger
	library *library.Library
	store   *store.Store
	closers []io.Closer
}

// openApp resolves configuration and opens storage. Interactive runs log to
// the state directory because the screen belongs to the TUI.
func openApp(cmd *cobra.Command, interactive bool) (*app, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg}

	logCfg := logger.Config{Format: cfg.LogFormat, Level: logger.ParseLevel(cfg.LogLevel)}
	if interactive {
		lg, closer, err := logger.OpenFile(config.DefaultLogPath(), logCfg)
		if err != nil {
			return nil, err
		}
		a.logger = lg
		a.closers = append(a.closers, closer)
	} else {
		logCfg.Writer = cmd.ErrOrStderr()
		a.logger = logger.New(logCfg)
	}

	lib, err := library.Open(config.DefaultLibraryDir(), a.logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.library = lib
	a.closers = append(a.closers, lib)

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	a.store = st
	a.closers = append(a.closers, st)

	seeded, err := lib.SeedIfEmpty(cmd.Context())
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to seed library: %w", err)
	}
	if seeded {
		a.logger.Info("library seeded with sample article")
	}
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			logErrf("failed to close: %v\n", err)
		}
	}
	a.closers = nil
}

func (a *app) translator() *translate.Client {
	return translate.NewClient(a.cfg.TranslatorURL, a.cfg.Timeout, a.logger)
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	m := tui.NewModel(a.cfg, a.library, a.translator(), a.store, a.logger)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "translator-url", &translatorURL, fileCfg.Translator.URL)
	if err := applyDurationConfig(cmd, "timeout", &translatorTimeout, fileCfg.Translator.Timeout); err != nil {
		return model.Config{}, err
	}
	applyBoolConfig(cmd, "rich-punct", &richPunct, fileCfg.Practice.RichPunct)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-format", &logFormat, fileCfg.Log.Format)

	cfg := model.Config{
		TranslatorURL: translatorURL,
		Timeout:       translatorTimeout,
		RichPunct:     richPunct,
		LogLevel:      logLevel,
		LogFormat:     logFormat,
	}
	if err := validation.New().Validate(cfg); err != nil {
		return model.Config{}, fmt.Errorf("invalid config: %s", validation.Describe(err))
	}
	return cfg, nil
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

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *string) error {
	if value == nil {
		return nil
	}
	if cmd.Flags().Changed(name) {
		return nil
	}
	parsed, err := time.ParseDuration(*value)
	if err != nil {
		return fmt.Errorf("invalid %s in config: %w", name, err)
	}
	*target = parsed
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typelingo configuration
# Uncomment a value to enable it. CLI flags override config values.

[translator]
# url = %q   # Translation endpoint
# timeout = %q                                # Request timeout

[practice]
# rich-punct = false   # Accept quotes while typing

[log]
# level = %q    # debug, info, warn, error
# format = %q   # text or json
`,
		translate.DefaultURL,
		defaultTimeout.String(),
		defaultLogLevel,
		defaultLogFormat,
	)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
