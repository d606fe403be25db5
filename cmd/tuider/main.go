// Package main provides the CLI entrypoint for tuider.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuider/internal/config"
	"github.com/verte-zerg/tuider/internal/engine"
	"github.com/verte-zerg/tuider/internal/logging"
	"github.com/verte-zerg/tuider/internal/model"
	"github.com/verte-zerg/tuider/internal/stats"
	"github.com/verte-zerg/tuider/internal/statsui"
	"github.com/verte-zerg/tuider/internal/store"
	"github.com/verte-zerg/tuider/internal/text"
	"github.com/verte-zerg/tuider/internal/tui"
)

const (
	defaultWPM           = 250
	defaultOrientationMs = 1000
	defaultLogLevel      = "info"
	defaultTrendWindow   = 5
)

var (
	readWPM           int
	readORPColor      string
	readSpeedStep     int
	readJump          int
	readOrientationMs int
	readLogFile       string
	readLogLevel      string
	readNoHistory     bool

	historyLast   int
	historySource string
	historyWindow int
	historyTUI    bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuider [file]",
		Short:         "RSVP speed reader for the terminal",
		Long:          "Shows text one word at a time with the optimal recognition point highlighted.\n\n" + text.Usage,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runReadCmd,
	}

	rootCmd.Flags().IntVar(&readWPM, "wpm", defaultWPM, fmt.Sprintf("reading speed in words per minute (%d-%d)", engine.DefaultMinWPM, engine.DefaultMaxWPM))
	rootCmd.Flags().StringVar(&readORPColor, "orp-color", tui.DefaultORPColor, "highlight color ("+strings.Join(tui.ValidORPColors(), ", ")+")")
	rootCmd.Flags().IntVar(&readSpeedStep, "speed-step", tui.DefaultSpeedStep, "WPM change per speed key press")
	rootCmd.Flags().IntVar(&readJump, "jump", tui.DefaultJump, "words skipped by shift+arrow")
	rootCmd.Flags().IntVar(&readOrientationMs, "orientation-ms", defaultOrientationMs, "hold on the first word before playback starts")
	rootCmd.Flags().StringVar(&readLogFile, "log-file", config.DefaultLogPath(), "log file path (empty disables)")
	rootCmd.Flags().StringVar(&readLogLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&readNoHistory, "no-history", false, "do not record this session in the reading history")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runReadCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFileConfig(cmd, fileCfg.Reader)

	cfg := model.ReaderConfig{
		WPM:         readWPM,
		ORPColor:    readORPColor,
		SpeedStep:   readSpeedStep,
		Jump:        readJump,
		Orientation: time.Duration(readOrientationMs) * time.Millisecond,
	}
	if err := validateReaderConfig(cfg); err != nil {
		return err
	}
	level, err := logging.ParseLevel(readLogLevel)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}

	stdinIsTTY := term.IsTerminal(int(os.Stdin.Fd()))
	doc, err := text.Load(args, os.Stdin, stdinIsTTY)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Path: readLogFile, Level: level})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logger.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := tui.Run(ctx, doc.Words, tui.Options{
		Reader:     cfg,
		Source:     doc.Source,
		StdinIsTTY: stdinIsTTY,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	if !readNoHistory {
		saveHistory(logger, config.DefaultDBPath(), session)
	}
	return nil
}

// saveHistory records a session. Failures are logged and never fail the run.
func saveHistory(logger *logging.Logger, path string, session model.ReadingSession) {
	st, err := store.Open(path)
	if err != nil {
		logger.Warn("failed to open history db", "path", path, "err", err)
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("failed to close history db", "err", cerr)
		}
	}()

	id, err := st.InsertSession(context.Background(), session)
	if err != nil {
		logger.Warn("failed to save reading session", "err", err)
		return
	}
	logger.Debug("saved reading session", "id", id, "words_read", session.WordsRead)
}

func validateReaderConfig(cfg model.ReaderConfig) error {
	if cfg.WPM < engine.DefaultMinWPM || cfg.WPM > engine.DefaultMaxWPM {
		return fmt.Errorf("--wpm must be between %d and %d", engine.DefaultMinWPM, engine.DefaultMaxWPM)
	}
	if cfg.SpeedStep <= 0 {
		return fmt.Errorf("--speed-step must be > 0")
	}
	if cfg.Jump <= 0 {
		return fmt.Errorf("--jump must be > 0")
	}
	if cfg.Orientation < 0 {
		return fmt.Errorf("--orientation-ms must be >= 0")
	}
	if _, err := tui.ORPStyle(cfg.ORPColor); err != nil {
		return fmt.Errorf("--orp-color: %w", err)
	}
	return nil
}

func applyFileConfig(cmd *cobra.Command, rc config.ReaderConfig) {
	applyIntConfig(cmd, "wpm", &readWPM, rc.WPM)
	applyStringConfig(cmd, "orp-color", &readORPColor, rc.ORPColor)
	applyIntConfig(cmd, "speed-step", &readSpeedStep, rc.SpeedStep)
	applyIntConfig(cmd, "jump", &readJump, rc.Jump)
	applyIntConfig(cmd, "orientation-ms", &readOrientationMs, rc.OrientationMs)
	applyStringConfig(cmd, "log-file", &readLogFile, rc.LogFile)
	applyStringConfig(cmd, "log-level", &readLogLevel, rc.LogLevel)
	if rc.History != nil {
		noHistory := !*rc.History
		applyBoolConfig(cmd, "no-history", &readNoHistory, &noHistory)
	}
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
	if err := ensureConfigFile(path); err != nil {
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

// ensureConfigFile writes the default template unless the file exists.
func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show reading history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N sessions")
	cmd.Flags().StringVar(&historySource, "source", "", "source filter (file path or stdin)")
	cmd.Flags().IntVar(&historyWindow, "window", defaultTrendWindow, "moving average window for the WPM trend")
	cmd.Flags().BoolVar(&historyTUI, "tui", false, "browse the history interactively")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if historyWindow <= 0 {
		return fmt.Errorf("--window must be > 0")
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(cmd.Context(), st, model.HistoryConfig{
		Source: historySource,
		Last:   historyLast,
	})
	if err != nil {
		return err
	}
	if !historyTUI {
		return stats.RenderReport(cmd.OutOrStdout(), report, historyWindow)
	}
	program := tea.NewProgram(statsui.NewModel(report, historyWindow), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
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

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
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

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuider configuration
# Uncomment a value to enable it. CLI flags override config values.

[reader]
# wpm = %d                # Reading speed (%d-%d)
# orp-color = %q       # One of: %s
# speed-step = %d          # WPM change per speed key press
# jump = %d                # Words skipped by shift+arrow
# orientation-ms = %d    # Hold on the first word before playback
# log-file = %q
# log-level = %q       # debug, info, warn, error
# history = true          # Record sessions in the reading history
`,
		defaultWPM, engine.DefaultMinWPM, engine.DefaultMaxWPM,
		tui.DefaultORPColor, strings.Join(tui.ValidORPColors(), ", "),
		tui.DefaultSpeedStep,
		tui.DefaultJump,
		defaultOrientationMs,
		config.DefaultLogPath(),
		defaultLogLevel,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
