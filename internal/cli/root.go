// Package cli wires the daybook commands: the TUI by default, plus
// scriptable subcommands over the same store.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"daybook/internal/alert"
	"daybook/internal/app"
	"daybook/internal/auth"
	"daybook/internal/config"
	"daybook/internal/storage"
	"daybook/internal/ui"
)

// env is what every command runs against. It is filled in before the
// command runs and released by close.
type env struct {
	cfg      config.Config
	logger   *slog.Logger
	logFile  *os.File
	store    *storage.Store
	settings storage.Settings
	ctrl     *app.Controller
	auth     *auth.Service
}

func newRootCmd(e *env) *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "daybook",
		Short:         "Daily tasks, timers and focus lock in the terminal",
		Long:          "daybook keeps a todo list with daily tasks, due dates, countdown timers and an optional focus lock. Run without a subcommand to open the TUI.",
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load(cfgPath)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.Run(e.ctrl, ui.Options{
				Config:   e.cfg,
				Settings: e.settings,
				Saver:    e.store,
				Auth:     e.auth,
				Logger:   e.logger,
			})
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default $"+config.EnvConfig+" or the user config dir)")

	root.AddCommand(
		newAddCmd(e),
		newListCmd(e),
		newDoneCmd(e),
		newRmCmd(e),
		newMoveCmd(e),
		newWatchCmd(e),
		newLockCmd(e),
		newAuthCmd(e),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	e := &env{}
	defer e.close()
	err := newRootCmd(e).Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func (e *env) load(cfgPath string) error {
	if cfgPath == "" {
		cfgPath = config.ResolveConfigPath()
	}
	_, statErr := os.Stat(cfgPath)
	firstLaunch := errors.Is(statErr, os.ErrNotExist)
	cfg, err := config.LoadOrCreate(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	e.cfg = cfg

	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	e.logFile = f
	e.logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.Level()}))
	if firstLaunch {
		e.logger.Info("wrote default config", slog.String("path", cfgPath))
	}

	store, err := storage.Open(cfg.DBPath, e.logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	e.store = store

	tasks, err := store.LoadTasks()
	if err != nil {
		return err
	}
	if e.settings, err = store.LoadSettings(); err != nil {
		return err
	}
	enabled, hash, err := store.LoadFocusLock()
	if err != nil {
		return err
	}

	var beeper alert.Beeper = alert.Silent{}
	if cfg.Timers.Bell {
		beeper = alert.NewBell(os.Stderr)
	}
	e.ctrl = app.New(store, app.State{
		Tasks:        tasks,
		FocusEnabled: enabled,
		FocusHash:    hash,
		FreeTimer:    time.Duration(cfg.Timers.FreeMinutes)*time.Minute + time.Duration(cfg.Timers.FreeSeconds)*time.Second,
		Pomodoro:     cfg.Timers.Pomodoro,
	}, app.Options{Logger: e.logger, Beeper: beeper})
	if _, err := e.ctrl.ResetDaily(); err != nil {
		return err
	}

	if e.auth, err = auth.New(store, nil, e.logger); err != nil {
		return err
	}
	return nil
}

func (e *env) close() error {
	var errs []error
	if e.store != nil {
		errs = append(errs, e.store.Close())
		e.store = nil
	}
	if e.logFile != nil {
		errs = append(errs, e.logFile.Close())
		e.logFile = nil
	}
	return errors.Join(errs...)
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
