package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"daybook/internal/app"
)

func newWatchCmd(e *env) *cobra.Command {
	var (
		every time.Duration
		once  bool
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the daily reset and overdue checks without the TUI",
		Long:  "watch runs the daily reset and the overdue scan on a fixed interval and prints what changes. It stops on SIGINT or SIGTERM.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if once {
				return watchPass(e, out(cmd), nil)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watch(ctx, e, every, out(cmd))
		},
	}
	cmd.Flags().DurationVar(&every, "every", app.DailyResetInterval, "how often to check")
	cmd.Flags().BoolVar(&once, "once", false, "check once and exit")
	return cmd
}

// watch drives the monitors from one goroutine until ctx is done.
func watch(ctx context.Context, e *env, every time.Duration, w io.Writer) error {
	if every <= 0 {
		every = app.DailyResetInterval
	}
	e.logger.Info("watch started", slog.Duration("every", every))
	var last []string
	if err := watchPass(e, w, &last); err != nil {
		return err
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			e.logger.Info("watch stopped")
			return nil
		case <-ticker.C:
			if err := watchPass(e, w, &last); err != nil {
				e.logger.Error("watch pass", slog.String("error", err.Error()))
			}
		}
	}
}

// watchPass runs one reset and one overdue scan. The overdue list is only
// printed when it differs from *last.
func watchPass(e *env, w io.Writer, last *[]string) error {
	n, err := e.ctrl.ResetDaily()
	if err != nil {
		return err
	}
	if n > 0 {
		fmt.Fprintf(w, "reset %d daily task(s)\n", n)
	}

	overdue := e.ctrl.ScanOverdue()
	ids := make([]string, 0, len(overdue))
	for _, t := range overdue {
		ids = append(ids, t.ID)
	}
	if last != nil {
		if slices.Equal(ids, *last) {
			return nil
		}
		*last = ids
	}
	for _, t := range overdue {
		fmt.Fprintf(w, "overdue: %s %s (due %s)\n", shortID(t.ID), t.Text, t.DueDate)
	}
	return nil
}
