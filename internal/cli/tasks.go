package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"daybook/internal/task"
	"daybook/internal/timer"
)

// shortID is how ids are printed; any unique prefix is accepted back.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func newAddCmd(e *env) *cobra.Command {
	var (
		daily    bool
		due      string
		color    string
		timerArg string
	)
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := task.ParseColor(color)
			if err != nil {
				return err
			}
			d, err := task.ParseTimer(timerArg)
			if err != nil {
				return err
			}
			t, err := e.ctrl.Add(task.Draft{
				Text:      strings.Join(args, " "),
				Recurring: daily,
				DueDate:   due,
				Color:     c,
				Timer:     d,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "added %s %s\n", shortID(t.ID), t.Text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&daily, "daily", false, "repeat every day")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD), ignored for daily tasks")
	cmd.Flags().StringVar(&color, "color", "", "one of red, orange, yellow, green, blue, indigo, purple")
	cmd.Flags().StringVar(&timerArg, "timer", "", "none, minutes, or MM:SS")
	return cmd
}

func newListCmd(e *env) *cobra.Command {
	var filter, sortMode string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filter == "" {
				filter = e.cfg.DefaultFilter
			}
			mode := e.settings.NormalSort
			if sortMode != "" {
				m, ok := task.ParseSortMode(sortMode)
				if !ok {
					return fmt.Errorf("unknown sort %q, want created or due", sortMode)
				}
				mode = m
			}
			tasks := append(e.ctrl.Recurring(), e.ctrl.OneOff(mode)...)

			tbl := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "", "TASK", "KIND", "DUE", "TIMER", "DONE")
			n := 0
			for _, t := range tasks {
				if !keep(filter, t) {
					continue
				}
				n++
				tbl.Row(shortID(t.ID), checkbox(t), t.Text, kindLabel(t), t.DueDate, timerLabel(t), countLabel(t))
			}
			if n == 0 {
				fmt.Fprintln(out(cmd), "no tasks")
				return nil
			}
			fmt.Fprintln(out(cmd), tbl.String())
			for _, t := range e.ctrl.Overdue() {
				fmt.Fprintf(out(cmd), "overdue: %s %s (due %s)\n", shortID(t.ID), t.Text, t.DueDate)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "all, pending or done")
	cmd.Flags().StringVar(&sortMode, "sort", "", "created or due (default: the saved setting)")
	return cmd
}

func keep(filter string, t task.Task) bool {
	switch strings.ToLower(filter) {
	case "pending":
		return !t.Completed
	case "done":
		return t.Completed
	}
	return true
}

func checkbox(t task.Task) string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}

func kindLabel(t task.Task) string {
	if t.IsDaily {
		return "daily #" + strconv.Itoa(t.Order)
	}
	return t.Kind().String()
}

func timerLabel(t task.Task) string {
	if !t.HasTimer() {
		return ""
	}
	return timer.FormatClock(int(t.Timer().Seconds()))
}

func countLabel(t task.Task) string {
	if t.CompletedCount == 0 {
		return ""
	}
	return strconv.Itoa(t.CompletedCount)
}

func newDoneCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := e.ctrl.Resolve(args[0])
			if err != nil {
				return err
			}
			if err := e.ctrl.Toggle(id); err != nil {
				return err
			}
			t, _ := e.ctrl.Get(id)
			fmt.Fprintf(out(cmd), "%s %s %s\n", checkbox(t), shortID(t.ID), t.Text)
			return nil
		},
	}
}

func newRmCmd(e *env) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := e.ctrl.Resolve(args[0])
			if err != nil {
				return err
			}
			if err := e.ctrl.Delete(id, password); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "deleted %s\n", shortID(id))
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "focus-lock password, for daily tasks finished by their timer")
	return cmd
}

func newMoveCmd(e *env) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "move <id> <position>",
		Short: "Move a daily task to a 1-based position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := e.ctrl.Resolve(args[0])
			if err != nil {
				return err
			}
			pos, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("position must be a number: %w", err)
			}
			if err := e.ctrl.Reorder(id, pos, password); err != nil {
				return err
			}
			t, _ := e.ctrl.Get(id)
			fmt.Fprintf(out(cmd), "moved %s to #%d\n", shortID(id), t.Order)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "focus-lock password, required while the lock is on")
	return cmd
}
