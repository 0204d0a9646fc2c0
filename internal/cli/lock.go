package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLockCmd(e *env) *cobra.Command {
	var password, next string

	lockCmd := &cobra.Command{
		Use:   "lock",
		Short: "Manage focus lock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fl := e.ctrl.FocusLock()
			state := "off"
			if fl.Enabled() {
				state = "on"
			}
			fmt.Fprintf(out(cmd), "focus lock %s (password set: %t)\n", state, fl.HasPassword())
			return nil
		},
	}

	on := &cobra.Command{
		Use:   "on",
		Short: "Turn focus lock on; the first time sets its password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.ctrl.EnableFocusLock(password); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "focus lock on")
			return nil
		},
	}
	off := &cobra.Command{
		Use:   "off",
		Short: "Turn focus lock off",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.ctrl.DisableFocusLock(password); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "focus lock off")
			return nil
		},
	}
	passwd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the focus-lock password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.ctrl.ChangeFocusPassword(password, next); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "focus-lock password changed")
			return nil
		},
	}

	lockCmd.PersistentFlags().StringVar(&password, "password", "", "focus-lock password")
	passwd.Flags().StringVar(&next, "new-password", "", "new focus-lock password")
	lockCmd.AddCommand(on, off, passwd)
	return lockCmd
}
