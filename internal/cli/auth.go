package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuthCmd(e *env) *cobra.Command {
	var password string

	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Local account sign-in",
	}
	signup := &cobra.Command{
		Use:   "signup <email>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := e.auth.SignUp(args[0], password)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "signed up as %s\n", id.Email)
			return nil
		},
	}
	signin := &cobra.Command{
		Use:   "signin <email>",
		Short: "Sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := e.auth.SignIn(args[0], password)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "signed in as %s\n", id.Email)
			return nil
		},
	}
	signout := &cobra.Command{
		Use:   "signout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.auth.SignOut(); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "signed out")
			return nil
		},
	}
	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Show who is signed in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := e.auth.Current()
			if !id.SignedIn() {
				fmt.Fprintln(out(cmd), "signed out")
				return nil
			}
			fmt.Fprintln(out(cmd), id.Email)
			return nil
		},
	}

	for _, c := range []*cobra.Command{signup, signin} {
		c.Flags().StringVar(&password, "password", "", "account password")
	}
	authCmd.AddCommand(signup, signin, signout, whoami)
	return authCmd
}
