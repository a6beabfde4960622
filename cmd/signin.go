// ABOUTME: Sign-in command for the cryptoqa CLI
// ABOUTME: Validates credentials, submits them, and stores the session

package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/Ratatouille99337/CryptoQA/internal/form"
	"github.com/Ratatouille99337/CryptoQA/internal/submit"
)

var signInFlags struct {
	email      string
	password   string
	noRemember bool
}

var signInCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in with email and password",
	Long: `Sign in to CryptoQ&A. The session is stored so later commands and the TUI
see it. With --no-remember the session is only used by this invocation.`,
	Run: func(cmd *cobra.Command, args []string) {
		in := form.DefaultSignIn()
		in.Email = signInFlags.email
		in.Password = signInFlags.password
		in.Remember = !signInFlags.noRemember

		runWithDeps(func(ctx context.Context, w io.Writer, d *deps) int {
			return runSignIn(ctx, w, d, in)
		})
	},
}

func init() {
	signInCmd.Flags().StringVar(&signInFlags.email, "email", "", "Account email")
	signInCmd.Flags().StringVar(&signInFlags.password, "password", "", "Account password")
	signInCmd.Flags().BoolVar(&signInFlags.noRemember, "no-remember", false, "Do not keep the session after this command")
	rootCmd.AddCommand(signInCmd)
}

// runSignIn submits the sign-in form and returns exit code
func runSignIn(ctx context.Context, w io.Writer, d *deps, in form.SignInInput) int {
	ctrl := submit.NewSignIn(d.api, d.sessions, nil)
	ctrl.Form().Set(in)
	return printOutcome(w, ctrl.Submit(ctx))
}
