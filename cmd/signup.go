// ABOUTME: Sign-up command for the cryptoqa CLI
// ABOUTME: Registers an account and stores the returned session

package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/Ratatouille99337/CryptoQA/internal/form"
	"github.com/Ratatouille99337/CryptoQA/internal/submit"
)

var signUpInput form.SignUpInput

var signUpCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	Run: func(cmd *cobra.Command, args []string) {
		in := signUpInput
		runWithDeps(func(ctx context.Context, w io.Writer, d *deps) int {
			return runSignUp(ctx, w, d, in)
		})
	},
}

func init() {
	f := signUpCmd.Flags()
	f.StringVar(&signUpInput.Domain, "domain", "", "Domain name")
	f.StringVar(&signUpInput.Name, "name", "", "Display name")
	f.StringVar(&signUpInput.Email, "email", "", "Account email")
	f.StringVar(&signUpInput.Phone, "phone", "", "Phone number")
	f.StringVar(&signUpInput.Official, "official", "", "Official title (optional)")
	f.StringVar(&signUpInput.Birthday, "birthday", "", "Birthday, YYYY-MM-DD (optional)")
	f.StringVar(&signUpInput.Password, "password", "", "Password, at least 8 characters")
	f.StringVar(&signUpInput.PasswordConfirm, "password-confirm", "", "Password again")
	f.BoolVar(&signUpInput.AcceptTermsConditions, "accept-terms", false, "Accept the terms and conditions")
	rootCmd.AddCommand(signUpCmd)
}

// runSignUp submits the registration form and returns exit code
func runSignUp(ctx context.Context, w io.Writer, d *deps, in form.SignUpInput) int {
	ctrl := submit.NewSignUp(d.api, d.sessions, nil)
	ctrl.Form().Set(in)
	return printOutcome(w, ctrl.Submit(ctx))
}
