// ABOUTME: Password recovery commands for the cryptoqa CLI
// ABOUTME: Requests a reset code and completes the reset with it

package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/Ratatouille99337/CryptoQA/internal/form"
	"github.com/Ratatouille99337/CryptoQA/internal/submit"
)

var (
	forgotInput form.ForgotPasswordInput
	resetInput  form.ResetPasswordInput
)

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Request a password reset code",
	Long: `Request a password reset code. The code is delivered out of band and is
then used with 'cryptoqa reset-password'.`,
	Run: func(cmd *cobra.Command, args []string) {
		in := forgotInput
		runWithDeps(func(ctx context.Context, w io.Writer, d *deps) int {
			return runForgotPassword(ctx, w, d, in)
		})
	},
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Set a new password using a reset code",
	Run: func(cmd *cobra.Command, args []string) {
		in := resetInput
		runWithDeps(func(ctx context.Context, w io.Writer, d *deps) int {
			return runResetPassword(ctx, w, d, in)
		})
	},
}

func init() {
	forgotPasswordCmd.Flags().StringVar(&forgotInput.Email, "email", "", "Account email")

	f := resetPasswordCmd.Flags()
	f.StringVar(&resetInput.Token, "token", "", "Reset code")
	f.StringVar(&resetInput.Password, "password", "", "New password, at least 8 characters")
	f.StringVar(&resetInput.PasswordConfirm, "password-confirm", "", "New password again")

	rootCmd.AddCommand(forgotPasswordCmd, resetPasswordCmd)
}

// runForgotPassword requests a reset code and returns exit code
func runForgotPassword(ctx context.Context, w io.Writer, d *deps, in form.ForgotPasswordInput) int {
	ctrl := submit.NewForgotPassword(d.api, nil)
	ctrl.Form().Set(in)
	return printOutcome(w, ctrl.Submit(ctx))
}

// runResetPassword completes a reset and returns exit code
func runResetPassword(ctx context.Context, w io.Writer, d *deps, in form.ResetPasswordInput) int {
	ctrl := submit.NewResetPassword(d.api, nil)
	ctrl.Form().Set(in)
	return printOutcome(w, ctrl.Submit(ctx))
}
