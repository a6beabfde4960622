// ABOUTME: Screens for the sign-in, forgot-password, and reset-password flows
// ABOUTME: Each pairs a submission controller with the fields it renders

package authform

import (
	"github.com/Ratatouille99337/CryptoQA/internal/form"
	"github.com/Ratatouille99337/CryptoQA/internal/submit"
	"github.com/Ratatouille99337/CryptoQA/internal/tui/icons"
)

var signInFields = []Field{
	{Name: "email", Title: "Email", Placeholder: "you@example.com"},
	{Name: "password", Title: "Password", Secret: true},
	{Name: "remember", Title: "Remember me", Description: "Keep the session after cryptoqa exits", Toggle: true},
}

var forgotFields = []Field{
	{Name: "email", Title: "Email", Description: "A reset code will be sent to this address", Placeholder: "you@example.com"},
}

var resetFields = []Field{
	{Name: "token", Title: "Reset code", Placeholder: "e.g., 3FA9C2D1"},
	{Name: "password", Title: "New password", Secret: true},
	{Name: "passwordConfirm", Title: "Confirm password", Secret: true},
}

// SignIn creates the sign-in screen
func SignIn(api submit.AuthAPI, sessions submit.SessionWriter) *Screen[form.SignInInput] {
	return New(submit.NewSignIn(api, sessions, nil),
		icons.Lock.String()+" Sign in", "Use the email and password of your CryptoQ&A account", signInFields)
}

// ForgotPassword creates the reset-code request screen
func ForgotPassword(api submit.AuthAPI) *Screen[form.ForgotPasswordInput] {
	return New(submit.NewForgotPassword(api, nil),
		"Forgot password?", "Fill the form to receive a reset code", forgotFields)
}

// ResetPassword creates the screen that completes a reset
func ResetPassword(api submit.AuthAPI) *Screen[form.ResetPasswordInput] {
	return New(submit.NewResetPassword(api, nil),
		icons.Key.String()+" Reset password", "Enter the code you received and a new password", resetFields)
}
