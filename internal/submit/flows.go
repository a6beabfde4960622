// ABOUTME: Controllers for each credential flow wired to the Auth API
// ABOUTME: Maps form inputs to request payloads, stripping client-only fields

package submit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Ratatouille99337/CryptoQA/internal/client"
	"github.com/Ratatouille99337/CryptoQA/internal/form"
	"github.com/Ratatouille99337/CryptoQA/internal/navigation"
	"github.com/Ratatouille99337/CryptoQA/internal/session"
)

// AuthAPI is the subset of the Auth API client the flows use
type AuthAPI interface {
	SignIn(ctx context.Context, req client.SignInRequest) (*session.Data, error)
	SignUp(ctx context.Context, req client.SignUpRequest) (*session.Data, error)
	GoogleLogin(ctx context.Context, req client.GoogleLoginRequest) (*session.Data, error)
	ForgotPassword(ctx context.Context, req client.ForgotPasswordRequest) (*client.MessageResponse, error)
	ResetPassword(ctx context.Context, req client.ResetPasswordRequest) (*client.MessageResponse, error)
}

// NewSignIn creates the sign-in controller. Success goes to the dashboard.
func NewSignIn(api AuthAPI, sessions SessionWriter, nav Navigator) *Controller[form.SignInInput] {
	send := func(ctx context.Context, in form.SignInInput) (*Response, error) {
		data, err := api.SignIn(ctx, client.SignInRequest{Email: in.Email, Password: in.Password})
		if err != nil {
			return nil, err
		}
		return &Response{Session: data, Remember: in.Remember}, nil
	}
	return New(form.New(form.DefaultSignIn()), send, Hooks{
		Sessions:     sessions,
		Navigator:    nav,
		SuccessRoute: navigation.DashboardURL,
	})
}

// NewSignUp creates the registration controller. Success goes to the dashboard.
func NewSignUp(api AuthAPI, sessions SessionWriter, nav Navigator) *Controller[form.SignUpInput] {
	send := func(ctx context.Context, in form.SignUpInput) (*Response, error) {
		data, err := api.SignUp(ctx, client.SignUpRequest{
			Domain:   in.Domain,
			Name:     in.Name,
			Email:    in.Email,
			Phone:    in.Phone,
			Password: in.Password,
		})
		if err != nil {
			return nil, err
		}
		return &Response{Session: data, Remember: true}, nil
	}
	return New(form.New(form.SignUpInput{}), send, Hooks{
		Sessions:     sessions,
		Navigator:    nav,
		SuccessRoute: navigation.DashboardURL,
	})
}

// NewForgotPassword creates the reset-code request controller. It never
// yields a session; success goes to the sign-in page.
func NewForgotPassword(api AuthAPI, nav Navigator) *Controller[form.ForgotPasswordInput] {
	send := func(ctx context.Context, in form.ForgotPasswordInput) (*Response, error) {
		resp, err := api.ForgotPassword(ctx, client.ForgotPasswordRequest{Email: in.Email})
		if err != nil {
			return nil, err
		}
		return &Response{Message: resp.Message}, nil
	}
	return New(form.New(form.ForgotPasswordInput{}), send, Hooks{
		Navigator:    nav,
		SuccessRoute: navigation.SignInURL,
	})
}

// NewResetPassword creates the controller that completes a reset
func NewResetPassword(api AuthAPI, nav Navigator) *Controller[form.ResetPasswordInput] {
	send := func(ctx context.Context, in form.ResetPasswordInput) (*Response, error) {
		resp, err := api.ResetPassword(ctx, client.ResetPasswordRequest{Token: in.Token, Password: in.Password})
		if err != nil {
			return nil, err
		}
		return &Response{Message: resp.Message}, nil
	}
	return New(form.New(form.ResetPasswordInput{}), send, Hooks{
		Navigator:    nav,
		SuccessRoute: navigation.SignInURL,
	})
}

// EmailVerifier extracts the account email from a Google ID token
type EmailVerifier interface {
	Email(ctx context.Context, idToken string) (string, error)
}

// ErrMissingIDToken is returned when Google login is attempted without a token
var ErrMissingIDToken = errors.New("google ID token is required")

// GoogleLogin exchanges a Google ID token for a session. There is no form,
// so failures are logged and returned as an outcome without field errors.
func GoogleLogin(ctx context.Context, api AuthAPI, verifier EmailVerifier, hooks Hooks, idToken string) Outcome {
	if idToken == "" {
		return Outcome{Kind: KindInvalid, Errors: form.Result{"idToken": ErrMissingIDToken.Error()}, Err: ErrMissingIDToken}
	}

	email, err := verifier.Email(ctx, idToken)
	if err != nil {
		slog.Error("Google token rejected", "error", err)
		return Outcome{Kind: KindRejected, Notice: GenericFailureNotice, Err: fmt.Errorf("verify google token: %w", err)}
	}

	data, err := api.GoogleLogin(ctx, client.GoogleLoginRequest{Email: email})
	if err != nil {
		slog.Error("Google login failed", "email", email, "error", err)
		var rejected Rejection
		if errors.As(err, &rejected) {
			return Outcome{Kind: KindRejected, ServerErrors: rejected.FieldErrors(), Err: err}
		}
		return Outcome{Kind: KindTransportFailure, Notice: GenericFailureNotice, Err: err}
	}

	if hooks.Sessions != nil {
		if err := hooks.Sessions.Save(ctx, data); err != nil {
			slog.Error("Failed to persist Google session", "error", err)
			return Outcome{Kind: KindTransportFailure, Notice: GenericFailureNotice, Err: err}
		}
	}
	route := hooks.SuccessRoute
	if route == "" {
		route = navigation.DashboardURL
	}
	if hooks.Navigator != nil {
		hooks.Navigator.Navigate(route)
	}
	slog.Info("Google login succeeded", "email", email)
	return Outcome{Kind: KindSucceeded, Session: data, Route: route}
}
