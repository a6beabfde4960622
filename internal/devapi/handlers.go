// ABOUTME: HTTP handlers for the dev Auth API endpoints
// ABOUTME: Validates with the credential schemas and answers field errors as [{type, message}]

package devapi

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Ratatouille99337/CryptoQA/internal/client"
	"github.com/Ratatouille99337/CryptoQA/internal/form"
	"github.com/Ratatouille99337/CryptoQA/internal/session"
)

const (
	msgEmailInUse      = "Email already in use"
	msgBadCredentials  = "Invalid email or password"
	msgBadResetCode    = "This reset code is invalid or has expired"
	msgResetCodeIssued = "If an account exists for that email, a reset code has been sent."
	msgPasswordUpdated = "Your password has been updated. You can sign in now."
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeFieldErrors(w http.ResponseWriter, status int, errs ...client.FieldError) {
	writeJSON(w, status, errs)
}

func writeValidation(w http.ResponseWriter, res form.Result) {
	errs := make([]client.FieldError, 0, len(res))
	for _, field := range res.Fields() {
		errs = append(errs, client.FieldError{Type: field, Message: res[field]})
	}
	writeFieldErrors(w, http.StatusUnprocessableEntity, errs...)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

func (s *Server) writeSession(w http.ResponseWriter, status int, acct *account) {
	token, err := s.issueToken(acct)
	if err != nil {
		slog.Error("Failed to issue token", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, status, session.Data{
		Role:        acct.Role,
		AccessToken: token,
		User: session.User{
			ID:          acct.ID,
			Email:       acct.Email,
			DisplayName: acct.DisplayName,
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req client.SignInRequest
	if !decode(w, r, &req) {
		return
	}
	if res := form.Validate(form.SignInInput{Email: req.Email, Password: req.Password}); !res.Valid() {
		writeValidation(w, res)
		return
	}

	acct, err := s.accounts.authenticate(req.Email, req.Password)
	if err != nil {
		slog.Info("Sign-in refused", "email", req.Email)
		writeFieldErrors(w, http.StatusUnauthorized, client.FieldError{Type: "password", Message: msgBadCredentials})
		return
	}
	s.writeSession(w, http.StatusOK, acct)
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req client.SignUpRequest
	if !decode(w, r, &req) {
		return
	}
	// Confirmation and terms are checked by the form before sending
	in := form.SignUpInput{
		Domain:                req.Domain,
		Name:                  req.Name,
		Email:                 req.Email,
		Phone:                 req.Phone,
		Password:              req.Password,
		PasswordConfirm:       req.Password,
		AcceptTermsConditions: true,
	}
	if res := form.Validate(in); !res.Valid() {
		writeValidation(w, res)
		return
	}

	acct, err := s.accounts.create(account{
		Email:       req.Email,
		DisplayName: req.Name,
		Domain:      req.Domain,
		Phone:       req.Phone,
		Role:        "user",
	}, req.Password)
	if errors.Is(err, errEmailTaken) {
		writeFieldErrors(w, http.StatusConflict, client.FieldError{Type: "email", Message: msgEmailInUse})
		return
	}
	if err != nil {
		slog.Error("Failed to create account", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	slog.Info("Account created", "email", acct.Email)
	s.writeSession(w, http.StatusCreated, acct)
}

func (s *Server) handleGoogle(w http.ResponseWriter, r *http.Request) {
	var req client.GoogleLoginRequest
	if !decode(w, r, &req) {
		return
	}
	if res := form.Validate(form.ForgotPasswordInput{Email: req.Email}); !res.Valid() {
		writeValidation(w, res)
		return
	}

	acct, ok := s.accounts.lookup(req.Email)
	if !ok {
		// First Google sign-in creates the account with an unusable password
		created, err := s.accounts.create(account{
			Email:       req.Email,
			DisplayName: strings.SplitN(req.Email, "@", 2)[0],
			Role:        "user",
		}, randomCode(32))
		if errors.Is(err, errEmailTaken) {
			created, ok = s.accounts.lookup(req.Email)
		}
		if err != nil && !ok {
			slog.Error("Failed to create Google account", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		acct = created
		slog.Info("Signed in with Google", "email", acct.Email)
	}
	s.writeSession(w, http.StatusOK, acct)
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req client.ForgotPasswordRequest
	if !decode(w, r, &req) {
		return
	}
	if res := form.Validate(form.ForgotPasswordInput{Email: req.Email}); !res.Valid() {
		writeValidation(w, res)
		return
	}

	if acct, ok := s.accounts.lookup(req.Email); ok {
		code := randomCode(4)
		s.resets.Set(code, acct.Email)
		s.opts.DeliverResetCode(acct.Email, code)
	} else {
		slog.Debug("Password reset requested for unknown email", "email", req.Email)
	}
	writeJSON(w, http.StatusOK, client.MessageResponse{Message: msgResetCodeIssued})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req client.ResetPasswordRequest
	if !decode(w, r, &req) {
		return
	}
	in := form.ResetPasswordInput{Token: req.Token, Password: req.Password, PasswordConfirm: req.Password}
	if res := form.Validate(in); !res.Valid() {
		writeValidation(w, res)
		return
	}

	email, ok := s.resets.Take(strings.ToUpper(strings.TrimSpace(req.Token)))
	if !ok {
		writeFieldErrors(w, http.StatusBadRequest, client.FieldError{Type: "token", Message: msgBadResetCode})
		return
	}
	if err := s.accounts.setPassword(email, req.Password); err != nil {
		slog.Error("Failed to reset password", "email", email, "error", err)
		writeFieldErrors(w, http.StatusBadRequest, client.FieldError{Type: "token", Message: msgBadResetCode})
		return
	}
	slog.Info("Password reset", "email", email)
	writeJSON(w, http.StatusOK, client.MessageResponse{Message: msgPasswordUpdated})
}

// randomCode returns n random bytes as upper-case hex
func randomCode(n int) string {
	b := make([]byte, n)
	rand.Read(b)
	return strings.ToUpper(hex.EncodeToString(b))
}
