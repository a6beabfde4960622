// ABOUTME: Tests for credential form screens
// ABOUTME: Drives submissions through fake Auth API responses and checks the rendered result

package authform

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Ratatouille99337/CryptoQA/internal/client"
	"github.com/Ratatouille99337/CryptoQA/internal/form"
	"github.com/Ratatouille99337/CryptoQA/internal/session"
	"github.com/Ratatouille99337/CryptoQA/internal/submit"
	"github.com/Ratatouille99337/CryptoQA/internal/tui/icons"
)

type fakeAPI struct {
	signInErr error
	resetErr  error
	signIns   int
	lastReset client.ResetPasswordRequest
}

func (f *fakeAPI) SignIn(_ context.Context, req client.SignInRequest) (*session.Data, error) {
	f.signIns++
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return &session.Data{Role: "admin", User: session.User{ID: "1", Email: req.Email}}, nil
}

func (f *fakeAPI) SignUp(context.Context, client.SignUpRequest) (*session.Data, error) {
	return nil, errors.New("not used")
}

func (f *fakeAPI) GoogleLogin(context.Context, client.GoogleLoginRequest) (*session.Data, error) {
	return nil, errors.New("not used")
}

func (f *fakeAPI) ForgotPassword(context.Context, client.ForgotPasswordRequest) (*client.MessageResponse, error) {
	return &client.MessageResponse{Message: "Check your inbox"}, nil
}

func (f *fakeAPI) ResetPassword(_ context.Context, req client.ResetPasswordRequest) (*client.MessageResponse, error) {
	f.lastReset = req
	if f.resetErr != nil {
		return nil, f.resetErr
	}
	return &client.MessageResponse{Message: "Password updated"}, nil
}

func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

func TestBind_SeedsFromDefaults(t *testing.T) {
	f := form.New(form.DefaultSignIn())
	b := Bind(f, signInFields)

	if !b.Flag("remember") {
		t.Error("expected remember to start checked")
	}
	if b.Text("email") != "" {
		t.Errorf("expected empty email, got %q", b.Text("email"))
	}
}

func TestSync_WritesBoundValues(t *testing.T) {
	f := form.New(form.DefaultSignIn())
	b := Bind(f, signInFields)
	b.SetText("email", "ada@acme.io")
	b.SetText("password", "secret")
	b.SetFlag("remember", false)

	if err := Sync(f, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := f.Values()
	if got.Email != "ada@acme.io" || got.Password != "secret" || got.Remember {
		t.Errorf("unexpected values: %+v", got)
	}
	if !f.Valid() {
		t.Errorf("expected valid form, errors: %v", f.Errors())
	}
}

func TestCheck_ReportsCurrentFieldError(t *testing.T) {
	f := form.New(form.DefaultSignIn())

	err := check(f, "email", "not-an-email")
	if err == nil || err.Error() != "You must enter a valid email" {
		t.Errorf("expected shape error, got %v", err)
	}
	if err := check(f, "email", "ada@acme.io"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestSignInScreen_Success(t *testing.T) {
	api := &fakeAPI{}
	sessions := session.NewProvider(session.NewMemoryStore())
	s := SignIn(api, sessions)
	s.values.SetText("email", "admin@fusetheme.com")
	s.values.SetText("password", "admin")

	cmd := s.submit()
	if !s.Submitting() {
		t.Fatal("expected screen to be submitting")
	}
	if !strings.Contains(s.View(), SubmittingText) {
		t.Error("expected submitting text in view")
	}

	_, next := s.Update(run(t, cmd))
	done, ok := run(t, next).(DoneMsg)
	if !ok {
		t.Fatalf("expected DoneMsg")
	}
	if done.Flow != form.FlowSignIn {
		t.Errorf("expected sign-in flow, got %s", done.Flow)
	}
	if done.Outcome.Route != "/wbt-dashboard" {
		t.Errorf("expected dashboard route, got %q", done.Outcome.Route)
	}

	state, err := sessions.Load(context.Background())
	if err != nil || state == nil {
		t.Fatalf("expected stored session, got %v, %v", state, err)
	}
}

func TestSignInScreen_IgnoresKeysWhileSubmitting(t *testing.T) {
	s := SignIn(&fakeAPI{}, session.NewProvider(session.NewMemoryStore()))
	s.values.SetText("email", "admin@fusetheme.com")
	s.values.SetText("password", "admin")
	s.submit()

	if cmd := s.submit(); cmd != nil {
		t.Error("expected second submit to be ignored")
	}
	if _, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEsc}); cmd != nil {
		t.Error("expected esc to be ignored while submitting")
	}
}

func TestSignInScreen_RejectionReopensWithErrors(t *testing.T) {
	api := &fakeAPI{signInErr: &client.RejectedError{
		Status: 401,
		Errors: []client.FieldError{{Type: "password", Message: "Invalid email or password"}},
	}}
	s := SignIn(api, session.NewProvider(session.NewMemoryStore()))
	s.values.SetText("email", "admin@fusetheme.com")
	s.values.SetText("password", "wrong")

	cmd := s.submit()
	_, next := s.Update(run(t, cmd))
	if next == nil {
		t.Fatal("expected form init command")
	}
	if s.Submitting() {
		t.Error("expected submitting to end")
	}

	view := s.View()
	if !strings.Contains(view, "Invalid email or password") {
		t.Errorf("expected server error in view, got %q", view)
	}
	if s.values.Text("email") != "admin@fusetheme.com" {
		t.Errorf("expected previous email to be kept, got %q", s.values.Text("email"))
	}
}

func TestSignInScreen_ResubmitAfterRejectionWithoutEditing(t *testing.T) {
	api := &fakeAPI{signInErr: &client.RejectedError{
		Status: 401,
		Errors: []client.FieldError{{Type: "password", Message: "Invalid email or password"}},
	}}
	s := SignIn(api, session.NewProvider(session.NewMemoryStore()))
	s.values.SetText("email", "admin@fusetheme.com")
	s.values.SetText("password", "admin")

	_, _ = s.Update(run(t, s.submit()))
	if s.ctrl.Form().Error("password") != "Invalid email or password" {
		t.Fatalf("expected server error on password, got %q", s.ctrl.Form().Error("password"))
	}

	// Leaving the untouched password field must not be blocked
	if err := check(s.ctrl.Form(), "password", "admin"); err != nil {
		t.Errorf("expected unchanged password to pass field validation, got %v", err)
	}
	if !strings.Contains(s.View(), "Invalid email or password") {
		t.Error("expected server error to stay listed under the form")
	}

	api.signInErr = nil
	_, next := s.Update(run(t, s.submit()))
	if _, ok := run(t, next).(DoneMsg); !ok {
		t.Fatal("expected resubmission to succeed")
	}
	if api.signIns != 2 {
		t.Errorf("expected 2 requests, got %d", api.signIns)
	}
}

func TestSignInScreen_TransportFailureShowsNotice(t *testing.T) {
	api := &fakeAPI{signInErr: &client.TransportError{Op: "signin", Err: errors.New("connection refused")}}
	s := SignIn(api, session.NewProvider(session.NewMemoryStore()))
	s.values.SetText("email", "admin@fusetheme.com")
	s.values.SetText("password", "admin")

	_, _ = s.Update(run(t, s.submit()))

	if !strings.Contains(s.View(), submit.GenericFailureNotice) {
		t.Errorf("expected generic notice in view")
	}
}

func TestSignInScreen_InvalidMakesNoRequest(t *testing.T) {
	api := &fakeAPI{}
	s := SignIn(api, session.NewProvider(session.NewMemoryStore()))
	s.values.SetText("email", "bad")

	_, _ = s.Update(run(t, s.submit()))

	if api.signIns != 0 {
		t.Errorf("expected no request, got %d", api.signIns)
	}
	if !strings.Contains(s.View(), "You must enter a valid email") {
		t.Error("expected validation message in view")
	}
}

func TestResetPasswordScreen_SendsToken(t *testing.T) {
	api := &fakeAPI{}
	s := ResetPassword(api)
	s.values.SetText("token", "ABCD1234")
	s.values.SetText("password", "new-password")
	s.values.SetText("passwordConfirm", "new-password")

	_, next := s.Update(run(t, s.submit()))
	done, ok := run(t, next).(DoneMsg)
	if !ok {
		t.Fatal("expected DoneMsg")
	}
	if done.Outcome.Route != "/sign-in" {
		t.Errorf("expected sign-in route, got %q", done.Outcome.Route)
	}
	if api.lastReset.Token != "ABCD1234" || api.lastReset.Password != "new-password" {
		t.Errorf("unexpected reset payload: %+v", api.lastReset)
	}
}

func TestScreenTitlesCarryIcons(t *testing.T) {
	if got := SignIn(&fakeAPI{}, nil).title; got != icons.Lock.String()+" Sign in" {
		t.Errorf("expected lock icon in sign-in title, got %q", got)
	}
	if got := ResetPassword(&fakeAPI{}).title; got != icons.Key.String()+" Reset password" {
		t.Errorf("expected key icon in reset title, got %q", got)
	}
}

func TestScreen_EscCancels(t *testing.T) {
	s := ForgotPassword(&fakeAPI{})
	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := run(t, cmd).(CancelledMsg); !ok {
		t.Error("expected CancelledMsg")
	}
}

func TestRenderErrors(t *testing.T) {
	if got := RenderErrors(form.Result{}, ""); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}

	got := RenderErrors(form.Result{"email": "Email already in use"}, "Something went wrong. Please try again.")
	if !strings.Contains(got, "email:") || !strings.Contains(got, "Email already in use") {
		t.Errorf("expected field line, got %q", got)
	}
	if !strings.Contains(got, "Something went wrong") {
		t.Errorf("expected notice line, got %q", got)
	}
}
