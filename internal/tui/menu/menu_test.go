// ABOUTME: Tests for the auth menu
// ABOUTME: Validates menu options, defaults, and selection messages

package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

func TestMenuOptions(t *testing.T) {
	if len(options) != 5 {
		t.Fatalf("expected 5 options, got %d", len(options))
	}
	if options[0].label != "Sign in" {
		t.Errorf("expected first option 'Sign in', got %s", options[0].label)
	}
	if options[len(options)-1].value != ActionQuit {
		t.Errorf("expected last option to be quit, got %v", options[len(options)-1].value)
	}
}

func TestMenuDefaultSelection(t *testing.T) {
	m := New()
	if m.Selected() != ActionSignIn {
		t.Errorf("expected default selection sign in, got %v", m.Selected())
	}
}

func TestMenuCompletionSendsSelection(t *testing.T) {
	m := New()
	m.selected = ActionForgotPassword
	m.form.State = huh.StateCompleted

	_, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if cmd == nil {
		t.Fatal("expected a command after completion")
	}
	msg, ok := cmd().(SelectedMsg)
	if !ok {
		t.Fatalf("expected SelectedMsg, got %T", cmd())
	}
	if msg.Action != ActionForgotPassword {
		t.Errorf("expected forgot password, got %v", msg.Action)
	}
	if m.form.State == huh.StateCompleted {
		t.Error("expected menu form to be rebuilt")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionSignIn, "Sign in"},
		{ActionSignUp, "Create account"},
		{ActionForgotPassword, "Forgot password"},
		{ActionResetPassword, "Reset password"},
		{ActionQuit, "Quit"},
		{Action(99), "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			if got := tc.action.String(); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestMenuView(t *testing.T) {
	m := New()
	if m.View() == "" {
		t.Error("expected non-empty view")
	}
}
