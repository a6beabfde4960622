// ABOUTME: Auth menu shown when no session is stored
// ABOUTME: A huh select wrapped as a bubbletea model that reports the chosen action

package menu

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Ratatouille99337/CryptoQA/internal/tui/styles"
)

// Action is an entry of the auth menu
type Action int

const (
	ActionSignIn Action = iota
	ActionSignUp
	ActionForgotPassword
	ActionResetPassword
	ActionQuit
)

// SelectedMsg is sent when an action has been chosen
type SelectedMsg struct {
	Action Action
}

type option struct {
	label string
	value Action
}

var options = []option{
	{label: "Sign in", value: ActionSignIn},
	{label: "Create account", value: ActionSignUp},
	{label: "Forgot password", value: ActionForgotPassword},
	{label: "Reset password", value: ActionResetPassword},
	{label: "Quit", value: ActionQuit},
}

// Menu lets the user pick an auth flow
type Menu struct {
	form     *huh.Form
	selected Action
}

// New creates the auth menu
func New() *Menu {
	m := &Menu{selected: ActionSignIn}
	m.form = m.build()
	return m
}

func (m *Menu) build() *huh.Form {
	opts := make([]huh.Option[Action], 0, len(options))
	for _, opt := range options {
		opts = append(opts, huh.NewOption(opt.label, opt.value))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Action]().
				Title("What would you like to do?").
				Options(opts...).
				Value(&m.selected),
		).Title("Welcome to CryptoQ&A").
			Description("Sign in to reach your dashboard"),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		action := m.selected
		// Rebuild so the menu can be shown again after a flow ends
		m.form = m.build()
		return m, func() tea.Msg { return SelectedMsg{Action: action} }
	}

	return m, cmd
}

// View implements tea.Model
func (m *Menu) View() string {
	return m.form.View()
}

// Selected returns the highlighted action
func (m *Menu) Selected() Action {
	return m.selected
}

// String returns the label of an action
func (a Action) String() string {
	for _, opt := range options {
		if opt.value == a {
			return opt.label
		}
	}
	return "unknown"
}
