// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Ratatouille99337/CryptoQA/internal/form"
	"github.com/Ratatouille99337/CryptoQA/internal/models"
	"github.com/Ratatouille99337/CryptoQA/internal/navigation"
	"github.com/Ratatouille99337/CryptoQA/internal/session"
	"github.com/Ratatouille99337/CryptoQA/internal/submit"
	"github.com/Ratatouille99337/CryptoQA/internal/tui/authform"
	"github.com/Ratatouille99337/CryptoQA/internal/tui/emails"
	"github.com/Ratatouille99337/CryptoQA/internal/tui/home"
	"github.com/Ratatouille99337/CryptoQA/internal/tui/icons"
	"github.com/Ratatouille99337/CryptoQA/internal/tui/menu"
	"github.com/Ratatouille99337/CryptoQA/internal/tui/styles"
	"github.com/Ratatouille99337/CryptoQA/internal/tui/wizard"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenSignIn
	ScreenSignUp
	ScreenForgotPassword
	ScreenResetPassword
	ScreenHome
	ScreenEmails
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum frame width
	frameOverhead    = 4  // Header, footer, and the newlines around content
)

// sessionLoadedMsg is sent when the stored session has been read
type sessionLoadedMsg struct {
	state *session.State
	err   error
}

// emailsLoadedMsg is sent when the contact email list has been read
type emailsLoadedMsg struct {
	list []models.ContactEmail
	err  error
}

// emailsSavedMsg is sent when the contact email list has been written
type emailsSavedMsg struct {
	err error
}

// loggedOutMsg is sent when the stored session has been cleared
type loggedOutMsg struct {
	err error
}

// Deps are the services the TUI drives
type Deps struct {
	API      submit.AuthAPI
	Sessions *session.Provider
}

// App is the root model for the TUI
type App struct {
	api      submit.AuthAPI
	sessions *session.Provider
	screen   Screen
	width    int
	height   int
	err      error
	status   string // one-line message shown in the footer

	// Child models
	menu   *menu.Menu
	form   tea.Model // active credential screen
	home   *home.Home
	emails *emails.Selector
}

// New creates a new TUI application
func New(deps Deps) *App {
	return &App{
		api:      deps.API,
		sessions: deps.Sessions,
		screen:   ScreenMenu,
		menu:     menu.New(),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.menu.Init(), a.loadSession())
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.home != nil {
			a.home.SetSize(a.contentWidth(), a.contentHeight())
		}
		// Forward to child models
		a.menu.Update(msg)
		if a.emails != nil {
			a.emails.Update(msg)
		}
		if a.form != nil {
			return a.updateForm(msg)
		}
		return a, nil

	case tea.KeyMsg:
		// Handle global quit
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		a.status = ""

		// Route to current screen
		switch a.screen {
		case ScreenMenu:
			if msg.String() == "q" {
				return a, tea.Quit
			}
			return a.updateMenu(msg)
		case ScreenSignIn, ScreenSignUp, ScreenForgotPassword, ScreenResetPassword:
			return a.updateForm(msg)
		case ScreenHome:
			return a.updateHome(msg)
		case ScreenEmails:
			return a.updateEmails(msg)
		}

	case menu.SelectedMsg:
		return a.handleMenuSelection(msg)

	case authform.DoneMsg:
		return a.handleDone(msg)

	case authform.CancelledMsg:
		a.form = nil
		a.screen = ScreenMenu
		return a, a.menu.Init()

	case sessionLoadedMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		if msg.state == nil {
			a.home = nil
			if a.screen == ScreenHome {
				a.screen = ScreenMenu
			}
			return a, nil
		}
		a.home = home.New(msg.state, a.contentWidth(), a.contentHeight())
		a.screen = ScreenHome
		return a, nil

	case emailsLoadedMsg:
		if msg.err != nil {
			// An unreadable list is replaced on the next save
			slog.Warn("Ignoring stored contact emails", "error", msg.err)
		}
		a.emails = emails.New(msg.list)
		a.emails.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		a.screen = ScreenEmails
		return a, a.emails.Init()

	case emails.SavedMsg:
		a.emails = nil
		a.screen = ScreenHome
		return a, a.saveEmails(msg.Emails)

	case emails.CancelledMsg:
		a.emails = nil
		a.screen = ScreenHome
		return a, nil

	case emailsSavedMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.status = "Contact emails saved"
		return a, nil

	case loggedOutMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.home = nil
		a.screen = ScreenMenu
		a.status = "Signed out"
		return a, a.menu.Init()

	default:
		// Forward unknown messages to the active child (needed for huh and textinput internals)
		switch a.screen {
		case ScreenMenu:
			return a.updateMenu(msg)
		case ScreenSignIn, ScreenSignUp, ScreenForgotPassword, ScreenResetPassword:
			return a.updateForm(msg)
		case ScreenEmails:
			return a.updateEmails(msg)
		}
	}

	return a, nil
}

func (a *App) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := a.menu.Update(msg)
	a.menu = model.(*menu.Menu)
	return a, cmd
}

func (a *App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.form == nil {
		return a, nil
	}
	model, cmd := a.form.Update(msg)
	a.form = model
	return a, cmd
}

func (a *App) updateEmails(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.emails == nil {
		return a, nil
	}
	model, cmd := a.emails.Update(msg)
	a.emails = model.(*emails.Selector)
	return a, cmd
}

func (a *App) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.home == nil {
		return a, nil
	}
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "up", "k":
		a.home.MoveUp()
	case "down", "j":
		a.home.MoveDown()
	case "enter":
		if e, ok := a.home.Selected(); ok {
			a.status = fmt.Sprintf("%s lives at %s in the web app", e.Title, e.URL)
		}
	case "e":
		return a, a.loadEmails()
	case "l":
		return a, a.logout()
	}
	return a, nil
}

func (a *App) handleMenuSelection(msg menu.SelectedMsg) (tea.Model, tea.Cmd) {
	a.err = nil
	switch msg.Action {
	case menu.ActionSignIn:
		return a.openForm(ScreenSignIn, authform.SignIn(a.api, a.sessionWriter()))
	case menu.ActionSignUp:
		return a.openForm(ScreenSignUp, wizard.New(a.api, a.sessionWriter()))
	case menu.ActionForgotPassword:
		return a.openForm(ScreenForgotPassword, authform.ForgotPassword(a.api))
	case menu.ActionResetPassword:
		return a.openForm(ScreenResetPassword, authform.ResetPassword(a.api))
	case menu.ActionQuit:
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) openForm(screen Screen, model tea.Model) (tea.Model, tea.Cmd) {
	a.screen = screen
	initCmd := model.Init()
	if a.width == 0 {
		a.form = model
		return a, initCmd
	}
	sized, cmd := model.Update(tea.WindowSizeMsg{Width: a.contentWidth(), Height: a.contentHeight()})
	a.form = sized
	return a, tea.Batch(initCmd, cmd)
}

func (a *App) handleDone(msg authform.DoneMsg) (tea.Model, tea.Cmd) {
	a.form = nil
	switch msg.Flow {
	case form.FlowForgotPassword:
		a.status = msg.Outcome.Message
	case form.FlowResetPassword:
		a.status = "Password updated, sign in with your new password"
	}
	return a.navigate(msg.Outcome.Route)
}

// navigate maps a route of the web app onto a screen
func (a *App) navigate(route string) (tea.Model, tea.Cmd) {
	switch route {
	case navigation.SignInURL:
		return a.openForm(ScreenSignIn, authform.SignIn(a.api, a.sessionWriter()))
	case navigation.DashboardURL:
		return a, a.loadSession()
	default:
		a.screen = ScreenMenu
		return a, a.menu.Init()
	}
}

// sessionWriter returns the provider as a submit hook, or nil without one
func (a *App) sessionWriter() submit.SessionWriter {
	if a.sessions == nil {
		return nil
	}
	return a.sessions
}

// loadSession creates a command that reads the stored session
func (a *App) loadSession() tea.Cmd {
	sessions := a.sessions
	return func() tea.Msg {
		if sessions == nil {
			return sessionLoadedMsg{}
		}
		state, err := sessions.Load(context.Background())
		return sessionLoadedMsg{state: state, err: err}
	}
}

// logout creates a command that clears the stored session
func (a *App) logout() tea.Cmd {
	sessions := a.sessions
	return func() tea.Msg {
		if sessions == nil {
			return loggedOutMsg{}
		}
		return loggedOutMsg{err: sessions.Clear(context.Background())}
	}
}

// loadEmails creates a command that reads the contact email list
func (a *App) loadEmails() tea.Cmd {
	sessions := a.sessions
	return func() tea.Msg {
		if sessions == nil {
			return emailsLoadedMsg{}
		}
		list, err := emails.Load(context.Background(), sessions.Store())
		return emailsLoadedMsg{list: list, err: err}
	}
}

// saveEmails creates a command that writes the contact email list
func (a *App) saveEmails(list []models.ContactEmail) tea.Cmd {
	sessions := a.sessions
	return func() tea.Msg {
		if sessions == nil {
			return emailsSavedMsg{}
		}
		return emailsSavedMsg{err: emails.Save(context.Background(), sessions.Store(), list)}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenSignIn, ScreenSignUp, ScreenForgotPassword, ScreenResetPassword:
		content = a.viewForm()
	case ScreenHome:
		content = a.viewHome()
	case ScreenEmails:
		content = a.viewEmails()
	default:
		content = a.menu.View()
	}

	if a.err != nil {
		content = styles.StatusCritical.Render("Error: "+a.err.Error()) + "\n\n" + content
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewForm() string {
	if a.form != nil {
		return a.form.View()
	}
	return ""
}

func (a *App) viewEmails() string {
	if a.emails != nil {
		return a.emails.View()
	}
	return ""
}

// viewHome renders the home screen with the actions pane
func (a *App) viewHome() string {
	if a.home == nil {
		return styles.Panel.Render("Loading session...")
	}

	homeWidth := a.contentWidth() * 2 / 3
	a.home.SetSize(homeWidth, a.contentHeight())
	leftPane := a.home.View()

	rightContent := styles.Title.Render(icons.Shield.String()+" Actions") + "\n\n"
	rightContent += icons.Edit.String() + " Contact emails\n"
	rightContent += icons.Logout.String() + " Sign out\n"
	rightContent += icons.Quit.String() + " Quit application\n"
	rightPane := styles.Panel.Render(rightContent)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
}

// frameWidth is the width of the header and footer. One column is left
// free to prevent wrapping on some terminals.
func (a *App) frameWidth() int {
	width := a.width - 1
	if width < minTerminalWidth {
		width = minTerminalWidth
	}
	return width
}

// contentWidth is the width available between the frame borders
func (a *App) contentWidth() int {
	return a.frameWidth() - 2
}

// contentHeight is the height available between header and footer
func (a *App) contentHeight() int {
	h := a.height - frameOverhead
	if h < 10 {
		h = 10
	}
	return h
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("CryptoQ&A"))

	// Signed-in account on the right
	rightText := ""
	if a.home != nil && a.home.State() != nil {
		rightText = " " + contextStyle.Render(a.home.State().Data.User.Email) + " "
	}

	fillWidth := width - 4 - lipgloss.Width(leftText) - lipgloss.Width(rightText) // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"
	return borderStyle.Render(header)
}

// shortcuts returns the keyboard shortcuts for the current screen
func (a *App) shortcuts() []string {
	switch a.screen {
	case ScreenMenu:
		return []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	case ScreenSignIn, ScreenForgotPassword, ScreenResetPassword:
		return []string{"Tab Next", "Enter Submit", "Esc Back"}
	case ScreenSignUp:
		return []string{"Tab Next", "Enter Continue", "Esc Back"}
	case ScreenHome:
		return []string{"↑↓ Navigate", "e Emails", "l Sign out", "q Quit"}
	case ScreenEmails:
		return []string{"e Edit", "a Add", "s Save", "Esc Back"}
	}
	return nil
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	shortcuts := a.shortcuts()
	var styled []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styled = append(styled, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styled = append(styled, s)
		}
	}

	leftText := " " + strings.Join(styled, "  ") + " "
	leftWidth := lipgloss.Width(" " + strings.Join(shortcuts, "  ") + " ")

	rightText := ""
	rightWidth := 0
	if a.status != "" {
		status := a.status
		// Keep the status from pushing the frame past its width
		if room := width - 4 - leftWidth - 2; lipgloss.Width(status) > room {
			if room < 1 {
				status = ""
			} else {
				status = truncate(status, room)
			}
		}
		if status != "" {
			rightText = " " + statusStyle.Render(status) + " "
			rightWidth = lipgloss.Width(" " + status + " ")
		}
	}

	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"
	return borderStyle.Render(footer)
}

// truncate shortens s to at most width cells, ending in an ellipsis
func truncate(s string, width int) string {
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)+"…") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI
func Run(deps Deps) error {
	p := tea.NewProgram(
		New(deps),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
