// ABOUTME: Contact email selector TUI component
// ABOUTME: Edits a repeating list of labelled emails; every change yields a new list

package emails

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Ratatouille99337/CryptoQA/internal/form"
	"github.com/Ratatouille99337/CryptoQA/internal/models"
	"github.com/Ratatouille99337/CryptoQA/internal/tui/icons"
)

type state int

const (
	stateList state = iota
	stateEditEmail
	stateEditLabel
)

// SavedMsg is sent when the user saves the list
type SavedMsg struct {
	Emails []models.ContactEmail
}

// CancelledMsg is sent when the user leaves without saving
type CancelledMsg struct{}

// Selector edits a list of contact emails
type Selector struct {
	emails    []models.ContactEmail
	cursor    int
	state     state
	textInput textinput.Model
	err       string
	width     int
	height    int
}

// Styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// New creates a selector for emails. An empty list starts with one blank row.
func New(list []models.ContactEmail) *Selector {
	if len(list) == 0 {
		list = []models.ContactEmail{models.NewContactEmail(nil)}
	}

	ti := textinput.New()
	ti.CharLimit = 128
	ti.Width = 50

	return &Selector{
		emails:    list,
		state:     stateList,
		textInput: ti,
	}
}

// Emails returns the current list
func (s *Selector) Emails() []models.ContactEmail {
	return s.emails
}

// Init implements tea.Model
func (s *Selector) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *Selector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		return s, nil

	case tea.KeyMsg:
		// Clear error on any key press
		s.err = ""

		switch s.state {
		case stateList:
			return s.updateList(msg)
		default:
			return s.updateEdit(msg)
		}
	}

	return s, nil
}

func (s *Selector) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.emails)-1 {
			s.cursor++
		}
	case "enter", "e":
		return s.startEdit(stateEditEmail)
	case "t":
		return s.startEdit(stateEditLabel)
	case "a":
		s.emails = models.Append(s.emails, models.NewContactEmail(nil))
		s.cursor = len(s.emails) - 1
		return s.startEdit(stateEditEmail)
	case "d":
		if !models.CanRemove(s.emails) {
			s.err = "At least one contact email is required"
			return s, nil
		}
		s.emails = models.Remove(s.emails, s.cursor)
		if s.cursor >= len(s.emails) {
			s.cursor = len(s.emails) - 1
		}
	case "s":
		list := s.emails
		return s, func() tea.Msg { return SavedMsg{Emails: list} }
	case "esc", "b":
		return s, func() tea.Msg { return CancelledMsg{} }
	}

	return s, nil
}

func (s *Selector) startEdit(st state) (tea.Model, tea.Cmd) {
	current := s.emails[s.cursor]
	s.state = st
	if st == stateEditEmail {
		s.textInput.Placeholder = "name@example.com"
		s.textInput.SetValue(current.Email)
	} else {
		s.textInput.Placeholder = "e.g., Work"
		s.textInput.SetValue(current.Label.Title)
	}
	s.textInput.Focus()
	return s, textinput.Blink
}

func (s *Selector) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.state = stateList
		s.textInput.Blur()
		return s, nil
	case "enter":
		return s.commitEdit()
	}

	var cmd tea.Cmd
	s.textInput, cmd = s.textInput.Update(msg)
	return s, cmd
}

func (s *Selector) commitEdit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(s.textInput.Value())
	item := s.emails[s.cursor]

	if s.state == stateEditEmail {
		if value != "" {
			if msg := form.Validate(form.ForgotPasswordInput{Email: value}).Error("email"); msg != "" {
				s.err = msg
				return s, nil
			}
		}
		item.Email = value
	} else {
		item.Label = models.NewLabel(&models.Label{ID: item.Label.ID, Title: value})
	}

	s.emails = models.Replace(s.emails, s.cursor, item)
	s.state = stateList
	s.textInput.Blur()
	return s, nil
}

// Editing reports whether a text input has focus
func (s *Selector) Editing() bool {
	return s.state != stateList
}

// SetError sets an error message to display
func (s *Selector) SetError(msg string) {
	s.err = msg
}

// View implements tea.Model
func (s *Selector) View() string {
	var b strings.Builder

	switch s.state {
	case stateEditEmail:
		b.WriteString(titleStyle.Render("Edit email"))
		b.WriteString("\n\n")
		b.WriteString(s.textInput.View())
	case stateEditLabel:
		b.WriteString(titleStyle.Render("Edit label"))
		b.WriteString("\n\n")
		b.WriteString(s.textInput.View())
	default:
		b.WriteString(s.viewList())
	}

	if s.err != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render("Error: " + s.err))
	}

	return b.String()
}

func (s *Selector) viewList() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(icons.Email.String() + " Contact emails"))
	b.WriteString("\n\n")

	for i, item := range s.emails {
		cursor := "  "
		style := normalStyle
		if i == s.cursor {
			cursor = "> "
			style = selectedStyle
		}

		email := item.Email
		if email == "" {
			email = "(empty)"
		}
		line := style.Render(email)
		if item.Label.Title != "" {
			line += " " + labelStyle.Render(fmt.Sprintf("[%s]", item.Label.Title))
		}
		b.WriteString(cursor + line + "\n")
	}

	b.WriteString("\n")
	keys := fmt.Sprintf("e edit • t label • %s a add", icons.Add)
	if models.CanRemove(s.emails) {
		keys += fmt.Sprintf(" • %s d remove", icons.Remove)
	}
	keys += fmt.Sprintf(" • s save • %s esc back", icons.Back)
	b.WriteString(helpStyle.Render(keys))

	return b.String()
}
