// ABOUTME: Home screen shown once a session is loaded
// ABOUTME: Renders the session card and the navigation entries derived from it

package home

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Ratatouille99337/CryptoQA/internal/navigation"
	"github.com/Ratatouille99337/CryptoQA/internal/session"
	"github.com/Ratatouille99337/CryptoQA/internal/tui/icons"
	"github.com/Ratatouille99337/CryptoQA/internal/tui/styles"
	"github.com/Ratatouille99337/CryptoQA/internal/tui/widgets"
)

// Home displays the signed-in account and its navigation
type Home struct {
	state   *session.State
	entries []navigation.Entry
	cursor  int
	width   int
	height  int
	now     func() time.Time
}

// New creates a home screen for state
func New(state *session.State, width, height int) *Home {
	return &Home{
		state:   state,
		entries: navigation.Build(state),
		width:   width,
		height:  height,
		now:     time.Now,
	}
}

// SetSize updates the home screen dimensions
func (h *Home) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// State returns the session shown on the screen
func (h *Home) State() *session.State {
	return h.state
}

// Entries returns the navigation entries
func (h *Home) Entries() []navigation.Entry {
	return h.entries
}

// MoveUp moves the cursor to the previous entry
func (h *Home) MoveUp() {
	if h.cursor > 0 {
		h.cursor--
	}
}

// MoveDown moves the cursor to the next entry
func (h *Home) MoveDown() {
	if h.cursor < len(h.entries)-1 {
		h.cursor++
	}
}

// Selected returns the entry under the cursor
func (h *Home) Selected() (navigation.Entry, bool) {
	if h.cursor < 0 || h.cursor >= len(h.entries) {
		return navigation.Entry{}, false
	}
	return h.entries[h.cursor], true
}

// View renders the home screen
func (h *Home) View() string {
	if h.state == nil {
		return styles.Panel.Width(h.width).Render("Loading session...")
	}

	var sb strings.Builder
	sb.WriteString(h.renderSession())
	sb.WriteString("\n\n")
	sb.WriteString(h.renderEntries())

	return lipgloss.NewStyle().
		Width(h.width).
		Height(h.height).
		Render(sb.String())
}

func (h *Home) renderSession() string {
	data := h.state.Data
	var sb strings.Builder

	name := data.User.DisplayName
	if name == "" {
		name = data.User.Email
	}
	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s %s", icons.User.String(), name)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%s %s  %s\n", icons.Email.String(), data.User.Email, widgets.RoleBadge(h.state.Role())))

	level := widgets.ExpiryLevel(h.state.ExpiresAt, h.now())
	switch level {
	case widgets.StatusNeutral:
		sb.WriteString(widgets.StatusText("Session has no expiry", level))
	case widgets.StatusCritical:
		sb.WriteString(widgets.StatusText("Session expired, sign in again", level))
	default:
		sb.WriteString(widgets.StatusText("Session valid until "+h.state.ExpiresAt.Local().Format("Jan 2 15:04"), level))
	}

	return styles.Panel.Render(sb.String())
}

func (h *Home) renderEntries() string {
	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render("Navigation"))
	sb.WriteString("\n")

	for i, e := range h.entries {
		line := fmt.Sprintf("%s %-12s %s", icons.ForName(e.Icon).String(), e.Title, styles.Subtitle.UnsetMarginBottom().Render(e.Subtitle))
		if i == h.cursor {
			sb.WriteString(styles.Selected.Render("> " + line))
		} else {
			sb.WriteString(styles.Normal.Render("  " + line))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
