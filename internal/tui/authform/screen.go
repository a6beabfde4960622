// ABOUTME: Single-page credential form screen driven by a submission controller
// ABOUTME: Submits as a tea.Cmd and re-opens the form with server errors listed beneath it

package authform

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Ratatouille99337/CryptoQA/internal/form"
	"github.com/Ratatouille99337/CryptoQA/internal/submit"
	"github.com/Ratatouille99337/CryptoQA/internal/tui/styles"
)

// SubmittingText is shown while a request is in flight
const SubmittingText = "Submitting..."

// DoneMsg is sent when a submission succeeds
type DoneMsg struct {
	Flow    form.Flow
	Outcome submit.Outcome
}

// CancelledMsg is sent when the user leaves a form with esc
type CancelledMsg struct{}

type submittedMsg struct {
	outcome submit.Outcome
}

// Screen renders one credential form
type Screen[T form.Input] struct {
	title       string
	description string
	fields      []Field
	ctrl        *submit.Controller[T]
	values      *Bindings
	form        *huh.Form
	submitting  bool
	failed      bool
	width       int
}

// New creates a screen for ctrl showing fields in a single group
func New[T form.Input](ctrl *submit.Controller[T], title, description string, fields []Field) *Screen[T] {
	s := &Screen[T]{
		title:       title,
		description: description,
		fields:      fields,
		ctrl:        ctrl,
		values:      Bind(ctrl.Form(), fields),
	}
	s.form = s.build()
	return s
}

func (s *Screen[T]) build() *huh.Form {
	return huh.NewForm(
		Group(s.ctrl.Form(), s.values, s.fields).
			Title(s.title).
			Description(s.description),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

// Init implements tea.Model
func (s *Screen[T]) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *Screen[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submittedMsg:
		return s.handleOutcome(msg.outcome)

	case tea.WindowSizeMsg:
		s.width = msg.Width

	case tea.KeyMsg:
		if s.submitting {
			return s, nil
		}
		if msg.String() == "esc" {
			return s, func() tea.Msg { return CancelledMsg{} }
		}
	}

	if s.submitting {
		return s, nil
	}

	model, cmd := s.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		s.form = f
	}

	switch s.form.State {
	case huh.StateCompleted:
		return s, s.submit()
	case huh.StateAborted:
		return s, func() tea.Msg { return CancelledMsg{} }
	}
	return s, cmd
}

func (s *Screen[T]) submit() tea.Cmd {
	if s.submitting {
		return nil
	}
	if err := Sync(s.ctrl.Form(), s.values); err != nil {
		return nil
	}
	s.submitting = true
	ctrl := s.ctrl
	return func() tea.Msg {
		return submittedMsg{outcome: ctrl.Submit(context.Background())}
	}
}

func (s *Screen[T]) handleOutcome(out submit.Outcome) (tea.Model, tea.Cmd) {
	s.submitting = false
	if out.Kind == submit.KindSucceeded {
		var zero T
		flow := zero.Flow()
		return s, func() tea.Msg { return DoneMsg{Flow: flow, Outcome: out} }
	}

	s.failed = true
	s.form = s.build()
	return s, s.form.Init()
}

// Submitting reports whether a request is in flight
func (s *Screen[T]) Submitting() bool {
	return s.submitting
}

// SetWidth sets the screen width for proper rendering
func (s *Screen[T]) SetWidth(width int) {
	s.width = width
}

// View implements tea.Model
func (s *Screen[T]) View() string {
	if s.submitting {
		return styles.Title.Render(s.title) + "\n\n" + styles.Notice.Render(SubmittingText)
	}

	var sb strings.Builder
	sb.WriteString(s.form.View())

	if s.failed {
		f := s.ctrl.Form()
		if errs := RenderErrors(f.Errors(), f.Notice()); errs != "" {
			sb.WriteString("\n\n")
			sb.WriteString(errs)
		}
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("enter next • shift+tab back • esc cancel"))
	return sb.String()
}
