// ABOUTME: Sign-up wizard as a bubbletea model
// ABOUTME: Splits registration into huh steps with a visual progress indicator

package wizard

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Ratatouille99337/CryptoQA/internal/form"
	"github.com/Ratatouille99337/CryptoQA/internal/submit"
	"github.com/Ratatouille99337/CryptoQA/internal/tui/authform"
	"github.com/Ratatouille99337/CryptoQA/internal/tui/icons"
	"github.com/Ratatouille99337/CryptoQA/internal/tui/styles"
)

type submittedMsg struct {
	outcome submit.Outcome
}

type step struct {
	name        string
	title       string
	description string
	fields      []authform.Field
}

var steps = []step{
	{
		name:        "Account",
		title:       "Step 1: Account",
		description: "The email and password you will sign in with",
		fields: []authform.Field{
			{Name: "email", Title: "Email", Placeholder: "you@example.com"},
			{Name: "password", Title: "Password", Description: "At least 8 characters", Secret: true},
			{Name: "passwordConfirm", Title: "Confirm password", Secret: true},
		},
	},
	{
		name:        "Profile",
		title:       "Step 2: Profile",
		description: "How other members will see you",
		fields: []authform.Field{
			{Name: "domain", Title: "Domain", Placeholder: "acme.io"},
			{Name: "name", Title: "Display name"},
			{Name: "phone", Title: "Phone number", Placeholder: "+1 555 0100"},
			{Name: "official", Title: "Official title", Description: "Optional"},
			{Name: "birthday", Title: "Birthday", Description: "Optional", Placeholder: "YYYY-MM-DD"},
		},
	},
	{
		name:        "Terms",
		title:       "Step 3: Terms",
		description: "Review and accept the terms to create your account",
		fields: []authform.Field{
			{Name: "acceptTermsConditions", Title: "I agree to the terms and conditions", Toggle: true},
		},
	},
}

func allFields() []authform.Field {
	var fields []authform.Field
	for _, s := range steps {
		fields = append(fields, s.fields...)
	}
	return fields
}

// Wizard manages the sign-up flow as a bubbletea model
type Wizard struct {
	ctrl       *submit.Controller[form.SignUpInput]
	values     *authform.Bindings
	form       *huh.Form
	step       int
	width      int
	submitting bool
	failed     bool
}

// New creates a sign-up wizard
func New(api submit.AuthAPI, sessions submit.SessionWriter) *Wizard {
	ctrl := submit.NewSignUp(api, sessions, nil)
	w := &Wizard{
		ctrl:   ctrl,
		values: authform.Bind(ctrl.Form(), allFields()),
		step:   1,
	}
	w.form = w.createStepForm()
	return w
}

func (w *Wizard) createStepForm() *huh.Form {
	s := steps[w.step-1]
	return huh.NewForm(
		authform.Group(w.ctrl.Form(), w.values, s.fields).
			Title(s.title).
			Description(s.description),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submittedMsg:
		return w.handleOutcome(msg.outcome)

	case tea.WindowSizeMsg:
		w.width = msg.Width

	case tea.KeyMsg:
		if w.submitting {
			return w, nil
		}
		if msg.String() == "esc" {
			return w, func() tea.Msg { return authform.CancelledMsg{} }
		}
	}

	if w.submitting {
		return w, nil
	}

	// Update the current form
	model, cmd := w.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		w.form = f
	}

	// Check if form is complete
	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	if w.step < len(steps) {
		w.step++
		w.form = w.createStepForm()
		return w, w.form.Init()
	}
	return w, w.submit()
}

func (w *Wizard) submit() tea.Cmd {
	if w.submitting {
		return nil
	}
	if err := authform.Sync(w.ctrl.Form(), w.values); err != nil {
		return nil
	}
	w.submitting = true
	ctrl := w.ctrl
	return func() tea.Msg {
		return submittedMsg{outcome: ctrl.Submit(context.Background())}
	}
}

func (w *Wizard) handleOutcome(out submit.Outcome) (tea.Model, tea.Cmd) {
	w.submitting = false
	if out.Kind == submit.KindSucceeded {
		return w, func() tea.Msg { return authform.DoneMsg{Flow: form.FlowSignUp, Outcome: out} }
	}

	// Jump back to the first step holding an errored field
	w.failed = true
	w.step = stepFor(w.ctrl.Form().Errors())
	w.form = w.createStepForm()
	return w, w.form.Init()
}

// stepFor returns the earliest step with a field in errs, or the last step
func stepFor(errs form.Result) int {
	for i, s := range steps {
		for _, f := range s.fields {
			if errs.Error(f.Name) != "" {
				return i + 1
			}
		}
	}
	return len(steps)
}

// Step returns the current step number, starting at 1
func (w *Wizard) Step() int {
	return w.step
}

// Submitting reports whether the registration request is in flight
func (w *Wizard) Submitting() bool {
	return w.submitting
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder

	// Progress indicator
	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")

	if w.submitting {
		sb.WriteString(styles.Notice.Render(authform.SubmittingText))
		return sb.String()
	}

	// Form content
	sb.WriteString(w.form.View())

	if w.failed {
		f := w.ctrl.Form()
		if errs := authform.RenderErrors(f.Errors(), f.Notice()); errs != "" {
			sb.WriteString("\n\n")
			sb.WriteString(errs)
		}
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("enter next • shift+tab back • esc cancel"))
	return sb.String()
}

// renderProgress renders the step progress indicator
func (w *Wizard) renderProgress() string {
	// Keep the box one column inside the frame
	width := w.width - 1
	if width < 60 {
		width = 60
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	// Build step indicators
	var indicators []string
	for i, s := range steps {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		if stepNum < w.step {
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		} else if stepNum == w.step {
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		} else {
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		indicators = append(indicators, fmt.Sprintf("%s %s", indicator, nameStyle.Render(s.name)))
	}

	stepsLine := strings.Join(indicators, "    ")

	// "│  " + bar + " │" = 5 chars overhead
	barWidth := width - 5
	filledWidth := (w.step * barWidth) / len(steps)
	emptyWidth := barWidth - filledWidth

	filledBar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filledWidth))
	emptyBar := lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", emptyWidth))

	styledTitle := titleStyle.Render("Create account")
	titleWidth := lipgloss.Width("Create account")

	// "┌─ " + title + " " + fill + "┐"
	topFillWidth := max(0, width-5-titleWidth)
	topBorder := "┌─ " + styledTitle + " " + strings.Repeat("─", topFillWidth) + "┐"

	stepsPadding := max(0, width-4-lipgloss.Width(stepsLine))
	stepsLinePadded := "│ " + stepsLine + strings.Repeat(" ", stepsPadding) + " │"

	progressLinePadded := "│  " + filledBar + emptyBar + " │"

	bottomBorder := "└" + strings.Repeat("─", width-2) + "┘"

	return borderStyle.Render(strings.Join([]string{
		topBorder,
		stepsLinePadded,
		progressLinePadded,
		bottomBorder,
	}, "\n"))
}
