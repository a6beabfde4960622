// ABOUTME: Binds credential form fields to huh inputs
// ABOUTME: Every edit is written through to the form so validation runs on each change

package authform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Ratatouille99337/CryptoQA/internal/form"
	"github.com/Ratatouille99337/CryptoQA/internal/tui/icons"
	"github.com/Ratatouille99337/CryptoQA/internal/tui/styles"
)

// Field describes one control bound to a credential input field
type Field struct {
	Name        string // JSON name of the input field
	Title       string
	Description string
	Placeholder string
	Secret      bool
	Toggle      bool // yes/no confirm instead of a text input
}

// Bindings holds the values huh edits, keyed by field name
type Bindings struct {
	text  map[string]*string
	flags map[string]*bool
}

// Bind seeds bindings for fields from the current form values
func Bind[T form.Input](f *form.Form[T], fields []Field) *Bindings {
	b := &Bindings{
		text:  make(map[string]*string),
		flags: make(map[string]*bool),
	}
	for _, field := range fields {
		v, _ := f.Field(field.Name)
		if field.Toggle {
			flag, _ := v.(bool)
			b.flags[field.Name] = &flag
			continue
		}
		s, _ := v.(string)
		b.text[field.Name] = &s
	}
	return b
}

// Text returns the bound string value of a field
func (b *Bindings) Text(name string) string {
	if p, ok := b.text[name]; ok {
		return *p
	}
	return ""
}

// SetText replaces the bound string value of a field
func (b *Bindings) SetText(name, value string) {
	if p, ok := b.text[name]; ok {
		*p = value
	}
}

// Flag returns the bound boolean value of a field
func (b *Bindings) Flag(name string) bool {
	if p, ok := b.flags[name]; ok {
		return *p
	}
	return false
}

// SetFlag replaces the bound boolean value of a field
func (b *Bindings) SetFlag(name string, value bool) {
	if p, ok := b.flags[name]; ok {
		*p = value
	}
}

// Sync copies every bound value into the form
func Sync[T form.Input](f *form.Form[T], b *Bindings) error {
	for name, p := range b.text {
		if err := f.SetField(name, *p); err != nil {
			return err
		}
	}
	for name, p := range b.flags {
		if err := f.SetField(name, *p); err != nil {
			return err
		}
	}
	return nil
}

// Group builds a huh group for fields. Validation writes the edited value
// into f and reports the schema message for that field. Server errors are
// listed under the form instead so a rejected value can be resubmitted.
func Group[T form.Input](f *form.Form[T], b *Bindings, fields []Field) *huh.Group {
	items := make([]huh.Field, 0, len(fields))
	for _, field := range fields {
		name := field.Name
		if field.Toggle {
			items = append(items, huh.NewConfirm().
				Key(name).
				Title(field.Title).
				Description(field.Description).
				Affirmative("Yes").
				Negative("No").
				Value(b.flags[name]).
				Validate(func(v bool) error { return check(f, name, v) }))
			continue
		}

		in := huh.NewInput().
			Key(name).
			Title(field.Title).
			Description(field.Description).
			Placeholder(field.Placeholder).
			CharLimit(128).
			Value(b.text[name]).
			Validate(func(v string) error { return check(f, name, v) })
		if field.Secret {
			in = in.EchoMode(huh.EchoModePassword)
		}
		items = append(items, in)
	}
	return huh.NewGroup(items...)
}

func check[T form.Input](f *form.Form[T], name string, v any) error {
	if err := f.SetField(name, v); err != nil {
		return err
	}
	if msg := f.SchemaErrors().Error(name); msg != "" {
		return errors.New(msg)
	}
	return nil
}

// RenderErrors lists field errors and the form notice under a form
func RenderErrors(errs form.Result, notice string) string {
	if errs.Valid() && notice == "" {
		return ""
	}

	var sb strings.Builder
	for _, name := range errs.Fields() {
		sb.WriteString(fmt.Sprintf("  %s %s %s\n",
			lipgloss.NewStyle().Foreground(styles.Danger).Render(icons.Critical.String()),
			styles.FieldName.Render(name+":"),
			styles.FieldMessage.Render(errs.Error(name))))
	}
	if notice != "" {
		sb.WriteString(fmt.Sprintf("  %s %s\n",
			lipgloss.NewStyle().Foreground(styles.Warning).Render(icons.Warning.String()),
			styles.Notice.Render(notice)))
	}
	return strings.TrimRight(sb.String(), "\n")
}
