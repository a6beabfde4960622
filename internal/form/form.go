// ABOUTME: Form state for a credential input: current values, defaults, and error tracking
// ABOUTME: Schema errors are recomputed on every change; server errors clear per field on edit

package form

import (
	"fmt"
	"reflect"
	"strings"
)

// Form holds one credential form's state. A Form is owned by a single
// screen or command and is not safe for concurrent use.
type Form[T Input] struct {
	defaults T
	values   T
	schema   Result
	manual   Result
	notice   string
}

// New mounts a form with the given default values
func New[T Input](defaults T) *Form[T] {
	return &Form[T]{
		defaults: defaults,
		values:   defaults,
		schema:   Validate(defaults),
		manual:   Result{},
	}
}

// Values returns the current input
func (f *Form[T]) Values() T {
	return f.values
}

// Set replaces the whole input. Server errors for fields that changed are dropped.
func (f *Form[T]) Set(values T) {
	for _, name := range changedFields(f.values, values) {
		delete(f.manual, name)
	}
	f.values = values
	f.schema = Validate(values)
	f.notice = ""
}

// SetField changes one field by its JSON name
func (f *Form[T]) SetField(name string, value any) error {
	next := f.values
	field, err := fieldByName(reflect.ValueOf(&next).Elem(), name)
	if err != nil {
		return err
	}
	v := reflect.ValueOf(value)
	if !v.IsValid() || !v.Type().AssignableTo(field.Type()) {
		return fmt.Errorf("field %q expects %s, got %T", name, field.Type(), value)
	}
	field.Set(v)
	f.Set(next)
	return nil
}

// Field returns the current value of one field by its JSON name
func (f *Form[T]) Field(name string) (any, error) {
	v := f.values
	field, err := fieldByName(reflect.ValueOf(&v).Elem(), name)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Errors returns schema errors overlaid with server errors
func (f *Form[T]) Errors() Result {
	out := f.schema.Clone()
	for k, v := range f.manual {
		out[k] = v
	}
	return out
}

// SchemaErrors returns only the errors the schema produced for the current values
func (f *Form[T]) SchemaErrors() Result {
	return f.schema.Clone()
}

// Error returns the current message for one field
func (f *Form[T]) Error(field string) string {
	if msg, ok := f.manual[field]; ok {
		return msg
	}
	return f.schema[field]
}

// ApplyServerErrors records errors reported by the Auth API. Errors whose
// type names no field of the form become the form notice, since no edit
// could clear them.
func (f *Form[T]) ApplyServerErrors(errs []FieldError) {
	var fieldErrs []FieldError
	var general []string
	v := reflect.ValueOf(&f.values).Elem()
	for _, e := range errs {
		if _, err := fieldByName(v, e.Field); e.Field == "" || err != nil {
			general = append(general, e.Message)
			continue
		}
		fieldErrs = append(fieldErrs, e)
	}
	f.manual = Reconcile(f.manual, fieldErrs)
	if len(general) > 0 {
		f.notice = strings.Join(general, "; ")
	}
}

// ClearServerErrors drops every server-reported error
func (f *Form[T]) ClearServerErrors() {
	f.manual = Result{}
}

// Dirty reports whether any field differs from its default
func (f *Form[T]) Dirty() bool {
	return f.values != f.defaults
}

// DirtyFields lists the JSON names of fields that differ from their defaults
func (f *Form[T]) DirtyFields() []string {
	return changedFields(f.defaults, f.values)
}

// Valid reports whether the form can be submitted
func (f *Form[T]) Valid() bool {
	return f.Dirty() && f.schema.Valid() && f.manual.Valid()
}

// Notice is a form-level message not tied to a field
func (f *Form[T]) Notice() string {
	return f.notice
}

// SetNotice sets the form-level message
func (f *Form[T]) SetNotice(msg string) {
	f.notice = msg
}

// Reset restores the defaults and drops every error and notice
func (f *Form[T]) Reset() {
	f.values = f.defaults
	f.schema = Validate(f.defaults)
	f.manual = Result{}
	f.notice = ""
}

func jsonName(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	for i := 0; i < len(tag); i++ {
		if tag[i] == ',' {
			tag = tag[:i]
			break
		}
	}
	if tag == "" {
		return sf.Name
	}
	return tag
}

func fieldByName(v reflect.Value, name string) (reflect.Value, error) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if jsonName(t.Field(i)) == name {
			return v.Field(i), nil
		}
	}
	return reflect.Value{}, fmt.Errorf("unknown field %q", name)
}

func changedFields[T any](a, b T) []string {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	t := va.Type()
	var out []string
	for i := 0; i < t.NumField(); i++ {
		if !va.Field(i).Equal(vb.Field(i)) {
			out = append(out, jsonName(t.Field(i)))
		}
	}
	return out
}
