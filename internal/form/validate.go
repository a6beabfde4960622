// ABOUTME: Schema validation of credential inputs into per-field error messages
// ABOUTME: Wraps go-playground/validator so field errors are reported under their JSON names

package form

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Result maps a field's JSON name to its single error message.
// A field absent from the map is valid.
type Result map[string]string

// Valid reports whether the result holds no errors
func (r Result) Valid() bool {
	return len(r) == 0
}

// Error returns the message for a field, or "" when it is valid
func (r Result) Error(field string) string {
	return r[field]
}

// Fields returns the fields with errors in a stable order
func (r Result) Fields() []string {
	fields := make([]string, 0, len(r))
	for f := range r {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Clone returns an independent copy of the result
func (r Result) Clone() Result {
	out := make(Result, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// FieldError is a single server-reported error. Field carries the
// server's "type" and names the form field the message belongs to.
type FieldError struct {
	Field   string `json:"type"`
	Message string `json:"message"`
}

// Reconcile folds server errors into a validation result, in order, so a
// later error for the same field wins. The input result is not modified.
func Reconcile(r Result, errs []FieldError) Result {
	out := r.Clone()
	for _, e := range errs {
		if e.Field == "" {
			continue
		}
		out[e.Field] = e.Message
	}
	return out
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks an input against its schema. Each field reports at most
// one message: the first rule it fails, in tag order, so an empty field
// reports "required" rather than a shape error.
func Validate[T Input](in T) Result {
	return check(in, in.Messages())
}

func check(in any, messages map[string]string) Result {
	res := Result{}
	err := validate.Struct(in)
	if err == nil {
		return res
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only reachable with a non-struct input
		res[""] = err.Error()
		return res
	}
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := res[field]; seen {
			continue
		}
		msg, ok := messages[field+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", field)
		}
		res[field] = msg
	}
	return res
}
