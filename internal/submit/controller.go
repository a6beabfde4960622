// ABOUTME: Submission controller driving one credential form through validate, send, and outcome
// ABOUTME: Duplicate submits while a request is in flight join it instead of sending again

package submit

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/Ratatouille99337/CryptoQA/internal/form"
	"github.com/Ratatouille99337/CryptoQA/internal/session"
)

// GenericFailureNotice is shown when a submission fails for a reason other than field errors
const GenericFailureNotice = "Something went wrong. Please try again."

// State is the controller's lifecycle state
type State int

const (
	StateIdle State = iota
	StateValidating
	StateInvalid
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateInvalid:
		return "invalid"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Kind tags an Outcome
type Kind int

const (
	KindSucceeded Kind = iota
	KindInvalid
	KindRejected
	KindTransportFailure
)

func (k Kind) String() string {
	switch k {
	case KindSucceeded:
		return "succeeded"
	case KindInvalid:
		return "invalid"
	case KindRejected:
		return "rejected"
	case KindTransportFailure:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name in JSON output
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Outcome is the result of one submission attempt
type Outcome struct {
	Kind         Kind              `json:"kind"`
	Session      *session.Data     `json:"session,omitempty"`
	Message      string            `json:"message,omitempty"`
	Route        string            `json:"route,omitempty"`
	Errors       form.Result       `json:"errors,omitempty"`
	ServerErrors []form.FieldError `json:"server_errors,omitempty"`
	Notice       string            `json:"notice,omitempty"`
	Err          error             `json:"-"`
}

// Response is what a sender returns on success. Remember=false keeps the
// session for this process only.
type Response struct {
	Session  *session.Data
	Message  string
	Remember bool
}

// Sender delivers a validated input to the Auth API
type Sender[T form.Input] func(ctx context.Context, in T) (*Response, error)

// Rejection is implemented by errors that carry server field errors
type Rejection interface {
	error
	FieldErrors() []form.FieldError
}

// SessionWriter receives the session produced by a successful submission
type SessionWriter interface {
	Save(ctx context.Context, data *session.Data) error
	Hold(data *session.Data)
}

// Navigator is told where to go after a successful submission
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to a Navigator
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }

// Hooks wires a controller to the rest of the application. Nil fields are skipped.
type Hooks struct {
	Sessions     SessionWriter
	Navigator    Navigator
	SuccessRoute string
}

// Controller submits one form
type Controller[T form.Input] struct {
	form  *form.Form[T]
	send  Sender[T]
	hooks Hooks

	mu    sync.Mutex
	state State
	group singleflight.Group
}

// New creates a controller for f that sends through send
func New[T form.Input](f *form.Form[T], send Sender[T], hooks Hooks) *Controller[T] {
	return &Controller[T]{
		form:  f,
		send:  send,
		hooks: hooks,
	}
}

// Form returns the form this controller submits. Callers must not edit it
// while a submission is in flight.
func (c *Controller[T]) Form() *form.Form[T] {
	return c.form
}

// State returns the current lifecycle state
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submitting reports whether a request is in flight
func (c *Controller[T]) Submitting() bool {
	return c.State() == StateSubmitting
}

// CanSubmit reports whether a submit action should be offered
func (c *Controller[T]) CanSubmit() bool {
	return !c.Submitting() && c.form.Valid()
}

func (c *Controller[T]) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Submit validates the form and, when valid, sends it. Concurrent calls
// share the in-flight attempt and all receive its outcome.
func (c *Controller[T]) Submit(ctx context.Context) Outcome {
	v, _, shared := c.group.Do("submit", func() (any, error) {
		return c.submit(ctx), nil
	})
	if shared {
		slog.Debug("Joined in-flight submission", "flow", c.flow())
	}
	return v.(Outcome)
}

func (c *Controller[T]) flow() form.Flow {
	var zero T
	return zero.Flow()
}

func (c *Controller[T]) submit(ctx context.Context) Outcome {
	flow := c.flow()
	c.setState(StateValidating)

	// A fresh attempt starts from the schema alone
	c.form.ClearServerErrors()
	c.form.SetNotice("")
	if errs := c.form.Errors(); !errs.Valid() || !c.form.Dirty() {
		c.setState(StateInvalid)
		slog.Debug("Submission blocked by validation", "flow", flow, "fields", errs.Fields())
		c.setState(StateIdle)
		return Outcome{Kind: KindInvalid, Errors: errs}
	}

	in := c.form.Values()
	c.setState(StateSubmitting)
	slog.Info("Submitting form", "flow", flow)

	resp, err := c.send(ctx, in)
	if err != nil {
		return c.fail(flow, err)
	}

	if resp.Session != nil && c.hooks.Sessions != nil {
		if resp.Remember {
			if err := c.hooks.Sessions.Save(ctx, resp.Session); err != nil {
				return c.fail(flow, err)
			}
		} else {
			c.hooks.Sessions.Hold(resp.Session)
		}
	}

	c.setState(StateSucceeded)
	slog.Info("Submission succeeded", "flow", flow, "route", c.hooks.SuccessRoute)
	c.form.Reset()
	if c.hooks.Navigator != nil && c.hooks.SuccessRoute != "" {
		c.hooks.Navigator.Navigate(c.hooks.SuccessRoute)
	}
	return Outcome{
		Kind:    KindSucceeded,
		Session: resp.Session,
		Message: resp.Message,
		Route:   c.hooks.SuccessRoute,
	}
}

func (c *Controller[T]) fail(flow form.Flow, err error) Outcome {
	c.setState(StateFailed)
	defer c.setState(StateIdle)

	var rejected Rejection
	if errors.As(err, &rejected) {
		serverErrs := rejected.FieldErrors()
		c.form.ApplyServerErrors(serverErrs)
		slog.Info("Submission rejected", "flow", flow, "errors", len(serverErrs))
		return Outcome{
			Kind:         KindRejected,
			Errors:       c.form.Errors(),
			ServerErrors: serverErrs,
			Notice:       c.form.Notice(),
			Err:          err,
		}
	}

	c.form.SetNotice(GenericFailureNotice)
	slog.Warn("Submission failed", "flow", flow, "error", err)
	return Outcome{
		Kind:   KindTransportFailure,
		Notice: GenericFailureNotice,
		Err:    err,
	}
}
