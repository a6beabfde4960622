// ABOUTME: HTTP client for the CryptoQ&A Auth API
// ABOUTME: Classifies failures as field-level rejections or transport failures

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/Ratatouille99337/CryptoQA/internal/form"
	"github.com/Ratatouille99337/CryptoQA/internal/session"
)

const maxResponseBytes = 1 << 20

// Client is the Auth API client
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit paces outgoing requests to r per second with the given burst
func WithRateLimit(r float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(r), burst)
	}
}

// New creates a new API client with the given base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the Auth API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FieldError is one entry of the Auth API's structured failure body
type FieldError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// RejectedError is returned when the Auth API refuses a submission with field errors
type RejectedError struct {
	Status int
	Errors []FieldError
}

func (e *RejectedError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Type + ": " + fe.Message
	}
	return fmt.Sprintf("request rejected (status %d): %s", e.Status, strings.Join(parts, "; "))
}

// FieldErrors returns the rejection in form terms
func (e *RejectedError) FieldErrors() []form.FieldError {
	out := make([]form.FieldError, len(e.Errors))
	for i, fe := range e.Errors {
		out[i] = form.FieldError{Field: fe.Type, Message: fe.Message}
	}
	return out
}

// TransportError covers every failure that is not a field-level rejection:
// network errors, timeouts, cancellation, and unexpected responses
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrorResponse is the non-field error body some backends return
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SignInRequest is the sign-in payload. The remember flag is never sent.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpRequest is the registration payload
type SignUpRequest struct {
	Domain   string `json:"domain"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// GoogleLoginRequest exchanges a verified Google email for a session
type GoogleLoginRequest struct {
	Email string `json:"email"`
}

// ForgotPasswordRequest asks for a reset code
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest sets a new password with a reset code
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// MessageResponse is a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// SignIn calls POST /user/signin
func (c *Client) SignIn(ctx context.Context, req SignInRequest) (*session.Data, error) {
	var data session.Data
	if err := c.post(ctx, "/user/signin", req, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// SignUp calls POST /user/signup
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (*session.Data, error) {
	var data session.Data
	if err := c.post(ctx, "/user/signup", req, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GoogleLogin calls POST /user/google
func (c *Client) GoogleLogin(ctx context.Context, req GoogleLoginRequest) (*session.Data, error) {
	var data session.Data
	if err := c.post(ctx, "/user/google", req, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// ForgotPassword calls POST /user/forgotpassword
func (c *Client) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (*MessageResponse, error) {
	var msg MessageResponse
	if err := c.post(ctx, "/user/forgotpassword", req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ResetPassword calls POST /user/resetpassword
func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*MessageResponse, error) {
	var msg MessageResponse
	if err := c.post(ctx, "/user/resetpassword", req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	op := "POST " + path

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &TransportError{Op: op, Err: c.handleRequestError(ctx, err)}
		}
	}

	body, err := json.Marshal(in)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("failed to marshal input: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: c.handleRequestError(ctx, err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &TransportError{Op: op, Status: resp.StatusCode, Err: c.handleRequestError(ctx, err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(op, resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("invalid response from backend: %w", err)}
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("request canceled: %w", ctx.Err())
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", ctx.Err())
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse turns a non-2xx body into a rejection when it is a
// non-empty field error list, and into a transport error otherwise
func (c *Client) handleErrorResponse(op string, status int, body []byte) error {
	var fieldErrs []FieldError
	if err := json.Unmarshal(body, &fieldErrs); err == nil && len(fieldErrs) > 0 && allTyped(fieldErrs) {
		return &RejectedError{Status: status, Errors: fieldErrs}
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		if msg := firstNonEmpty(errResp.Error, errResp.Message); msg != "" {
			return &TransportError{Op: op, Status: status, Err: fmt.Errorf("backend error: %s", msg)}
		}
	}
	return &TransportError{Op: op, Status: status, Err: fmt.Errorf("backend returned status %d", status)}
}

func allTyped(errs []FieldError) bool {
	for _, e := range errs {
		if e.Type == "" || e.Message == "" {
			return false
		}
	}
	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
