// ABOUTME: Tests for the CryptoQ&A Auth API client
// ABOUTME: Uses httptest to mock Auth API responses

package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Ratatouille99337/CryptoQA/internal/session"
)

func TestSignIn_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/user/signin" {
			t.Errorf("expected path /api/v1/user/signin, got %s", r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected JSON content type, got %s", r.Header.Get("Content-Type"))
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header")
		}

		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "admin@fusetheme.com" {
			t.Errorf("expected email admin@fusetheme.com, got %v", body["email"])
		}
		if _, ok := body["remember"]; ok {
			t.Error("expected remember to be stripped from the payload")
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(session.Data{
			Role:        "admin",
			AccessToken: "tok",
			User:        session.User{ID: "1", Email: "admin@fusetheme.com"},
		})
	}))
	defer server.Close()

	c := New(server.URL + "/api/v1/")
	data, err := c.SignIn(context.Background(), SignInRequest{Email: "admin@fusetheme.com", Password: "admin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Role != "admin" {
		t.Errorf("expected role admin, got %s", data.Role)
	}
	if data.AccessToken != "tok" {
		t.Errorf("expected token tok, got %s", data.AccessToken)
	}
}

func TestSignUp_SendsOnlyAPIFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		json.Unmarshal(raw, &body)
		for _, key := range []string{"domain", "name", "email", "phone", "password"} {
			if _, ok := body[key]; !ok {
				t.Errorf("expected %s in payload", key)
			}
		}
		if len(body) != 5 {
			t.Errorf("expected 5 fields, got %d: %s", len(body), raw)
		}
		json.NewEncoder(w).Encode(session.Data{Role: "user"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.SignUp(context.Background(), SignUpRequest{
		Domain: "acme", Name: "Ada", Email: "ada@acme.io", Phone: "1", Password: "correcthorse",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSignUp_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`[{"type":"email","message":"Email already in use"}]`))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.SignUp(context.Background(), SignUpRequest{Email: "taken@acme.io"})

	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected RejectedError, got %T: %v", err, err)
	}
	if rejected.Status != http.StatusConflict {
		t.Errorf("expected status 409, got %d", rejected.Status)
	}
	fe := rejected.FieldErrors()
	if len(fe) != 1 || fe[0].Field != "email" || fe[0].Message != "Email already in use" {
		t.Errorf("unexpected field errors: %+v", fe)
	}
}

func TestErrorResponses_AreTransportFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"empty array", http.StatusBadRequest, `[]`, "status 400"},
		{"html page", http.StatusBadGateway, `<html>bad gateway</html>`, "status 502"},
		{"error object", http.StatusInternalServerError, `{"error":"database down"}`, "database down"},
		{"array without types", http.StatusBadRequest, `[{"message":"x"}]`, "status 400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := New(server.URL).SignIn(context.Background(), SignInRequest{})

			var transport *TransportError
			if !errors.As(err, &transport) {
				t.Fatalf("expected TransportError, got %T: %v", err, err)
			}
			if transport.Status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, transport.Status)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error to contain %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestInvalidSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := New(server.URL).GoogleLogin(context.Background(), GoogleLoginRequest{Email: "a@b.co"})
	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected TransportError, got %T", err)
	}
}

func TestConnectionError(t *testing.T) {
	c := New("http://localhost:99999")
	_, err := c.ForgotPassword(context.Background(), ForgotPasswordRequest{Email: "a@b.co"})
	if err == nil {
		t.Fatal("expected connection error, got nil")
	}
	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Errorf("expected TransportError, got %T", err)
	}
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode(MessageResponse{Message: "ok"})
	}))
	defer server.Close()

	c := New(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := c.ResetPassword(ctx, ResetPasswordRequest{Token: "t", Password: "p"})
	if err == nil {
		t.Fatal("expected error for canceled context, got nil")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c := New(server.URL, WithTimeout(50*time.Millisecond))
	_, err := c.SignIn(context.Background(), SignInRequest{})
	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
}

func TestForgotPassword_Message(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/forgotpassword" {
			t.Errorf("expected path /user/forgotpassword, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(MessageResponse{Message: "check your inbox"})
	}))
	defer server.Close()

	resp, err := New(server.URL).ForgotPassword(context.Background(), ForgotPasswordRequest{Email: "a@b.co"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Message != "check your inbox" {
		t.Errorf("expected message, got %q", resp.Message)
	}
}

func TestRateLimit_WaitHonorsContext(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(MessageResponse{})
	}))
	defer server.Close()

	c := New(server.URL, WithRateLimit(0.001, 1))
	if _, err := c.ForgotPassword(context.Background(), ForgotPasswordRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.ForgotPassword(ctx, ForgotPasswordRequest{})
	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected TransportError while paced, got %T: %v", err, err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call to reach the server, got %d", calls)
	}
}
