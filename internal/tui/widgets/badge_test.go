// ABOUTME: Tests for status badges and session expiry grading
// ABOUTME: Verifies role badge text and expiry thresholds

package widgets

import (
	"strings"
	"testing"
	"time"
)

func TestRoleBadge(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{"admin", "ADMIN"},
		{"Admin", "ADMIN"},
		{"user", "USER"},
		{"", "GUEST"},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			got := RoleBadge(tt.role)
			if !strings.Contains(got, tt.want) {
				t.Errorf("expected badge to contain %q, got %q", tt.want, got)
			}
		})
	}
}

func TestExpiryLevel(t *testing.T) {
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		expiresAt time.Time
		want      StatusLevel
	}{
		{"unknown", time.Time{}, StatusNeutral},
		{"expired", now.Add(-time.Minute), StatusCritical},
		{"soon", now.Add(30 * time.Minute), StatusWarning},
		{"fresh", now.Add(24 * time.Hour), StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpiryLevel(tt.expiresAt, now); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestStatusText(t *testing.T) {
	got := StatusText("Signed in", StatusOK)
	if !strings.Contains(got, "Signed in") {
		t.Errorf("expected text in output, got %q", got)
	}
}
