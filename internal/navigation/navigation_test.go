// ABOUTME: Tests for navigation menu construction
// ABOUTME: Verifies signed-out, signed-in, and role-independent menus

package navigation

import (
	"context"
	"errors"
	"testing"

	"github.com/Ratatouille99337/CryptoQA/internal/session"
)

func TestBuild_NoSession(t *testing.T) {
	entries := Build(nil)
	if entries == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestBuild_SignedIn(t *testing.T) {
	entries := Build(session.NewState(session.Data{Role: "user"}))

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	want := []Entry{
		{ID: "dashboard", Title: "Dashboard", Subtitle: "CryptoQ&A Dashboard", Type: "item", Icon: "heroicons-outline:home", URL: "/wbt-dashboard"},
		{ID: "manage", Title: "User Data", Subtitle: "Manage all users", Type: "item", Icon: "heroicons-outline:cube", URL: "/wbt-manage"},
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d: expected %+v, got %+v", i, want[i], entries[i])
		}
	}
}

func TestBuild_RoleDoesNotChangeEntries(t *testing.T) {
	admin := Build(session.NewState(session.Data{Role: "admin"}))
	user := Build(session.NewState(session.Data{Role: "user"}))
	none := Build(session.NewState(session.Data{}))

	for i := range admin {
		if admin[i] != user[i] || admin[i] != none[i] {
			t.Errorf("entry %d differs by role", i)
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	state := session.NewState(session.Data{Role: "admin"})
	a, b := Build(state), Build(state)
	if len(a) != len(b) {
		t.Fatalf("expected equal lengths, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("entry %d differs between calls", i)
		}
	}
}

type fakeSource struct {
	state *session.State
	err   error
}

func (f fakeSource) Load(context.Context) (*session.State, error) {
	return f.state, f.err
}

func TestLoad(t *testing.T) {
	entries, state, err := Load(context.Background(), fakeSource{state: session.NewState(session.Data{Role: "admin"})})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Role() != "admin" {
		t.Errorf("expected role admin, got %s", state.Role())
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}

	_, _, err = Load(context.Background(), fakeSource{err: errors.New("boom")})
	if err == nil {
		t.Error("expected error from source, got nil")
	}
}

func TestLoad_MalformedSessionGivesEmptyMenu(t *testing.T) {
	store := session.NewMemoryStore()
	if err := store.Set(context.Background(), session.Key, []byte("garbage")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, state, err := Load(context.Background(), session.NewProvider(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != nil {
		t.Errorf("expected no session, got %+v", state)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}
