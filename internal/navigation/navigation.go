// ABOUTME: Builds the application navigation menu from the signed-in session
// ABOUTME: Signed-out users get no entries; signed-in users get the fixed dashboard entries

package navigation

import (
	"context"

	"github.com/Ratatouille99337/CryptoQA/internal/session"
)

// Entry is one navigation menu item
type Entry struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Type     string `json:"type"`
	Icon     string `json:"icon"`
	URL      string `json:"url"`
}

const (
	DashboardURL = "/wbt-dashboard"
	ManageURL    = "/wbt-manage"
	SignInURL    = "/sign-in"
)

// Build returns the menu for a session. It is pure: the same session always
// yields the same entries, and a nil session yields an empty menu.
func Build(state *session.State) []Entry {
	if state == nil {
		return []Entry{}
	}
	return []Entry{
		{
			ID:       "dashboard",
			Title:    "Dashboard",
			Subtitle: "CryptoQ&A Dashboard",
			Type:     "item",
			Icon:     "heroicons-outline:home",
			URL:      DashboardURL,
		},
		{
			ID:       "manage",
			Title:    "User Data",
			Subtitle: "Manage all users",
			Type:     "item",
			Icon:     "heroicons-outline:cube",
			URL:      ManageURL,
		},
	}
}

// SessionSource supplies the current session
type SessionSource interface {
	Load(ctx context.Context) (*session.State, error)
}

// Load reads the session from src and builds its menu
func Load(ctx context.Context, src SessionSource) ([]Entry, *session.State, error) {
	state, err := src.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	return Build(state), state, nil
}
