// ABOUTME: Navigation and sign-out commands for the cryptoqa CLI
// ABOUTME: Shows the menu derived from the stored session, or clears it

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ratatouille99337/CryptoQA/internal/navigation"
	"github.com/Ratatouille99337/CryptoQA/internal/session"
)

var navCmd = &cobra.Command{
	Use:   "nav",
	Short: "Show the navigation for the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		runWithDeps(runNav)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		runWithDeps(runLogout)
	},
}

func init() {
	rootCmd.AddCommand(navCmd, logoutCmd)
}

// runNav prints the navigation entries and returns exit code
func runNav(ctx context.Context, w io.Writer, d *deps) int {
	entries, state, err := navigation.Load(ctx, d.sessions)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatNavJSON(state, entries))
	} else {
		fmt.Fprintln(w, formatNavHuman(state, entries, time.Now()))
	}
	return exitOK
}

// formatNavHuman formats the session and its navigation for human readability
func formatNavHuman(state *session.State, entries []navigation.Entry, now time.Time) string {
	if state == nil {
		return "Not signed in. Run 'cryptoqa signin' first."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Signed in:  %s\n", state.Data.User.Email))
	if state.Role() != "" {
		sb.WriteString(fmt.Sprintf("Role:       %s\n", state.Role()))
	}
	switch {
	case state.ExpiresAt.IsZero():
	case state.Expired(now):
		sb.WriteString("Expires:    expired, sign in again\n")
	default:
		sb.WriteString(fmt.Sprintf("Expires:    %s\n", state.ExpiresAt.Format(time.RFC3339)))
	}

	sb.WriteString("\n")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("  %-10s %-10s %-18s %s\n", e.ID, e.Title, e.URL, e.Subtitle))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatNavJSON formats the session and its navigation as JSON
func formatNavJSON(state *session.State, entries []navigation.Entry) string {
	output := map[string]interface{}{
		"signed_in":  state != nil,
		"navigation": entries,
	}
	if state != nil {
		output["email"] = state.Data.User.Email
		output["role"] = state.Role()
		if !state.ExpiresAt.IsZero() {
			output["expires_at"] = state.ExpiresAt
		}
	}
	return marshalOutput(output)
}

// runLogout clears the stored session and returns exit code
func runLogout(ctx context.Context, w io.Writer, d *deps) int {
	if err := d.sessions.Clear(ctx); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}
	fmt.Fprintln(w, "Signed out")
	return exitOK
}
