// ABOUTME: Interactive TUI command for the cryptoqa CLI
// ABOUTME: Launches the bubbletea application with file-based logging

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Ratatouille99337/CryptoQA/internal/logger"
	"github.com/Ratatouille99337/CryptoQA/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive interface",
	Long: `Launch the interactive interface for signing in, creating an account, and
recovering a password. Logs go to debug.log in the config directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		runWithDeps(runTUI)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runTUI starts the interface and returns exit code
func runTUI(_ context.Context, w io.Writer, d *deps) int {
	if err := logger.InitFile(d.cfg.ConfigDir); err != nil {
		fmt.Fprintf(w, "Warning: logging disabled: %v\n", err)
	}
	defer logger.Close()

	slog.Info("Starting TUI", "api_url", d.cfg.APIURL, "session_store", d.cfg.SessionStore)
	if err := tui.Run(tui.Deps{API: d.api, Sessions: d.sessions}); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	return exitOK
}
