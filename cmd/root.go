// ABOUTME: Root command for the cryptoqa CLI
// ABOUTME: Handles global flags, configuration, and logging setup

package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ratatouille99337/CryptoQA/internal/config"
	"github.com/Ratatouille99337/CryptoQA/internal/logger"
)

var (
	apiURL       string
	jsonOutput   bool
	sessionStore string
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "cryptoqa",
	Short: "Terminal client for CryptoQ&A accounts",
	Long: `cryptoqa signs you in to CryptoQ&A from the terminal.

It submits the sign-in, sign-up, and password recovery forms to the Auth API,
keeps the session locally, and shows the navigation available to it.

Environment Variables:
  CRYPTOQA_API_URL        Auth API URL (default: http://localhost:4000/api/v1)
  CRYPTOQA_CONFIG_DIR     Directory for the session and debug log (default: ~/.config/cryptoqa)
  CRYPTOQA_SESSION_STORE  Session store: file, redis, memory (default: file)
  CRYPTOQA_REDIS_ADDR     Redis address for the redis store (default: localhost:6379)
  CRYPTOQA_GOOGLE_CLIENT_ID  OAuth client ID used to verify Google ID tokens
  LOG_LEVEL               debug, info, warn, error (default: info)
  LOG_FORMAT              text, json (default: text)`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// The TUI owns the terminal and logs to a file instead
		if cmd.Name() != "tui" {
			logger.Init(os.Stderr)
		}
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Auth API URL (overrides CRYPTOQA_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().StringVar(&sessionStore, "session-store", "", "Session store: file, redis, memory (overrides CRYPTOQA_SESSION_STORE)")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return strings.TrimRight(apiURL, "/")
	}
	if envURL := os.Getenv("CRYPTOQA_API_URL"); envURL != "" {
		return strings.TrimRight(envURL, "/")
	}
	return config.DefaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// loadConfig reads the environment and applies global flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.APIURL = GetAPIURL()
	if sessionStore != "" {
		cfg.SessionStore = strings.ToLower(sessionStore)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
