// ABOUTME: Dev Auth API command for the cryptoqa CLI
// ABOUTME: Serves the Auth API contract from memory until interrupted

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ratatouille99337/CryptoQA/internal/config"
	"github.com/Ratatouille99337/CryptoQA/internal/devapi"
)

var devPort string

var devAPICmd = &cobra.Command{
	Use:   "dev-api",
	Short: "Run a local Auth API for development",
	Long: `Run an in-memory Auth API on localhost. A demo account admin@fusetheme.com
with password admin is created at start. Reset codes are written to the log.

Environment Variables:
  CRYPTOQA_DEV_PORT              Listen port (default: 4000)
  CRYPTOQA_DEV_JWT_SECRET        HS256 signing secret for access tokens
  CRYPTOQA_DEV_RATE_LIMIT        Requests per minute per client on /user/* (default: 30)
  CRYPTOQA_CORS_ALLOWED_ORIGINS  Comma-separated browser origins (default: http://localhost:3000)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if devPort != "" {
			cfg.DevPort = devPort
		}

		exitCode := runDevAPI(ctx, os.Stdout, cfg, net.JoinHostPort("localhost", cfg.DevPort))
		if exitCode != 0 {
			cancel()
			os.Exit(exitCode)
		}
	},
}

func init() {
	devAPICmd.Flags().StringVar(&devPort, "port", "", "Listen port (overrides CRYPTOQA_DEV_PORT)")
	rootCmd.AddCommand(devAPICmd)
}

// runDevAPI serves until ctx is done and returns exit code
func runDevAPI(ctx context.Context, w io.Writer, cfg *config.Config, addr string) int {
	srv, err := devapi.New(devapi.Options{
		JWTSecret:      cfg.DevJWTSecret,
		RateLimit:      cfg.DevRateLimit,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		SeedDemo:       true,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	defer srv.Close()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitTransport
	}

	httpSrv := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.Serve(ln)
	}()

	fmt.Fprintf(w, "Dev Auth API listening on http://%s%s\n", ln.Addr(), devapi.BasePath)
	slog.Info("Dev Auth API started", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitTransport
		}
		return exitOK
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("Dev Auth API shutdown incomplete", "error", err)
	}
	slog.Info("Dev Auth API stopped")
	return exitOK
}
