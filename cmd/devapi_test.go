// ABOUTME: Tests for the dev-api command
// ABOUTME: Starts and stops the server on an ephemeral port

package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Ratatouille99337/CryptoQA/internal/config"
)

func devConfig() *config.Config {
	return &config.Config{DevJWTSecret: "test-secret", DevRateLimit: 30}
}

func TestRunDevAPI_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	code := runDevAPI(ctx, &buf, devConfig(), "127.0.0.1:0")

	if code != exitOK {
		t.Errorf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Dev Auth API listening on http://127.0.0.1:") {
		t.Errorf("expected listen address, got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "/api/v1") {
		t.Errorf("expected base path, got: %s", buf.String())
	}
}

func TestRunDevAPI_BadAddress(t *testing.T) {
	var buf bytes.Buffer
	code := runDevAPI(context.Background(), &buf, devConfig(), "127.0.0.1:notaport")

	if code != exitTransport {
		t.Errorf("expected exit code 2, got %d", code)
	}
}

func TestRunDevAPI_MissingSecret(t *testing.T) {
	var buf bytes.Buffer
	code := runDevAPI(context.Background(), &buf, &config.Config{}, "127.0.0.1:0")

	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
}
