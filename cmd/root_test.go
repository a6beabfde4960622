// ABOUTME: Tests for the root command and global flag handling
// ABOUTME: Verifies environment variable and flag configuration

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Ratatouille99337/CryptoQA/internal/config"
)

func TestGetAPIURL_Default(t *testing.T) {
	os.Unsetenv("CRYPTOQA_API_URL")
	apiURL = "" // Reset flag

	url := GetAPIURL()
	if url != config.DefaultAPIURL {
		t.Errorf("expected default URL %s, got %s", config.DefaultAPIURL, url)
	}
}

func TestGetAPIURL_FromEnv(t *testing.T) {
	os.Setenv("CRYPTOQA_API_URL", "https://api.cryptoqa.io/api/v1/")
	defer os.Unsetenv("CRYPTOQA_API_URL")
	apiURL = "" // Reset flag

	url := GetAPIURL()
	if url != "https://api.cryptoqa.io/api/v1" {
		t.Errorf("expected https://api.cryptoqa.io/api/v1, got %s", url)
	}
}

func TestGetAPIURL_FlagOverridesEnv(t *testing.T) {
	os.Setenv("CRYPTOQA_API_URL", "https://api.cryptoqa.io/api/v1")
	defer os.Unsetenv("CRYPTOQA_API_URL")
	apiURL = "http://flag-override.example.com/"
	defer func() { apiURL = "" }()

	url := GetAPIURL()
	if url != "http://flag-override.example.com" {
		t.Errorf("expected flag to override env, got %s", url)
	}
}

func TestJSONOutput(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	if !IsJSONOutput() {
		t.Error("expected IsJSONOutput to return true")
	}
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	t.Setenv("CRYPTOQA_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("CRYPTOQA_CONFIG_DIR", t.TempDir())
	t.Setenv("CRYPTOQA_SESSION_STORE", "file")
	apiURL = "http://localhost:9999/api/v1"
	sessionStore = "MEMORY"
	defer func() {
		apiURL = ""
		sessionStore = ""
	}()

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://localhost:9999/api/v1" {
		t.Errorf("expected API URL from flag, got %s", cfg.APIURL)
	}
	if cfg.SessionStore != config.StoreMemory {
		t.Errorf("expected memory store from flag, got %s", cfg.SessionStore)
	}
}

func TestLoadConfig_InvalidStore(t *testing.T) {
	t.Setenv("CRYPTOQA_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("CRYPTOQA_CONFIG_DIR", t.TempDir())
	sessionStore = "sqlite"
	defer func() { sessionStore = "" }()

	if _, err := loadConfig(); err == nil {
		t.Error("expected error for unknown session store")
	}
}

func TestOpenStore_Memory(t *testing.T) {
	store, closer, err := openStore(t.Context(), &config.Config{SessionStore: config.StoreMemory})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store == nil {
		t.Error("expected a store")
	}
	if closer != nil {
		t.Error("expected no closer for the memory store")
	}
}

func TestOpenStore_File(t *testing.T) {
	dir := t.TempDir()
	store, _, err := openStore(t.Context(), &config.Config{SessionStore: config.StoreFile, ConfigDir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Set(t.Context(), "currentUserData", []byte(`{}`)); err != nil {
		t.Fatalf("unexpected error writing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "currentUserData.json")); err != nil {
		t.Errorf("expected session file in config dir: %v", err)
	}
}

func TestOpenStore_RedisUnreachable(t *testing.T) {
	cfg := &config.Config{SessionStore: config.StoreRedis, RedisAddr: "127.0.0.1:1"}
	if _, _, err := openStore(t.Context(), cfg); err == nil {
		t.Error("expected error for unreachable redis")
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"signin", "signup", "forgot-password", "reset-password", "google", "nav", "logout", "tui", "dev-api"}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected command %q to be registered", name)
		}
	}
}
