// ABOUTME: Shared fixtures for command tests
// ABOUTME: Runs commands against an in-process dev Auth API

package cmd

import (
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/Ratatouille99337/CryptoQA/internal/client"
	"github.com/Ratatouille99337/CryptoQA/internal/config"
	"github.com/Ratatouille99337/CryptoQA/internal/devapi"
	"github.com/Ratatouille99337/CryptoQA/internal/session"
)

// newTestDeps returns deps talking to a fresh dev Auth API with a memory session store
func newTestDeps(t *testing.T, opts devapi.Options) *deps {
	t.Helper()
	opts.JWTSecret = "test-secret"
	opts.HashCost = bcrypt.MinCost
	opts.SeedDemo = true

	srv, err := devapi.New(opts)
	if err != nil {
		t.Fatalf("failed to create dev API: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
	})

	return &deps{
		cfg:      &config.Config{APIURL: ts.URL + devapi.BasePath, SessionStore: config.StoreMemory},
		api:      client.New(ts.URL + devapi.BasePath),
		sessions: session.NewProvider(session.NewMemoryStore()),
	}
}

// newUnreachableDeps returns deps whose Auth API refuses connections
func newUnreachableDeps(t *testing.T) *deps {
	t.Helper()
	ts := httptest.NewServer(nil)
	url := ts.URL
	ts.Close()

	return &deps{
		cfg:      &config.Config{APIURL: url, SessionStore: config.StoreMemory},
		api:      client.New(url + devapi.BasePath),
		sessions: session.NewProvider(session.NewMemoryStore()),
	}
}
