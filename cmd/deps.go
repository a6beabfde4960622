// ABOUTME: Wires the Auth API client and session provider for commands
// ABOUTME: Picks the session store backend from configuration

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ratatouille99337/CryptoQA/internal/client"
	"github.com/Ratatouille99337/CryptoQA/internal/config"
	"github.com/Ratatouille99337/CryptoQA/internal/session"
)

// Requests per second and burst allowed towards the Auth API
const (
	apiRate  = 2
	apiBurst = 4
)

// redisPrefix namespaces session keys in a shared redis
const redisPrefix = "cryptoqa:"

type deps struct {
	cfg      *config.Config
	api      *client.Client
	sessions *session.Provider
	closers  []func() error
}

func newDeps(ctx context.Context, cfg *config.Config) (*deps, error) {
	store, closer, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	d := &deps{
		cfg:      cfg,
		api:      client.New(cfg.APIURL, client.WithTimeout(cfg.HTTPTimeout), client.WithRateLimit(apiRate, apiBurst)),
		sessions: session.NewProvider(store),
	}
	if closer != nil {
		d.closers = append(d.closers, closer)
	}
	return d, nil
}

// Close releases store connections
func (d *deps) Close() {
	for _, c := range d.closers {
		c()
	}
}

// openStore returns the session store named by the configuration and an
// optional function that releases it
func openStore(ctx context.Context, cfg *config.Config) (session.Store, func() error, error) {
	switch cfg.SessionStore {
	case config.StoreMemory:
		return session.NewMemoryStore(), nil, nil

	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return session.NewRedisStore(rdb, redisPrefix, 0), rdb.Close, nil

	default:
		return session.NewFileStore(cfg.ConfigDir), nil, nil
	}
}

// runWithDeps builds the dependencies, runs fn, and exits with its code.
// Configuration errors exit 1; an unreachable session store exits 2.
func runWithDeps(fn func(ctx context.Context, w io.Writer, d *deps) int) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	exitCode := func() int {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		d, err := newDeps(ctx, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 2
		}
		defer d.Close()
		return fn(ctx, os.Stdout, d)
	}()

	if exitCode != 0 {
		cancel()
		os.Exit(exitCode)
	}
}
