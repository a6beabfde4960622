// ABOUTME: Local development server implementing the CryptoQ&A Auth API contract
// ABOUTME: Keeps accounts and reset codes in memory and issues HS256 access tokens

package devapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	slogchi "github.com/samber/slog-chi"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ratatouille99337/CryptoQA/internal/cache"
)

// BasePath is where the Auth API is mounted
const BasePath = "/api/v1"

const (
	DemoEmail       = "admin@fusetheme.com"
	DemoPassword    = "admin"
	demoDisplayName = "Abbott Keitch"
)

// Options configures the dev server
type Options struct {
	JWTSecret      string
	TokenTTL       time.Duration
	ResetCodeTTL   time.Duration
	RateLimit      int
	RateWindow     time.Duration
	AllowedOrigins []string
	HashCost       int
	SeedDemo       bool
	// DeliverResetCode hands a reset code to the account owner. The default logs it.
	DeliverResetCode func(email, code string)
}

func (o *Options) applyDefaults() {
	if o.TokenTTL == 0 {
		o.TokenTTL = 24 * time.Hour
	}
	if o.ResetCodeTTL == 0 {
		o.ResetCodeTTL = 15 * time.Minute
	}
	if o.RateWindow == 0 {
		o.RateWindow = time.Minute
	}
	if o.HashCost == 0 {
		o.HashCost = bcrypt.DefaultCost
	}
	if o.DeliverResetCode == nil {
		o.DeliverResetCode = logResetCode
	}
	if len(o.AllowedOrigins) == 0 {
		o.AllowedOrigins = []string{"http://localhost:3000"}
	}
}

// There is no mail transport in development; the log is the delivery channel
func logResetCode(email, code string) {
	slog.Info("Password reset code issued", "email", email, "code", code)
}

// Server is the dev Auth API
type Server struct {
	opts     Options
	accounts *accounts
	resets   *cache.Cache[string]
	limiter  *RateLimiter
	router   chi.Router
}

// New builds a server. The demo account is seeded when opts.SeedDemo is set.
func New(opts Options) (*Server, error) {
	if opts.JWTSecret == "" {
		return nil, errors.New("dev api: JWT secret is required")
	}
	opts.applyDefaults()

	s := &Server{
		opts:     opts,
		accounts: newAccounts(opts.HashCost),
		resets:   cache.New[string](opts.ResetCodeTTL),
	}
	if opts.RateLimit > 0 {
		s.limiter = NewRateLimiter(opts.RateLimit, opts.RateWindow)
	}

	if opts.SeedDemo {
		if _, err := s.accounts.create(account{
			Email:       DemoEmail,
			DisplayName: demoDisplayName,
			Role:        "admin",
		}, DemoPassword); err != nil {
			s.Close()
			return nil, err
		}
		slog.Info("Seeded demo account", "email", DemoEmail)
	}

	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases background resources
func (s *Server) Close() {
	s.resets.Close()
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(slogchi.New(slog.Default()))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	})

	r.Route(BasePath, func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Route("/user", func(r chi.Router) {
			r.Use(RateLimit(s.limiter, ClientIP))
			r.Post("/signin", s.handleSignIn)
			r.Post("/signup", s.handleSignUp)
			r.Post("/google", s.handleGoogle)
			r.Post("/forgotpassword", s.handleForgotPassword)
			r.Post("/resetpassword", s.handleResetPassword)
		})
	})
	return r
}
