// Package chi serves the pagelens web form over HTTP using the chi router.
package chi

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/pagelens"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Config holds the server settings.
type Config struct {
	Addr string

	// RequestTimeout bounds a whole request, including every model call.
	RequestTimeout time.Duration

	// RatePerMinute and Burst limit analysis requests per client IP.
	RatePerMinute float64
	Burst         int
}

// DefaultConfig returns the settings used when no flags are given.
func DefaultConfig() Config {
	return Config{
		Addr:           ":8080",
		RequestTimeout: 3 * time.Minute,
		RatePerMinute:  6,
		Burst:          3,
	}
}

// Metrics records served requests and exposes them for scraping.
type Metrics interface {
	ObserveHTTP(method, route string, status int, d time.Duration)
	Handler() http.Handler
}

// Server is the HTTP front end.
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router
	config Config

	Analyzer pagelens.Analyzer
	Logger   *slog.Logger

	// Metrics is optional. When set, requests are recorded and /metrics is
	// served.
	Metrics Metrics

	limiter *ClientLimiter
}

// NewServer returns a Server. Routes are built on the first call to
// Handler or Open, so fields may be set after construction.
func NewServer(analyzer pagelens.Analyzer, config Config, logger *slog.Logger) *Server {
	def := DefaultConfig()
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = def.RequestTimeout
	}
	if config.RatePerMinute <= 0 {
		config.RatePerMinute = def.RatePerMinute
	}
	if config.Burst <= 0 {
		config.Burst = def.Burst
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		config:   config,
		Analyzer: analyzer,
		Logger:   logger,
		limiter:  NewClientLimiter(config.RatePerMinute, config.Burst),
	}
}

// Handler returns the router serving every route.
func (s *Server) Handler() http.Handler {
	if s.router == nil {
		s.router = s.routes()
	}
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(s.config.RequestTimeout))
		r.Get("/", s.handleIndex)
		r.With(s.limiter.Middleware).Post("/", s.handleAnalyze)
	})

	return r
}

// Open starts listening on the configured address and serves in the
// background.
func (s *Server) Open() error {
	addr := s.config.Addr
	if addr == "" {
		addr = DefaultConfig().Addr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return pagelens.Errorf(pagelens.ECONFIG, "listen on %s: %w", addr, err)
	}
	s.ln = ln
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.Logger.Handler(), slog.LevelError),
	}

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("serve", "err", err)
		}
	}()

	s.Logger.Info("listening", "addr", ln.Addr().String())
	return nil
}

// Addr returns the bound address, or "" before Open.
func (s *Server) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Close gracefully shuts down the server, waiting for in-flight requests
// until ctx is done.
func (s *Server) Close(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// logRequests logs each request and records it in Metrics.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			duration := time.Since(start)

			s.Logger.Info("http request",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"remote", r.RemoteAddr,
				"duration", duration,
			)

			if s.Metrics != nil {
				route := "unmatched"
				if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
					route = rctx.RoutePattern()
				}
				s.Metrics.ObserveHTTP(r.Method, route, status, duration)
			}
		}()
		next.ServeHTTP(ww, r)
	})
}
