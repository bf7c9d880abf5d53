package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"atelier/internal/cache"
	"atelier/internal/model"
	"atelier/internal/notify"
	"atelier/internal/schedule"
	"atelier/internal/slots"
)

// Options wires the server dependencies together.
type Options struct {
	Port       int
	AdminToken string

	Exceptions ExceptionStore
	Bookings   BookingStore
	Resolver   *schedule.Resolver
	Generator  *slots.Generator

	// Cache is optional; nil disables it.
	Cache *cache.ExceptionCache
	// Notifier defaults to notify.Noop.
	Notifier notify.Notifier

	// BookingRate limits public reservation attempts per minute.
	BookingRate  float64
	BookingBurst int

	// ReadyCheck reports store readiness for /readyz. Optional.
	ReadyCheck func(ctx context.Context) error

	Logger *zerolog.Logger
}

// HTTPServer serves the booking calendar, admin panel, and status widget
// their JSON API. All schedule logic lives in the resolver; handlers only
// fetch, validate, and render.
type HTTPServer struct {
	exceptions ExceptionStore
	bookings   BookingStore
	resolver   *schedule.Resolver
	generator  *slots.Generator
	cache      *cache.ExceptionCache
	notifier   notify.Notifier
	limiter    *rate.Limiter
	ready      func(ctx context.Context) error
	adminToken string
	port       int
	logger     *zerolog.Logger
}

func NewHTTPServer(opts Options) *HTTPServer {
	if opts.Notifier == nil {
		opts.Notifier = notify.Noop{}
	}
	perMinute := opts.BookingRate
	if perMinute <= 0 {
		perMinute = 10
	}
	burst := opts.BookingBurst
	if burst <= 0 {
		burst = 5
	}
	return &HTTPServer{
		exceptions: opts.Exceptions,
		bookings:   opts.Bookings,
		resolver:   opts.Resolver,
		generator:  opts.Generator,
		cache:      opts.Cache,
		notifier:   opts.Notifier,
		limiter:    rate.NewLimiter(rate.Limit(perMinute/60), burst),
		ready:      opts.ReadyCheck,
		adminToken: opts.AdminToken,
		port:       opts.Port,
		logger:     opts.Logger,
	}
}

// Handler builds the route table.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.withRequestID(s.handleStatus))
	mux.HandleFunc("/api/v1/slots", s.withRequestID(s.handleSlots))
	mux.HandleFunc("/api/v1/reservations", s.withRequestID(s.handleReservations))
	mux.HandleFunc("/api/v1/blocks", s.withRequestID(s.handleBlocks))
	mux.HandleFunc("/api/v1/exceptions", s.withRequestID(s.handleExceptions))
	mux.HandleFunc("/api/v1/export", s.withRequestID(s.handleExport))
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/readyz", s.handleReadyz)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()

	s.logger.Info().Int("port", s.port).Msg("API server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) withRequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		w.Header().Set("X-Request-ID", requestID)
		start := time.Now()
		next(w, r)
		s.logger.Debug().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}

// isAdmin checks the bearer token from config. Not an authentication
// mechanism, just the gate in front of the admin panel endpoints.
func (s *HTTPServer) isAdmin(r *http.Request) bool {
	if s.adminToken == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+s.adminToken
}

func (s *HTTPServer) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if !s.isAdmin(r) {
		writeError(w, http.StatusUnauthorized, "Accès réservé à l'administrateur.")
		return false
	}
	return true
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *HTTPServer) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		ctxPing, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()
		if err := s.ready(ctxPing); err != nil {
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// weekExceptions loads the forward exceptions window used by the status
// evaluator, read-through the cache. Store failures degrade to an empty
// window; rendering never breaks because the backend is away.
func (s *HTTPServer) weekExceptions(ctx context.Context, now time.Time) map[string]*model.Exception {
	from := model.DateKeyOf(now)
	to := model.DateKeyOf(now.AddDate(0, 0, 7))

	if list, ok := s.cache.GetWindow(ctx, from, to); ok {
		return model.ExceptionMap(list)
	}

	list, err := s.exceptions.ListExceptions(ctx, from, to)
	if err != nil {
		s.logger.Error().Err(err).Msg("load exceptions window failed; using defaults")
		return map[string]*model.Exception{}
	}
	s.cache.SetWindow(ctx, from, to, list)
	return model.ExceptionMap(list)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}
