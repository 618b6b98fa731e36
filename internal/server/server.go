package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/pavel-fokin/nas-files/internal/files"
	"github.com/pavel-fokin/nas-files/internal/sqlite"
	"github.com/pavel-fokin/nas-files/internal/users"
)

type Config struct {
	Addr             string `env:"NAS_FILES_ADDR" envDefault:":5000"`
	DBPath           string `env:"NAS_FILES_DB_PATH,required"`
	MaxSize          int64  `env:"NAS_FILES_MAX_SIZE" envDefault:"33554432"`
	CredentialScheme string `env:"NAS_FILES_CREDENTIAL_SCHEME" envDefault:"plain"`
	StrictOwnership  bool   `env:"NAS_FILES_STRICT_OWNERSHIP" envDefault:"false"`
}

func New(cfg *Config) *http.Server {
	// Initialize structured logger with JSON handler
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Initialize storage
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		panic(fmt.Sprintf("Failed to initialize database: %v", err))
	}

	verifier, err := users.NewVerifier(cfg.CredentialScheme)
	if err != nil {
		slog.Error("Failed to configure credential scheme", "error", err)
		panic(fmt.Sprintf("Failed to configure credential scheme: %v", err))
	}

	// Initialize services
	userService := users.NewService(sqlite.NewUserRepository(db), verifier)
	fileService := files.NewService(sqlite.NewFileRepository(db), cfg.StrictOwnership)

	validate := validator.New()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(loggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(limitBody(cfg.MaxSize))

	r.Get("/healthz", healthz)

	r.Route("/api", func(r chi.Router) {
		r.Post("/signup", signup(userService))
		r.Post("/login", login(userService, validate))
		r.Get("/user", getUser(userService))
		r.Post("/file", uploadFile(cfg, fileService))
		r.Get("/file", listFiles(fileService))
		r.Put("/file", updateFile(fileService))
		r.Delete("/file", deleteFile(fileService))
	})

	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func limitBody(maxSize int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxSize)
			next.ServeHTTP(w, r)
		})
	}
}

// loggingMiddleware logs HTTP requests with structured logging
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap the response writer to capture the status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)

		slog.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"status", wrapped.statusCode,
			"duration_ms", duration.Milliseconds(),
			"remote_addr", r.RemoteAddr,
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
