// Package api serves kitty reports over HTTP.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Config holds the HTTP responder settings.
type Config struct {
	Bind    string   // listen address, like ":8080".
	Origins []string // CORS allowed origins, all when empty.
	Check   bool     // verify every report invariants before responding.
	MaxBody int64    // maximum request body size in bytes.
}

// DefaultMaxBody is used when Config.MaxBody is not set.
const DefaultMaxBody = 1 << 20

type API struct {
	router *mux.Router
	config Config
}

// New creates the API and its routes.
func New(cfg Config) *API {
	if cfg.MaxBody <= 0 {
		cfg.MaxBody = DefaultMaxBody
	}
	a := &API{router: mux.NewRouter(), config: cfg}
	a.setupRoutes()
	return a
}

func (a *API) setupRoutes() {
	a.router.Use(logRequests)
	a.router.HandleFunc("/api/health", a.handleHealth).Methods("GET")
	a.router.HandleFunc("/api/settle", a.handleSettle).Methods("POST")
	a.router.HandleFunc("/api/settle.md", a.handleSettleMarkdown).Methods("POST")
	a.router.HandleFunc("/api/settle.xlsx", a.handleSettleWorkbook).Methods("POST")
}

// Handler returns the router wrapped with CORS handling.
func (a *API) Handler() http.Handler {
	origins := a.config.Origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	// When AllowedOrigins is "*", AllowCredentials must be false.
	corsOptions := cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
	}
	return cors.New(corsOptions).Handler(a.router)
}

// Start listens until ctx is done, then shuts the server down.
func (a *API) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.config.Bind,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		slog.Info("API server listening", "addr", a.config.Bind)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
		r.ResponseWriter.WriteHeader(status)
	}
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	return r.ResponseWriter.Write(b)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
	})
}
