// Package httpapi exposes the arcade store over HTTP: catalog, stats,
// session history, settings and the transfer document.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/arcade-hub/internal/registry"
	"github.com/vovakirdan/arcade-hub/internal/store"
)

// maxImportBytes caps the size of an uploaded transfer document.
const maxImportBytes = 8 << 20

// Server handles HTTP requests against a shared store.
type Server struct {
	registry  *registry.Registry
	store     *store.Store
	logger    *log.Logger
	startTime time.Time
}

// NewServer creates a new API server.
func NewServer(reg *registry.Registry, st *store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		registry:  reg,
		store:     st,
		logger:    logger,
		startTime: time.Now(),
	}
}

// Routes sets up the HTTP routes with middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/live", s.handleLive)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))

			r.Get("/games", s.handleListGames)
			r.Get("/stats", s.handleStats)
			r.Get("/sessions", s.handleSessions)
			r.Get("/export", s.handleExport)
			r.Post("/import", s.handleImport)

			r.Get("/settings", s.handleSettings)
			r.Put("/settings/volume", s.handleSetVolume)
			r.Post("/settings/theme/toggle", s.handleToggleTheme)
		})
	})

	return r
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// errorResponse is the body of every non-2xx answer.
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// writeJSON writes a JSON response with proper headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("cannot encode response", "error", err)
	}
}

// writeError writes a structured error response.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	s.writeJSON(w, status, errorResponse{
		Error:     err.Error(),
		RequestID: middleware.GetReqID(r.Context()),
	})
}

type healthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Uptime: time.Since(s.startTime).Round(time.Second).String(),
	})
}

type gameResponse struct {
	registry.Descriptor
	HighScore *int `json:"highScore"`
}

func (s *Server) handleListGames(w http.ResponseWriter, _ *http.Request) {
	list := s.registry.List()
	out := make([]gameResponse, len(list))
	for i, d := range list {
		out[i] = gameResponse{Descriptor: d}
		if best, ok := s.store.HighScore(d.ID); ok {
			out[i].HighScore = &best
		}
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.Stats(s.registry.IDs()))
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, http.StatusBadRequest, errors.New("limit must be a non-negative integer"))
			return
		}
		limit = n
	}
	sessions := s.store.Sessions(q.Get("game"), limit)
	if sessions == nil {
		sessions = []store.Session{}
	}
	s.writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.Export()
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="arcade-export.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck // client went away
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		s.writeError(w, r, http.StatusRequestEntityTooLarge, err)
		return
	}
	if err := s.store.Import(data); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrInvalidTransfer) {
			status = http.StatusBadRequest
		}
		s.writeError(w, r, status, err)
		return
	}
	s.logger.Info("import accepted", "bytes", len(data), "remote", r.RemoteAddr)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSettings(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.Settings())
}

type volumeRequest struct {
	Volume *float64 `json:"volume"`
}

func (s *Server) handleSetVolume(w http.ResponseWriter, r *http.Request) {
	var req volumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Volume == nil {
		s.writeError(w, r, http.StatusBadRequest, errors.New(`body must be {"volume": number}`))
		return
	}
	if err := s.store.SetVolume(*req.Volume); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.store.Settings())
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.ToggleTheme(); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.store.Settings())
}

// ListenAndServe serves the API on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP API", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP API...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
