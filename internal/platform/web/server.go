// Package web serves the leaderboard as read-only JSON over HTTP.
package web

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
	"github.com/klauspost/compress/gzhttp"

	"github.com/vovakirdan/shapefall/internal/registry"
	"github.com/vovakirdan/shapefall/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Server exposes scores and per-mode statistics.
type Server struct {
	store  *storage.Store
	logger *log.Logger
	router chi.Router
	server *http.Server
}

// NewServer builds a server listening on addr. A nil store answers every
// data request with 503; a nil logger discards output.
func NewServer(addr string, store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Server{
		store:  store,
		logger: logger,
		router: chi.NewRouter(),
	}
	s.routes()

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok\n")
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/modes", s.handleModes)
		r.Get("/scores/{mode}", s.handleScores)
		r.Get("/stats/{mode}", s.handleStats)
	})
}

// Handler returns the routed handler with response compression.
func (s *Server) Handler() http.Handler {
	return gzhttp.GzipHandler(s.router)
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// ListenAndServe blocks until the server stops. A graceful shutdown is not
// reported as an error.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting HTTP server", "address", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// ModeSummary is one entry of /api/modes.
type ModeSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Games     int    `json:"games"`
	HighScore int    `json:"high_score"`
}

// RunJSON is one leaderboard row.
type RunJSON struct {
	Rank         int       `json:"rank"`
	Score        int       `json:"score"`
	Seed         int64     `json:"seed"`
	Moves        int       `json:"moves"`
	TilesCleared int       `json:"tiles_cleared"`
	LargestClear int       `json:"largest_clear"`
	BoardCleared bool      `json:"board_cleared"`
	CreatedAt    time.Time `json:"created_at"`
}

// StatsJSON summarizes every finished run of a mode.
type StatsJSON struct {
	Mode          string    `json:"mode"`
	Games         int       `json:"games"`
	HighScore     int       `json:"high_score"`
	AvgScore      float64   `json:"avg_score"`
	TilesCleared  int64     `json:"tiles_cleared"`
	LargestClear  int       `json:"largest_clear"`
	BoardsCleared int       `json:"boards_cleared"`
	LastPlayed    time.Time `json:"last_played,omitzero"`
}

func (s *Server) handleModes(w http.ResponseWriter, _ *http.Request) {
	var played map[string]*storage.GameStats
	if s.store != nil {
		var err error
		if played, err = s.store.GetAllGamesStats(); err != nil {
			s.logger.Warn("mode totals unavailable", "error", err)
		}
	}

	games := registry.List()
	modes := make([]ModeSummary, 0, len(games))
	for _, g := range games {
		m := ModeSummary{ID: g.ID, Title: g.Title}
		if st := played[g.ID]; st != nil {
			m.Games, m.HighScore = st.GamesCount, st.HighScore
		}
		modes = append(modes, m)
	}
	s.writeJSON(w, http.StatusOK, modes)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	mode, ok := s.modeParam(w, r)
	if !ok {
		return
	}

	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxLimit)
	}

	runs, err := s.store.TopRuns(mode, limit)
	if err != nil {
		s.logger.Error("cannot load scores", "mode", mode, "error", err)
		s.writeError(w, http.StatusInternalServerError, "cannot load scores")
		return
	}

	rows := make([]RunJSON, len(runs))
	for i, run := range runs {
		rows[i] = RunJSON{
			Rank:         i + 1,
			Score:        run.Score,
			Seed:         run.Seed,
			Moves:        run.Stats.Moves,
			TilesCleared: run.Stats.TilesCleared,
			LargestClear: run.Stats.LargestClear,
			BoardCleared: run.Stats.BoardCleared,
			CreatedAt:    run.CreatedAt,
		}
	}
	s.writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	mode, ok := s.modeParam(w, r)
	if !ok {
		return
	}

	st, err := s.store.GetGameStats(mode)
	if err != nil {
		s.logger.Error("cannot load stats", "mode", mode, "error", err)
		s.writeError(w, http.StatusInternalServerError, "cannot load stats")
		return
	}

	s.writeJSON(w, http.StatusOK, StatsJSON{
		Mode:          mode,
		Games:         st.GamesCount,
		HighScore:     st.HighScore,
		AvgScore:      st.AvgScore,
		TilesCleared:  st.TilesCleared,
		LargestClear:  st.LargestClear,
		BoardsCleared: st.BoardsCleared,
		LastPlayed:    st.LastPlayed,
	})
}

// modeParam validates the {mode} URL parameter and the store. It writes
// the error response itself and reports false on failure.
func (s *Server) modeParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	mode := chi.URLParam(r, "mode")
	if !registry.Exists(mode) {
		s.writeError(w, http.StatusNotFound, "unknown mode "+strconv.Quote(mode))
		return "", false
	}
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "scores database unavailable")
		return "", false
	}
	return mode, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("cannot encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
