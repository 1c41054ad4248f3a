package web

import (
	"compress/gzip"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/shapefall/internal/core"
	_ "github.com/vovakirdan/shapefall/internal/games/shapefall"
	"github.com/vovakirdan/shapefall/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewServer(":0", store, nil), store
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := get(t, srv.Handler(), "/healthz")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok\n" {
		t.Errorf("GET /healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestModes(t *testing.T) {
	srv, store := newTestServer(t)
	if _, err := store.SaveScore("shapefall", 77); err != nil {
		t.Fatal(err)
	}

	rec := get(t, srv.Handler(), "/api/modes")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var modes []ModeSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &modes); err != nil {
		t.Fatalf("decode: %v", err)
	}
	found := false
	for _, m := range modes {
		if m.ID == "shapefall" {
			found = m.HighScore == 77 && m.Games == 1
		}
	}
	if !found {
		t.Errorf("modes = %+v, want shapefall with high score 77", modes)
	}
}

func TestScores(t *testing.T) {
	srv, store := newTestServer(t)
	for i, score := range []int{30, 90, 60} {
		stats := core.RunStats{Moves: i + 1, TilesCleared: score / 3, LargestClear: 5}
		if _, err := store.SaveRun("shapefall", score, int64(i), stats); err != nil {
			t.Fatal(err)
		}
	}

	rec := get(t, srv.Handler(), "/api/scores/shapefall?limit=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var rows []RunJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Rank != 1 || rows[0].Score != 90 || rows[0].Seed != 1 || rows[0].Moves != 2 {
		t.Errorf("top row = %+v", rows[0])
	}
	if rows[1].Score != 60 {
		t.Errorf("second row score = %d, want 60", rows[1].Score)
	}
}

func TestScoresErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		path string
		code int
	}{
		{"/api/scores/tetris", http.StatusNotFound},
		{"/api/stats/tetris", http.StatusNotFound},
		{"/api/scores/shapefall?limit=0", http.StatusBadRequest},
		{"/api/scores/shapefall?limit=abc", http.StatusBadRequest},
		{"/api/nothing", http.StatusNotFound},
	}
	for _, tt := range tests {
		if rec := get(t, srv.Handler(), tt.path); rec.Code != tt.code {
			t.Errorf("GET %s = %d, want %d", tt.path, rec.Code, tt.code)
		}
	}

	noStore := NewServer(":0", nil, nil)
	if rec := get(t, noStore.Handler(), "/api/scores/shapefall"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("without store = %d, want 503", rec.Code)
	}
}

func TestStats(t *testing.T) {
	srv, store := newTestServer(t)
	store.SaveRun("shapefall_endless", 100, 1, core.RunStats{Moves: 4, TilesCleared: 20, LargestClear: 9, BoardCleared: true})
	store.SaveRun("shapefall_endless", 50, 2, core.RunStats{Moves: 2, TilesCleared: 8, LargestClear: 4})

	rec := get(t, srv.Handler(), "/api/stats/shapefall_endless")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var st StatsJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.Games != 2 || st.HighScore != 100 || st.TilesCleared != 28 || st.LargestClear != 9 || st.BoardsCleared != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestLargeResponsesAreCompressed(t *testing.T) {
	srv, store := newTestServer(t)
	for i := range 40 {
		store.SaveRun("shapefall", 1000+i, int64(i), core.RunStats{Moves: i, TilesCleared: 3 * i, LargestClear: 3})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/scores/shapefall?limit=40", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", rec.Header().Get("Content-Encoding"))
	}
	zr, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	var rows []RunJSON
	if err := json.NewDecoder(zr).Decode(&rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 40 || rows[0].Score != 1039 {
		t.Errorf("got %d rows, top %d", len(rows), rows[0].Score)
	}
}
