package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/shapefall/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("shapefall", 42); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	if high, _ := store.HighScore("shapefall"); high != 42 {
		t.Errorf("HighScore() after reopen = %d, want 42", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("shapefall", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("shapefall_endless", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopRuns("shapefall", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
	}

	endless, err := store.TopRuns("shapefall_endless", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(endless) != 1 {
		t.Errorf("Expected 1 endless score, got %d", len(endless))
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		store.SaveScore("test", (i+1)*100)
	}

	scores, err := store.TopRuns("test", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("shapefall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("shapefall", 100)
	store.SaveScore("shapefall", 300)
	store.SaveScore("shapefall", 200)

	high, err = store.HighScore("shapefall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreSaveRun(t *testing.T) {
	store := openTestStore(t)

	first := core.RunStats{Moves: 12, TilesCleared: 60, LargestClear: 15}
	second := core.RunStats{Moves: 20, TilesCleared: 72, LargestClear: 9, BoardCleared: true}

	if _, err := store.SaveRun("shapefall", 180, 7, first); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun("shapefall", 1090, 8, second); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.RecentRuns("shapefall", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].Score != 1090 || runs[0].Seed != 8 || runs[0].Stats != second {
		t.Errorf("newest run = %+v", runs[0])
	}
	if runs[1].Stats != first {
		t.Errorf("oldest run stats = %+v, want %+v", runs[1].Stats, first)
	}

	// Runs also count as scores
	if high, _ := store.HighScore("shapefall"); high != 1090 {
		t.Errorf("HighScore() = %d, want 1090", high)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun("shapefall", 100, 1, core.RunStats{Moves: 5, TilesCleared: 30, LargestClear: 10})
	store.SaveRun("shapefall", 300, 2, core.RunStats{Moves: 9, TilesCleared: 72, LargestClear: 20, BoardCleared: true})

	stats, err := store.GetGameStats("shapefall")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalScore != 400 {
		t.Errorf("score stats = %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
	if stats.TilesCleared != 102 || stats.LargestClear != 20 || stats.BoardsCleared != 1 {
		t.Errorf("run stats = %+v", stats)
	}

	empty, err := store.GetGameStats("nothing")
	if err != nil {
		t.Fatalf("GetGameStats() on empty game failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 1 || all["shapefall"] == nil {
		t.Errorf("GetAllGamesStats() = %v", all)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun("shapefall", 100, 1, core.RunStats{Moves: 1})
	store.SaveScore("shapefall", 200)
	store.SaveScore("shapefall_endless", 300)

	n, err := store.ClearScores("shapefall")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("ClearScores() removed %d scores, want 2", n)
	}

	if scores, _ := store.TopRuns("shapefall", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if runs, _ := store.RecentRuns("shapefall", 10); len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	if endless, _ := store.TopRuns("shapefall_endless", 10); len(endless) != 1 {
		t.Error("Endless scores should not be affected by clearing classic")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~/.shapefall/scores.db", filepath.Join(home, ".shapefall", "scores.db")},
		{"/tmp/scores.db", "/tmp/scores.db"},
		{"scores.db", "scores.db"},
	}
	for _, tt := range tests {
		got, err := expandHome(tt.in)
		if err != nil {
			t.Fatalf("expandHome(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("expandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreTopRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("shapefall", 500)
	store.SaveRun("shapefall", 900, 3, core.RunStats{Moves: 4, TilesCleared: 40, LargestClear: 30})
	store.SaveRun("shapefall", 100, 4, core.RunStats{Moves: 2, TilesCleared: 6, LargestClear: 3})

	runs, err := store.TopRuns("shapefall", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(runs))
	}

	wantScores := []int{900, 500, 100}
	for i, w := range wantScores {
		if runs[i].Score != w {
			t.Errorf("runs[%d].Score = %d, want %d", i, runs[i].Score, w)
		}
	}
	if runs[0].Stats.LargestClear != 30 {
		t.Errorf("top run largest clear = %d, want 30", runs[0].Stats.LargestClear)
	}
	if runs[1].ID != 0 || runs[1].Stats != (core.RunStats{}) {
		t.Errorf("score without run = %+v, want zero stats", runs[1])
	}
}
