package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/keinplan-arcade/internal/core"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestLoadStatsDefaults(t *testing.T) {
	store := openTemp(t)

	stats, found, err := store.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats() failed: %v", err)
	}
	if found {
		t.Error("empty database should report found=false")
	}
	if stats != core.DefaultStats() {
		t.Errorf("LoadStats() = %+v, expected defaults", stats)
	}
}

func TestStatsRoundTrip(t *testing.T) {
	store := openTemp(t)
	want := core.Stats{Score: 350, Level: 2, Lives: 0, BestScore: 1200}

	if err := store.SaveStats(want); err != nil {
		t.Fatalf("SaveStats() failed: %v", err)
	}
	got, found, err := store.LoadStats()
	if err != nil || !found {
		t.Fatalf("LoadStats() = %v, %v", found, err)
	}
	if got != want {
		t.Errorf("LoadStats() = %+v, expected %+v", got, want)
	}
}

func TestCorruptStatsFallsBack(t *testing.T) {
	store := openTemp(t)
	if _, err := store.db.Exec("INSERT INTO kv (key, value) VALUES (?, ?)", StatsKey, "{not json"); err != nil {
		t.Fatal(err)
	}

	stats, found, err := store.LoadStats()
	if err == nil {
		t.Fatal("expected an error for a corrupt record")
	}
	if found || stats != core.DefaultStats() {
		t.Errorf("corrupt record should yield defaults, got %+v found=%v", stats, found)
	}
}

func TestRecordSession(t *testing.T) {
	store := openTemp(t)

	first := core.SessionRecord{
		RunID:      "run-1",
		Kind:       "space-shooter",
		FinalScore: 900,
		Level:      3,
		Duration:   95 * time.Second,
		Stats:      core.Stats{Score: 900, Level: 3, Lives: 0, BestScore: 900},
		NewBest:    true,
	}
	if err := store.RecordSession(first); err != nil {
		t.Fatalf("RecordSession() failed: %v", err)
	}

	// A worse run is recorded in the history but leaves the stats alone.
	second := first
	second.RunID = "run-2"
	second.FinalScore = 400
	second.Stats = core.Stats{Score: 400, Level: 1, Lives: 0, BestScore: 900}
	second.NewBest = false
	if err := store.RecordSession(second); err != nil {
		t.Fatalf("RecordSession() failed: %v", err)
	}

	stats, _, err := store.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats() failed: %v", err)
	}
	if stats.Score != 900 || stats.BestScore != 900 {
		t.Errorf("stats = %+v, expected the first run", stats)
	}

	scores, err := store.TopScores("space-shooter", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("history has %d rows, expected 2", len(scores))
	}
	if scores[0].RunID != "run-1" || scores[0].Level != 3 || scores[0].Duration != 95*time.Second {
		t.Errorf("top entry = %+v", scores[0])
	}
}

func TestTopScoresOrderAndLimit(t *testing.T) {
	store := openTemp(t)

	for _, rec := range []core.SessionRecord{
		{Kind: "cube-racer", FinalScore: 100},
		{Kind: "cube-racer", FinalScore: 50},
		{Kind: "cube-racer", FinalScore: 200},
		{Kind: "block-puzzle", FinalScore: 500},
	} {
		if err := store.RecordSession(rec); err != nil {
			t.Fatalf("RecordSession() failed: %v", err)
		}
	}

	scores, err := store.TopScores("cube-racer", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 || scores[0].Score != 200 || scores[1].Score != 100 {
		t.Errorf("TopScores() = %+v", scores)
	}

	high, err := store.HighScore("block-puzzle")
	if err != nil || high != 500 {
		t.Errorf("HighScore() = %d, %v", high, err)
	}
	high, err = store.HighScore("gravity-balls")
	if err != nil || high != 0 {
		t.Errorf("HighScore(empty) = %d, %v", high, err)
	}
}

func TestSummaryAndClear(t *testing.T) {
	store := openTemp(t)
	for _, rec := range []core.SessionRecord{
		{Kind: "gravity-balls", FinalScore: 300, Level: 2, Duration: time.Minute},
		{Kind: "gravity-balls", FinalScore: 100, Level: 1, Duration: 30 * time.Second},
	} {
		if err := store.RecordSession(rec); err != nil {
			t.Fatalf("RecordSession() failed: %v", err)
		}
	}

	sum, err := store.Summary("gravity-balls")
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	if sum.Runs != 2 || sum.HighScore != 300 || sum.AvgScore != 200 || sum.BestLevel != 2 {
		t.Errorf("Summary() = %+v", sum)
	}
	if sum.TotalTime != 90*time.Second {
		t.Errorf("TotalTime = %v", sum.TotalTime)
	}
	if sum.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}

	if err := store.ClearScores("gravity-balls"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	sum, _ = store.Summary("gravity-balls")
	if sum.Runs != 0 {
		t.Errorf("Runs after clear = %d", sum.Runs)
	}
}
