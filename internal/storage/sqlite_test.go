package storage

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vstrozzi/monkey-3d-game/internal/layout"
	"github.com/vstrozzi/monkey-3d-game/internal/protocol"
)

func openStore(t *testing.T) *Store {
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

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openStore(t)

	rc := protocol.DefaultRoundConfig()
	rc.Seed = math.MaxUint64 // exercises the signed column
	rc.TargetDoor = 2
	tel := layout.Snapshot{
		Attempts:         3,
		FrameNumber:      1800,
		ElapsedSecs:      30,
		WinTime:          29.5,
		CurrentAlignment: 0.97,
	}

	id, err := store.SaveRound(rc, tel)
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}

	got, err := store.RoundByID(id)
	if err != nil {
		t.Fatalf("RoundByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RoundByID() returned nil for a saved round")
	}

	if got.Seed != math.MaxUint64 || got.TargetDoor != 2 {
		t.Errorf("seed %d target %d, expected %d and 2", got.Seed, got.TargetDoor, uint64(math.MaxUint64))
	}
	if got.Attempts != 3 || got.Frames != 1800 || !got.Won {
		t.Errorf("record = %+v", got)
	}
	if got.WinTime != 29.5 {
		t.Errorf("WinTime = %v, expected 29.5", got.WinTime)
	}

	back, err := got.Round()
	if err != nil {
		t.Fatalf("Round() failed: %v", err)
	}
	if !reflect.DeepEqual(back, rc) {
		t.Errorf("Round() = %+v, expected %+v", back, rc)
	}
}

func TestStoreRoundByIDMissing(t *testing.T) {
	store := openStore(t)
	got, err := store.RoundByID(42)
	if err != nil {
		t.Fatalf("RoundByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("RoundByID() = %+v, expected nil", got)
	}
}

func TestStoreRecentRounds(t *testing.T) {
	store := openStore(t)

	for i := 0; i < 25; i++ {
		rc := protocol.DefaultRoundConfig()
		rc.Seed = uint64(i)
		if _, err := store.SaveRound(rc, layout.Snapshot{}); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	rounds, err := store.RecentRounds(5)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 5 {
		t.Fatalf("Expected 5 rounds, got %d", len(rounds))
	}
	// Newest first
	if rounds[0].Seed != 24 || rounds[4].Seed != 20 {
		t.Errorf("order = %d..%d, expected 24..20", rounds[0].Seed, rounds[4].Seed)
	}

	// Default limit
	rounds, err = store.RecentRounds(0)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 20 {
		t.Errorf("Expected 20 rounds, got %d", len(rounds))
	}
}

func TestStoreStats(t *testing.T) {
	store := openStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Rounds != 0 || stats.Wins != 0 {
		t.Errorf("empty stats = %+v", stats)
	}

	rc := protocol.DefaultRoundConfig()
	for _, tel := range []layout.Snapshot{
		{Attempts: 1, WinTime: 2},
		{Attempts: 3, WinTime: 4},
		{Attempts: 5},
	} {
		if _, err := store.SaveRound(rc, tel); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Rounds != 3 || stats.Wins != 2 {
		t.Errorf("Rounds=%d Wins=%d, expected 3 and 2", stats.Rounds, stats.Wins)
	}
	if stats.AvgAttempts != 3 {
		t.Errorf("AvgAttempts = %v, expected 3", stats.AvgAttempts)
	}
	if stats.AvgWinTime != 3 {
		t.Errorf("AvgWinTime = %v, expected 3", stats.AvgWinTime)
	}
}

func TestStoreClearRounds(t *testing.T) {
	store := openStore(t)

	if _, err := store.SaveRound(protocol.DefaultRoundConfig(), layout.Snapshot{}); err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if err := store.ClearRounds(); err != nil {
		t.Fatalf("ClearRounds() failed: %v", err)
	}
	rounds, err := store.RecentRounds(10)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 0 {
		t.Errorf("Expected 0 rounds after clear, got %d", len(rounds))
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
