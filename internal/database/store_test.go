package database

import (
	"os"
	"path/filepath"
	"testing"

	"jansel.dev/shop-picker-go/internal/game"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(nil); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return NewStore(db)
}

func TestDatabaseInitialization(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(nil); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	version, err := db.Version()
	if err != nil {
		t.Fatalf("Failed to get version: %v", err)
	}
	if version != 3 {
		t.Errorf("Expected version 3, got %d", version)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := db.RunMigrations(nil); err != nil {
		t.Fatal(err)
	}
	if err := db.RunMigrations(nil); err != nil {
		t.Errorf("second migration run failed: %v", err)
	}
}

func TestRecordAndCountPicks(t *testing.T) {
	store := newTestStore(t)

	if err := store.StartSession("priority"); err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	card := game.NewCard("Ahri", 3, 0.92)
	card.ShopIndex = 2

	if err := store.RecordPick(card, "priority"); err != nil {
		t.Fatalf("RecordPick failed: %v", err)
	}
	if err := store.RecordPick(game.NewCard("Garen", 1, 0.8), "priority"); err != nil {
		t.Fatal(err)
	}

	total, err := store.TotalPicks()
	if err != nil {
		t.Fatalf("TotalPicks failed: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}

	session, err := store.SessionPicks()
	if err != nil {
		t.Fatalf("SessionPicks failed: %v", err)
	}
	if session != 2 {
		t.Errorf("session picks = %d, want 2", session)
	}
}

func TestSessionLifecycle(t *testing.T) {
	store := newTestStore(t)

	if err := store.StartSession("priority"); err != nil {
		t.Fatal(err)
	}
	if store.SessionID() == 0 {
		t.Error("session id should be set after StartSession")
	}

	if err := store.RecordPick(game.NewCard("Ahri", 3, 0.9), "priority"); err != nil {
		t.Fatal(err)
	}

	if err := store.EndSession(); err != nil {
		t.Fatalf("EndSession failed: %v", err)
	}
	if store.SessionID() != 0 {
		t.Error("session id should be cleared after EndSession")
	}

	// Picks recorded without a session still count in the total.
	if err := store.RecordPick(game.NewCard("Lux", 2, 0.9), "manual"); err != nil {
		t.Fatal(err)
	}

	total, _ := store.TotalPicks()
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}

	session, _ := store.SessionPicks()
	if session != 0 {
		t.Errorf("session picks = %d, want 0 with no open session", session)
	}
}

func TestPickCountsByCard(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 3; i++ {
		if err := store.RecordPick(game.NewCard("Ahri", 3, 0.9), "priority"); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.RecordPick(game.NewCard("Garen", 1, 0.9), "priority"); err != nil {
		t.Fatal(err)
	}

	counts, err := store.PickCountsByCard()
	if err != nil {
		t.Fatalf("PickCountsByCard failed: %v", err)
	}
	if counts["Ahri"] != 3 || counts["Garen"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestRecentPicks(t *testing.T) {
	store := newTestStore(t)

	if err := store.RecordPick(game.NewCard("Ahri", 3, 0.9), "priority"); err != nil {
		t.Fatal(err)
	}
	if err := store.RecordPick(game.NewCard("Garen", 1, 0.9), "manual"); err != nil {
		t.Fatal(err)
	}

	picks, err := store.RecentPicks(10)
	if err != nil {
		t.Fatalf("RecentPicks failed: %v", err)
	}
	if len(picks) != 2 {
		t.Fatalf("picks = %d, want 2", len(picks))
	}
	if picks[0].CardName != "Garen" {
		t.Errorf("newest pick = %s, want Garen", picks[0].CardName)
	}
}

func TestNilStoreIsNoOp(t *testing.T) {
	var store *Store

	if err := store.StartSession("priority"); err != nil {
		t.Errorf("nil store StartSession: %v", err)
	}
	if err := store.RecordPick(game.NewCard("Ahri", 3, 0.9), "priority"); err != nil {
		t.Errorf("nil store RecordPick: %v", err)
	}
	if total, err := store.TotalPicks(); err != nil || total != 0 {
		t.Errorf("nil store TotalPicks = %d, %v", total, err)
	}
	if err := store.EndSession(); err != nil {
		t.Errorf("nil store EndSession: %v", err)
	}
}
