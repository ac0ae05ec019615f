package storage_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/qszone/naviguard/internal/infrastructure/database"
	"github.com/qszone/naviguard/internal/storage"
	_ "github.com/qszone/naviguard/migrations"
)

func openMedium(t *testing.T) *storage.SQLiteMedium {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, database.Config{
		Path:        filepath.Join(t.TempDir(), "cache.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return storage.NewSQLiteMedium(db)
}

func TestSQLiteMedium_SetGetRemove(t *testing.T) {
	medium := openMedium(t)

	if err := medium.SetItem("K1", "v1"); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}

	got, found, err := medium.GetItem("K1")
	if err != nil {
		t.Fatalf("GetItem() error = %v", err)
	}
	if !found || got != "v1" {
		t.Errorf("GetItem() = (%q, %v), want (\"v1\", true)", got, found)
	}

	// Overwrite.
	if err := medium.SetItem("K1", "v2"); err != nil {
		t.Fatalf("SetItem() overwrite error = %v", err)
	}
	got, _, _ = medium.GetItem("K1")
	if got != "v2" {
		t.Errorf("GetItem() after overwrite = %q, want %q", got, "v2")
	}

	if err := medium.RemoveItem("K1"); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
	if _, found, _ := medium.GetItem("K1"); found {
		t.Error("GetItem() found record after RemoveItem()")
	}

	// Removing an absent key is not an error.
	if err := medium.RemoveItem("K1"); err != nil {
		t.Errorf("RemoveItem() on absent key error = %v", err)
	}
}

func TestSQLiteMedium_Clear(t *testing.T) {
	medium := openMedium(t)

	for _, k := range []string{"A", "B", "C"} {
		if err := medium.SetItem(k, "v"); err != nil {
			t.Fatalf("SetItem(%q) error = %v", k, err)
		}
	}
	if err := medium.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	for _, k := range []string{"A", "B", "C"} {
		if _, found, _ := medium.GetItem(k); found {
			t.Errorf("key %q survived Clear()", k)
		}
	}
}

func TestStore_OverSQLiteMedium(t *testing.T) {
	store := storage.New(openMedium(t), "Vue_Naive_Admin_")

	if err := store.Set("access_token", "tok-123", 21600*time.Second); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var tok string
	if !store.Get("access_token", &tok) || tok != "tok-123" {
		t.Errorf("Get() = (%q), want tok-123", tok)
	}
}
