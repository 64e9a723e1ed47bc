package shopping

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"foodplaner/internal/database"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRepositoryReplaceAll(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewRepository(db.SQL)

	first := []ShoppingItem{
		{ID: "i1", Name: "700g Tomaten", Category: CategoryProduce, RecipeID: "r1", RecipeTitle: "Pasta"},
		{ID: "i2", Name: "Brot", Category: CategoryBakery},
	}
	if err := repo.ReplaceAll(ctx, "h1", first); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	second := []ShoppingItem{
		{ID: "i3", Name: "Milch", Category: CategoryDairyEggs},
	}
	if err := repo.ReplaceAll(ctx, "h1", second); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	items, err := repo.List(ctx, "h1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Milch" {
		t.Errorf("Expected wholesale replacement, got %+v", items)
	}
}

func TestRepositoryScopesByHousehold(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewRepository(db.SQL)

	if _, err := repo.Add(ctx, "h1", "Butter", CategoryDairyEggs); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := repo.Add(ctx, "h2", "Mehl", CategoryBakery); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	items, err := repo.List(ctx, "h1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Butter" {
		t.Errorf("Expected only h1 items, got %+v", items)
	}
}

func TestRepositoryToggleAndDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewRepository(db.SQL)

	item, err := repo.Add(ctx, "h1", "Eier", CategoryDairyEggs)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := repo.Toggle(ctx, "h1", item.ID, true); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	items, _ := repo.List(ctx, "h1")
	if len(items) != 1 || !items[0].Checked {
		t.Errorf("Expected item to be checked, got %+v", items)
	}

	if err := repo.Toggle(ctx, "h1", "missing", true); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Expected ErrNoRows for unknown item, got %v", err)
	}

	if err := repo.Delete(ctx, "h1", item.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete(ctx, "h1", item.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Expected ErrNoRows on second delete, got %v", err)
	}
}

func TestRepositoryAddNormalizesCategory(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewRepository(db.SQL)

	item, err := repo.Add(ctx, "h1", "Kaugummi", "Quatsch")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if item.Category != CategoryMisc {
		t.Errorf("Expected unknown category to fall back to %q, got %q", CategoryMisc, item.Category)
	}
}

func TestCacheRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	cache := NewCacheRepository(db.SQL)

	entries := []CacheEntry{
		{HouseholdID: "h1", Key: "tomaten", Category: CategoryProduce, DisplayName: "Tomaten"},
		{HouseholdID: "h1", Key: "salz", Category: CategorySpicesOil, DisplayName: "Salz", IsBasic: true},
	}
	if err := cache.Put(ctx, entries); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// A second put for the same key must be a silent no-op.
	conflict := []CacheEntry{
		{HouseholdID: "h1", Key: "tomaten", Category: CategoryMisc, DisplayName: "Dosentomaten"},
	}
	if err := cache.Put(ctx, conflict); err != nil {
		t.Fatalf("Conflicting put failed: %v", err)
	}

	got, err := cache.Get(ctx, "h1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(got))
	}
	if got["tomaten"].DisplayName != "Tomaten" {
		t.Errorf("Expected the first entry to stay authoritative, got %+v", got["tomaten"])
	}
	if !got["salz"].IsBasic {
		t.Errorf("Expected salz to stay basic, got %+v", got["salz"])
	}

	n, err := cache.Clear(ctx, "h1")
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 cleared entries, got %d", n)
	}
	got, _ = cache.Get(ctx, "h1")
	if len(got) != 0 {
		t.Errorf("Expected empty cache after clear, got %v", got)
	}
}
