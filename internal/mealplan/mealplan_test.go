package mealplan

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"foodplaner/internal/database"
	"foodplaner/internal/recipe"
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

func TestWeekOf(t *testing.T) {
	cases := []struct {
		name string
		day  string
		mon  string
		sun  string
	}{
		{"Wednesday", "2025-06-11", "2025-06-09", "2025-06-15"},
		{"Monday", "2025-06-09", "2025-06-09", "2025-06-15"},
		{"Sunday", "2025-06-15", "2025-06-09", "2025-06-15"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			day, _ := time.Parse("2006-01-02", tc.day)
			mon, sun := WeekOf(day)
			if mon.Format("2006-01-02") != tc.mon {
				t.Errorf("Expected Monday %s, got %s", tc.mon, mon.Format("2006-01-02"))
			}
			if sun.Format("2006-01-02") != tc.sun {
				t.Errorf("Expected Sunday %s, got %s", tc.sun, sun.Format("2006-01-02"))
			}
		})
	}
}

func TestRepositoryAddAndRange(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(newTestDB(t).SQL)

	monday, _ := time.Parse("2006-01-02", "2025-06-09")
	entry, err := repo.Add(ctx, Entry{HouseholdID: "h1", RecipeID: "r1", Date: monday})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if entry.ID == 0 {
		t.Fatal("Expected an assigned ID")
	}
	if entry.MealType != "main" {
		t.Errorf("Expected default meal type 'main', got %q", entry.MealType)
	}

	// An entry for the next week must stay outside the range.
	if _, err := repo.Add(ctx, Entry{HouseholdID: "h1", RecipeID: "r2", Date: monday.AddDate(0, 0, 8)}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	entries, err := repo.Range(ctx, "h1", monday, monday.AddDate(0, 0, 6))
	if err != nil {
		t.Fatalf("Range failed: %v", err)
	}
	if len(entries) != 1 || entries[0].RecipeID != "r1" {
		t.Errorf("Unexpected entries: %+v", entries)
	}
}

func TestRepositoryMoveAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(newTestDB(t).SQL)

	monday, _ := time.Parse("2006-01-02", "2025-06-09")
	entry, err := repo.Add(ctx, Entry{HouseholdID: "h1", RecipeID: "r1", Date: monday})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	wednesday := monday.AddDate(0, 0, 2)
	if err := repo.Move(ctx, "h1", entry.ID, wednesday, "dinner"); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	entries, _ := repo.Range(ctx, "h1", monday, monday.AddDate(0, 0, 6))
	if len(entries) != 1 || entries[0].MealType != "dinner" {
		t.Errorf("Expected moved entry, got %+v", entries)
	}
	if !entries[0].Date.Equal(wednesday) {
		t.Errorf("Expected date %v, got %v", wednesday, entries[0].Date)
	}

	if err := repo.Move(ctx, "h2", entry.ID, wednesday, "dinner"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for foreign household, got %v", err)
	}

	if err := repo.Delete(ctx, "h1", entry.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete(ctx, "h1", entry.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestIngredientSource(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	plans := NewRepository(db.SQL)
	recipes := recipe.NewRepository(db.SQL)

	saved, err := recipes.Save(ctx, recipe.Recipe{
		Title:       "Pasta",
		Ingredients: []string{"400g Spaghetti", "200g Tomaten"},
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	monday, _ := time.Parse("2006-01-02", "2025-06-09")
	// Planned twice in the week; ingredients must be delivered once.
	for _, day := range []time.Time{monday, monday.AddDate(0, 0, 2)} {
		if _, err := plans.Add(ctx, Entry{HouseholdID: "h1", RecipeID: saved.ID, Date: day}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	// A dangling entry must be skipped, not fail the range.
	if _, err := plans.Add(ctx, Entry{HouseholdID: "h1", RecipeID: "deleted", Date: monday}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	source := NewIngredientSource(plans, recipes)
	result, err := source.RecipesForRange(ctx, "h1", monday, monday.AddDate(0, 0, 6))
	if err != nil {
		t.Fatalf("RecipesForRange failed: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("Expected 1 recipe, got %d", len(result))
	}
	if result[0].RecipeTitle != "Pasta" || len(result[0].Ingredients) != 2 {
		t.Errorf("Unexpected result: %+v", result[0])
	}
}
