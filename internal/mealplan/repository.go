package mealplan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	mealplandb "foodplaner/internal/mealplan/mealplan_db"
)

// ErrNotFound is returned when a plan entry does not exist.
var ErrNotFound = errors.New("meal plan entry not found")

// Repository persists the weekly meal plan of a household.
type Repository struct {
	queries *mealplandb.Queries
	db      *sql.DB
}

func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: mealplandb.New(d),
		db:      d,
	}
}

// Add plans a recipe on a day and returns the stored entry.
func (r *Repository) Add(ctx context.Context, entry Entry) (Entry, error) {
	if entry.MealType == "" {
		entry.MealType = "main"
	}
	id, err := r.queries.InsertMealPlanEntry(ctx, mealplandb.InsertMealPlanEntryParams{
		HouseholdID: entry.HouseholdID,
		RecipeID:    entry.RecipeID,
		PlanDate:    entry.Date,
		MealType:    entry.MealType,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return Entry{}, fmt.Errorf("failed to add meal plan entry: %w", err)
	}
	entry.ID = id
	return entry, nil
}

// Range returns all entries between from and to, inclusive.
func (r *Repository) Range(ctx context.Context, householdID string, from, to time.Time) ([]Entry, error) {
	rows, err := r.queries.ListMealPlanEntries(ctx, mealplandb.ListMealPlanEntriesParams{
		HouseholdID: householdID,
		PlanDate:    from,
		PlanDate_2:  to,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plan entries: %w", err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{
			ID:          row.ID,
			HouseholdID: row.HouseholdID,
			RecipeID:    row.RecipeID,
			Date:        row.PlanDate,
			MealType:    row.MealType,
		})
	}
	return entries, nil
}

// Move changes the day or meal slot of an entry.
func (r *Repository) Move(ctx context.Context, householdID string, id int64, date time.Time, mealType string) error {
	if mealType == "" {
		mealType = "main"
	}
	n, err := r.queries.MoveMealPlanEntry(ctx, mealplandb.MoveMealPlanEntryParams{
		PlanDate:    date,
		MealType:    mealType,
		ID:          id,
		HouseholdID: householdID,
	})
	if err != nil {
		return fmt.Errorf("failed to move meal plan entry: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an entry.
func (r *Repository) Delete(ctx context.Context, householdID string, id int64) error {
	n, err := r.queries.DeleteMealPlanEntry(ctx, mealplandb.DeleteMealPlanEntryParams{
		ID:          id,
		HouseholdID: householdID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete meal plan entry: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
