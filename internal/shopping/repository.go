package shopping

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	shoppingdb "foodplaner/internal/shopping/shopping_db"
)

// Repository persists the flat shopping list of a household.
type Repository struct {
	db      *sql.DB
	queries *shoppingdb.Queries
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		db:      db,
		queries: shoppingdb.New(db),
	}
}

// List returns the household's items ordered by category and name.
func (r *Repository) List(ctx context.Context, householdID string) ([]ShoppingItem, error) {
	rows, err := r.queries.ListShoppingItems(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping items: %w", err)
	}

	items := make([]ShoppingItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, ShoppingItem{
			ID:          row.ID,
			HouseholdID: row.HouseholdID,
			Name:        row.Name,
			Checked:     row.Checked != 0,
			Category:    row.Category,
			RecipeID:    row.RecipeID.String,
			RecipeTitle: row.RecipeTitle.String,
		})
	}
	return items, nil
}

// ReplaceAll swaps the household's list for the given items in one
// transaction. Either the whole replacement lands or the prior list
// stays intact.
func (r *Repository) ReplaceAll(ctx context.Context, householdID string, items []ShoppingItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	if err := qtx.ClearShoppingItems(ctx, householdID); err != nil {
		return fmt.Errorf("failed to clear shopping list: %w", err)
	}

	now := time.Now().UTC()
	for _, item := range items {
		if err := qtx.InsertShoppingItem(ctx, insertParams(householdID, item, now)); err != nil {
			return fmt.Errorf("failed to insert shopping item %q: %w", item.Name, err)
		}
	}

	return tx.Commit()
}

// Add appends a manually created item and returns it with its ID set.
func (r *Repository) Add(ctx context.Context, householdID, name, category string) (ShoppingItem, error) {
	item := ShoppingItem{
		ID:          uuid.NewString(),
		HouseholdID: householdID,
		Name:        name,
		Category:    canonicalCategory(category),
	}
	err := r.queries.InsertShoppingItem(ctx, insertParams(householdID, item, time.Now().UTC()))
	if err != nil {
		return ShoppingItem{}, fmt.Errorf("failed to add shopping item: %w", err)
	}
	return item, nil
}

// Toggle sets the checked state of an item.
func (r *Repository) Toggle(ctx context.Context, householdID, itemID string, checked bool) error {
	var v int64
	if checked {
		v = 1
	}
	n, err := r.queries.SetShoppingItemChecked(ctx, shoppingdb.SetShoppingItemCheckedParams{
		Checked:     v,
		ID:          itemID,
		HouseholdID: householdID,
	})
	if err != nil {
		return fmt.Errorf("failed to toggle shopping item: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a single item.
func (r *Repository) Delete(ctx context.Context, householdID, itemID string) error {
	n, err := r.queries.DeleteShoppingItem(ctx, shoppingdb.DeleteShoppingItemParams{
		ID:          itemID,
		HouseholdID: householdID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete shopping item: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Clear empties the household's list.
func (r *Repository) Clear(ctx context.Context, householdID string) error {
	if err := r.queries.ClearShoppingItems(ctx, householdID); err != nil {
		return fmt.Errorf("failed to clear shopping list: %w", err)
	}
	return nil
}

func insertParams(householdID string, item ShoppingItem, now time.Time) shoppingdb.InsertShoppingItemParams {
	var checked int64
	if item.Checked {
		checked = 1
	}
	return shoppingdb.InsertShoppingItemParams{
		ID:          item.ID,
		HouseholdID: householdID,
		Name:        item.Name,
		Checked:     checked,
		Category:    item.Category,
		RecipeID:    nullString(item.RecipeID),
		RecipeTitle: nullString(item.RecipeTitle),
		CreatedAt:   now,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
