package pantry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	pantrydb "foodplaner/internal/pantry/pantry_db"
)

// ErrNotFound is returned when a pantry item does not exist.
var ErrNotFound = errors.New("pantry item not found")

// ErrEmptyName is returned for blank item names.
var ErrEmptyName = errors.New("pantry item name is empty")

// Item is one thing the household already has at home.
type Item struct {
	ID          int64  `json:"id"`
	HouseholdID string `json:"-"`
	Name        string `json:"name"`
}

// Repository persists the pantry of a household.
type Repository struct {
	queries *pantrydb.Queries
	db      *sql.DB
}

func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: pantrydb.New(d),
		db:      d,
	}
}

// Add stores a pantry item and returns it with its ID set.
func (r *Repository) Add(ctx context.Context, householdID, name string) (Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Item{}, ErrEmptyName
	}

	id, err := r.queries.InsertPantryItem(ctx, pantrydb.InsertPantryItemParams{
		HouseholdID: householdID,
		Name:        name,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return Item{}, fmt.Errorf("failed to add pantry item: %w", err)
	}
	return Item{ID: id, HouseholdID: householdID, Name: name}, nil
}

// List returns all pantry items ordered by name.
func (r *Repository) List(ctx context.Context, householdID string) ([]Item, error) {
	rows, err := r.queries.ListPantryItems(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pantry items: %w", err)
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, Item{ID: row.ID, HouseholdID: row.HouseholdID, Name: row.Name})
	}
	return items, nil
}

// Names returns just the item names, the shape the shopping-list
// generator consumes as its pantry source.
func (r *Repository) Names(ctx context.Context, householdID string) ([]string, error) {
	items, err := r.List(ctx, householdID)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names, nil
}

// Delete removes a pantry item.
func (r *Repository) Delete(ctx context.Context, householdID string, id int64) error {
	n, err := r.queries.DeletePantryItem(ctx, pantrydb.DeletePantryItemParams{
		ID:          id,
		HouseholdID: householdID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete pantry item: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
