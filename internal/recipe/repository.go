package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	recipedb "foodplaner/internal/recipe/recipe_db"
)

// ErrNotFound is returned when a recipe ID does not exist.
var ErrNotFound = errors.New("recipe not found")

// Repository is a database-backed repository for recipes.
type Repository struct {
	queries *recipedb.Queries
	db      *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: recipedb.New(d),
		db:      d,
	}
}

// Save inserts or updates a recipe. A missing ID is assigned.
func (r *Repository) Save(ctx context.Context, rec Recipe) (Recipe, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return Recipe{}, fmt.Errorf("failed to marshal recipe to JSON: %w", err)
	}

	err = r.queries.InsertRecipe(ctx, recipedb.InsertRecipeParams{
		ID:        rec.ID,
		Data:      string(data),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return Recipe{}, fmt.Errorf("failed to save recipe: %w", err)
	}
	return rec, nil
}

// Get retrieves a recipe by its ID.
func (r *Repository) Get(ctx context.Context, id string) (Recipe, error) {
	row, err := r.queries.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Recipe{}, ErrNotFound
		}
		return Recipe{}, fmt.Errorf("failed to get recipe by ID: %w", err)
	}

	var rec Recipe
	if err := json.Unmarshal([]byte(row.Data), &rec); err != nil {
		return Recipe{}, fmt.Errorf("failed to unmarshal recipe JSON: %w", err)
	}
	rec.ID = row.ID
	return rec, nil
}

// List retrieves all recipes, newest first.
func (r *Repository) List(ctx context.Context) ([]Recipe, error) {
	rows, err := r.queries.ListAllRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	var recipes []Recipe
	for _, row := range rows {
		var rec Recipe
		if err := json.Unmarshal([]byte(row.Data), &rec); err != nil {
			log.Printf("Warning: failed to unmarshal recipe JSON for ID %s: %v", row.ID, err)
			continue
		}
		rec.ID = row.ID
		recipes = append(recipes, rec)
	}
	return recipes, nil
}

// Search filters the stored recipes by a free-text query.
func (r *Repository) Search(ctx context.Context, query string) ([]Recipe, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	var matches []Recipe
	for _, rec := range all {
		if rec.MatchesQuery(query) {
			matches = append(matches, rec)
		}
	}
	return matches, nil
}

// Delete removes a recipe by ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	n, err := r.queries.DeleteRecipe(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of stored recipes.
func (r *Repository) Count(ctx context.Context) (int, error) {
	count, err := r.queries.CountRecipes(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return int(count), nil
}
