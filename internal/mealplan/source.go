package mealplan

import (
	"context"
	"errors"
	"log"
	"time"

	"foodplaner/internal/recipe"
	"foodplaner/internal/shopping"
)

// IngredientSource adapts the meal plan and the recipe store into the
// shape the shopping-list generator consumes. Entries whose recipe has
// been deleted in the meantime are skipped with a warning.
type IngredientSource struct {
	plans   *Repository
	recipes *recipe.Repository
}

func NewIngredientSource(plans *Repository, recipes *recipe.Repository) *IngredientSource {
	return &IngredientSource{
		plans:   plans,
		recipes: recipes,
	}
}

func (s *IngredientSource) RecipesForRange(
	ctx context.Context,
	householdID string,
	from, to time.Time,
) ([]shopping.MealPlanRecipe, error) {
	entries, err := s.plans.Range(ctx, householdID, from, to)
	if err != nil {
		return nil, err
	}

	var result []shopping.MealPlanRecipe
	seen := make(map[string]struct{})
	for _, entry := range entries {
		if _, ok := seen[entry.RecipeID]; ok {
			continue
		}
		seen[entry.RecipeID] = struct{}{}

		rec, err := s.recipes.Get(ctx, entry.RecipeID)
		if err != nil {
			if errors.Is(err, recipe.ErrNotFound) {
				log.Printf("Warning: meal plan entry %d references missing recipe %s", entry.ID, entry.RecipeID)
				continue
			}
			return nil, err
		}

		result = append(result, shopping.MealPlanRecipe{
			RecipeID:    rec.ID,
			RecipeTitle: rec.Title,
			Ingredients: rec.Ingredients,
		})
	}
	return result, nil
}
