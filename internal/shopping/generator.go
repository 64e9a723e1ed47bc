package shopping

import (
	"context"
	"log"
	"time"

	"foodplaner/internal/shared"
)

// MealPlanRecipe is one planned recipe with its raw ingredient lines.
type MealPlanRecipe struct {
	RecipeID    string
	RecipeTitle string
	Ingredients []string
}

// MealPlanSource supplies the planned recipes of a date range. The
// generator never queries storage itself.
type MealPlanSource interface {
	RecipesForRange(ctx context.Context, householdID string, from, to time.Time) ([]MealPlanRecipe, error)
}

// PantrySource supplies the current pantry item names of a household.
type PantrySource interface {
	Names(ctx context.Context, householdID string) ([]string, error)
}

// Generator runs one shopping-list generation: normalize, aggregate,
// resolve against the cache, categorize the misses, attribute recipes
// and compose the final list. It does not persist the result; the
// caller owns the wholesale replacement of the household's list.
type Generator struct {
	plans       MealPlanSource
	pantry      PantrySource
	cache       CacheStore
	categorizer Categorizer
}

func NewGenerator(plans MealPlanSource, pantry PantrySource, cache CacheStore, categorizer Categorizer) *Generator {
	return &Generator{
		plans:       plans,
		pantry:      pantry,
		cache:       cache,
		categorizer: categorizer,
	}
}

// Generate builds the consolidated shopping list for a date range. A
// failing categorizer degrades the run instead of aborting it: the
// unresolved items land under the miscellaneous category and the result
// carries the Degraded flag.
func (g *Generator) Generate(
	ctx context.Context,
	householdID string,
	from, to time.Time,
) (CategorizedList, []shared.AgentMeta, error) {
	recipes, err := g.plans.RecipesForRange(ctx, householdID, from, to)
	if err != nil {
		return CategorizedList{}, nil, err
	}

	var occurrences []IngredientOccurrence
	for _, r := range recipes {
		for _, line := range r.Ingredients {
			occurrences = append(occurrences, IngredientOccurrence{
				RawText:     line,
				RecipeID:    r.RecipeID,
				RecipeTitle: r.RecipeTitle,
			})
		}
	}

	aggs := Aggregate(occurrences)
	if len(aggs) == 0 {
		// Empty meal plan: short-circuit without touching cache or model.
		return CategorizedList{}, nil, nil
	}

	pantryNames, err := g.pantry.Names(ctx, householdID)
	if err != nil {
		return CategorizedList{}, nil, err
	}

	cached, err := g.cache.Get(ctx, householdID)
	if err != nil {
		return CategorizedList{}, nil, err
	}
	hits, misses := splitCached(aggs, cached)

	var (
		fresh    CategorizationResult
		metas    []shared.AgentMeta
		degraded bool
		cause    error
	)

	if len(misses) > 0 {
		samples := make([]string, 0, len(misses))
		for _, miss := range misses {
			samples = append(samples, miss.Sample())
		}

		result, meta, catErr := g.categorizer.Categorize(ctx, samples, pantryNames)
		if meta.AgentName != "" {
			metas = append(metas, meta)
		}
		if catErr != nil {
			if !IsCategorizationError(catErr) {
				return CategorizedList{}, metas, catErr
			}
			log.Printf("Warning: categorization degraded: %v", catErr)
			fresh = fallbackResult(misses)
			degraded = true
			cause = catErr
		} else {
			fresh = result
			g.storeCacheEntries(ctx, householdID, result)
		}
	}

	list := compose(householdID, hits, fresh, aggs, pantryNames)
	list.Degraded = degraded
	list.DegradedCause = cause
	return list, metas, nil
}

// fallbackResult maps every unresolved ingredient onto the miscellaneous
// category with no amount and no pantry or basic classification.
func fallbackResult(misses []AggregatedIngredient) CategorizationResult {
	items := make([]CategorizedItem, 0, len(misses))
	for _, miss := range misses {
		items = append(items, CategorizedItem{
			Name:     miss.Key,
			Category: CategoryMisc,
		})
	}
	return CategorizationResult{ShoppingItems: items}
}

// storeCacheEntries remembers fresh categorizations, keyed by the
// renormalized output name. Output and input normalization can diverge,
// which is why the attributor stays a separate fuzzy step. Write
// failures only cost a future cache hit, so they are logged and
// swallowed.
func (g *Generator) storeCacheEntries(ctx context.Context, householdID string, result CategorizationResult) {
	var entries []CacheEntry
	for _, item := range result.ShoppingItems {
		if key := Normalize(item.Name); key != "" {
			entries = append(entries, CacheEntry{
				HouseholdID: householdID,
				Key:         key,
				Category:    item.Category,
				DisplayName: item.Name,
			})
		}
	}
	for _, item := range result.BasicItems {
		if key := Normalize(item.Name); key != "" {
			entries = append(entries, CacheEntry{
				HouseholdID: householdID,
				Key:         key,
				Category:    item.Category,
				DisplayName: item.Name,
				IsBasic:     true,
			})
		}
	}

	if len(entries) == 0 {
		return
	}
	if err := g.cache.Put(ctx, entries); err != nil {
		log.Printf("Warning: failed to update ingredient cache: %v", err)
	}
}
