package shopping

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"foodplaner/internal/shared"
)

type mockPlans struct {
	recipes []MealPlanRecipe
	err     error
}

func (m *mockPlans) RecipesForRange(ctx context.Context, householdID string, from, to time.Time) ([]MealPlanRecipe, error) {
	return m.recipes, m.err
}

type mockPantry struct {
	names []string
}

func (m *mockPantry) Names(ctx context.Context, householdID string) ([]string, error) {
	return m.names, nil
}

type mockCache struct {
	entries  map[string]CacheEntry
	getCalls int
	putCalls [][]CacheEntry
}

func (m *mockCache) Get(ctx context.Context, householdID string) (map[string]CacheEntry, error) {
	m.getCalls++
	if m.entries == nil {
		return map[string]CacheEntry{}, nil
	}
	return m.entries, nil
}

func (m *mockCache) Put(ctx context.Context, entries []CacheEntry) error {
	m.putCalls = append(m.putCalls, entries)
	if m.entries == nil {
		m.entries = make(map[string]CacheEntry)
	}
	for _, e := range entries {
		if _, exists := m.entries[e.Key]; !exists {
			m.entries[e.Key] = e
		}
	}
	return nil
}

func (m *mockCache) Clear(ctx context.Context, householdID string) (int64, error) {
	n := int64(len(m.entries))
	m.entries = nil
	return n, nil
}

type mockCategorizer struct {
	result  CategorizationResult
	err     error
	calls   int
	samples [][]string
}

func (m *mockCategorizer) Categorize(ctx context.Context, samples []string, pantryItems []string) (CategorizationResult, shared.AgentMeta, error) {
	m.calls++
	m.samples = append(m.samples, samples)
	meta := shared.AgentMeta{AgentName: "Categorizer", Usage: shared.TokenUsage{PromptTokens: 1}}
	if m.err != nil {
		return CategorizationResult{}, meta, m.err
	}
	return m.result, meta, nil
}

func newTestGenerator(plans *mockPlans, pantry *mockPantry, cache *mockCache, cat *mockCategorizer) *Generator {
	return NewGenerator(plans, pantry, cache, cat)
}

func TestGenerateConsolidatesAcrossRecipes(t *testing.T) {
	plans := &mockPlans{recipes: []MealPlanRecipe{
		{RecipeID: "a", RecipeTitle: "Recipe A", Ingredients: []string{"400g Hackfleisch"}},
		{RecipeID: "b", RecipeTitle: "Recipe B", Ingredients: []string{"500g Hackfleisch"}},
	}}
	cat := &mockCategorizer{result: CategorizationResult{
		ShoppingItems: []CategorizedItem{{Name: "Hackfleisch", Category: CategoryMeatFish}},
	}}
	gen := newTestGenerator(plans, &mockPantry{}, &mockCache{}, cat)

	list, metas, err := gen.Generate(context.Background(), "h1", time.Now(), time.Now())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(list.Categories) != 1 || list.Categories[0].Name != CategoryMeatFish {
		t.Fatalf("Expected one meat group, got %+v", list.Categories)
	}
	items := list.Categories[0].Items
	if len(items) != 1 || items[0].Name != "Hackfleisch" {
		t.Fatalf("Expected one consolidated item, got %+v", items)
	}
	if len(items[0].Recipes) != 2 {
		t.Errorf("Expected attribution to both recipes, got %+v", items[0].Recipes)
	}
	if cat.calls != 1 || len(cat.samples[0]) != 1 {
		t.Errorf("Expected one sample per key, got calls=%d samples=%v", cat.calls, cat.samples)
	}
	if len(metas) != 1 {
		t.Errorf("Expected one meta entry, got %d", len(metas))
	}
}

func TestGeneratePantryItemLeavesMainList(t *testing.T) {
	plans := &mockPlans{recipes: []MealPlanRecipe{
		{RecipeID: "a", RecipeTitle: "Curry", Ingredients: []string{"300g Reis"}},
	}}
	cat := &mockCategorizer{result: CategorizationResult{
		FromPantry: []PantryItemView{{Name: "Reis", Amount: "300g", PantryMatch: "Reis"}},
	}}
	gen := newTestGenerator(plans, &mockPantry{names: []string{"Reis"}}, &mockCache{}, cat)

	list, _, err := gen.Generate(context.Background(), "h1", time.Now(), time.Now())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(list.Categories) != 0 {
		t.Errorf("Expected empty main list, got %+v", list.Categories)
	}
	if len(list.FromPantry) != 1 || list.FromPantry[0].Name != "Reis" {
		t.Errorf("Expected Reis under fromPantry, got %+v", list.FromPantry)
	}
}

func TestGenerateEmptyMealPlanShortCircuits(t *testing.T) {
	plans := &mockPlans{}
	cache := &mockCache{}
	cat := &mockCategorizer{}
	gen := newTestGenerator(plans, &mockPantry{}, cache, cat)

	list, metas, err := gen.Generate(context.Background(), "h1", time.Now(), time.Now())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(list.Categories) != 0 || len(list.FlatItems) != 0 {
		t.Errorf("Expected empty result, got %+v", list)
	}
	if cache.getCalls != 0 {
		t.Error("Expected the cache to stay untouched")
	}
	if cat.calls != 0 {
		t.Error("Expected no categorization call")
	}
	if len(metas) != 0 {
		t.Errorf("Expected no metas, got %d", len(metas))
	}
}

func TestGenerateCacheHitSkipsCategorizer(t *testing.T) {
	plans := &mockPlans{recipes: []MealPlanRecipe{
		{RecipeID: "a", RecipeTitle: "Pasta", Ingredients: []string{"200g Tomaten"}},
	}}
	cache := &mockCache{entries: map[string]CacheEntry{
		"tomaten": {HouseholdID: "h1", Key: "tomaten", Category: CategoryProduce, DisplayName: "Tomaten"},
	}}
	cat := &mockCategorizer{}
	gen := newTestGenerator(plans, &mockPantry{}, cache, cat)

	list, _, err := gen.Generate(context.Background(), "h1", time.Now(), time.Now())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if cat.calls != 0 {
		t.Errorf("Expected no categorizer call for a cached key, got %d", cat.calls)
	}
	if len(list.Categories) != 1 || list.Categories[0].Items[0].Name != "Tomaten" {
		t.Errorf("Expected the cached item in the list, got %+v", list.Categories)
	}
}

func TestGenerateWritesCacheKeyedByOutputName(t *testing.T) {
	plans := &mockPlans{recipes: []MealPlanRecipe{
		{RecipeID: "a", RecipeTitle: "Bolognese", Ingredients: []string{"500g Rinderhackfleisch"}},
	}}
	cat := &mockCategorizer{result: CategorizationResult{
		ShoppingItems: []CategorizedItem{{Name: "Hackfleisch", Amount: "500g", Category: CategoryMeatFish}},
		BasicItems:    []BasicItemView{{Name: "Salz", Category: CategorySpicesOil}},
	}}
	cache := &mockCache{}
	gen := newTestGenerator(plans, &mockPantry{}, cache, cat)

	if _, _, err := gen.Generate(context.Background(), "h1", time.Now(), time.Now()); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(cache.putCalls) != 1 {
		t.Fatalf("Expected one cache write, got %d", len(cache.putCalls))
	}
	entry, ok := cache.entries["hackfleisch"]
	if !ok {
		t.Fatalf("Expected cache entry keyed by the renormalized output name, have %v", cache.entries)
	}
	if entry.DisplayName != "Hackfleisch" || entry.Category != CategoryMeatFish || entry.IsBasic {
		t.Errorf("Unexpected entry: %+v", entry)
	}
	basic, ok := cache.entries["salz"]
	if !ok || !basic.IsBasic {
		t.Errorf("Expected basic item cached with IsBasic, got %+v", basic)
	}
}

func TestGenerateDegradesOnCategorizationFailure(t *testing.T) {
	plans := &mockPlans{recipes: []MealPlanRecipe{
		{RecipeID: "a", RecipeTitle: "Pasta", Ingredients: []string{"200g Tomaten", "1 Zwiebel"}},
	}}
	cat := &mockCategorizer{err: &CategorizationError{Cause: context.DeadlineExceeded}}
	cache := &mockCache{}
	gen := newTestGenerator(plans, &mockPantry{}, cache, cat)

	list, _, err := gen.Generate(context.Background(), "h1", time.Now(), time.Now())
	if err != nil {
		t.Fatalf("Expected generation to survive the failure, got %v", err)
	}
	if !list.Degraded {
		t.Error("Expected the result to be flagged as degraded")
	}
	if !errors.Is(list.DegradedCause, context.DeadlineExceeded) {
		t.Errorf("Expected the cause to be carried, got %v", list.DegradedCause)
	}
	if len(list.Categories) != 1 || list.Categories[0].Name != CategoryMisc {
		t.Fatalf("Expected all items under %q, got %+v", CategoryMisc, list.Categories)
	}
	if len(list.Categories[0].Items) != 2 {
		t.Errorf("Expected both keys to survive, got %+v", list.Categories[0].Items)
	}
	for _, item := range list.Categories[0].Items {
		if item.Amount != "" {
			t.Errorf("Expected no amount in degraded mode, got %+v", item)
		}
	}
	if len(cache.putCalls) != 0 {
		t.Error("Expected no cache writes after a failed categorization")
	}
}

func TestGenerateOtherErrorsAbort(t *testing.T) {
	plans := &mockPlans{err: errors.New("db down")}
	gen := newTestGenerator(plans, &mockPantry{}, &mockCache{}, &mockCategorizer{})

	if _, _, err := gen.Generate(context.Background(), "h1", time.Now(), time.Now()); err == nil {
		t.Fatal("Expected the meal-plan error to propagate")
	}
}

func TestGenerateIsIdempotentWithWarmCache(t *testing.T) {
	plans := &mockPlans{recipes: []MealPlanRecipe{
		{RecipeID: "a", RecipeTitle: "Pasta", Ingredients: []string{"200g Tomaten", "1 Zwiebel"}},
	}}
	cat := &mockCategorizer{result: CategorizationResult{
		ShoppingItems: []CategorizedItem{
			{Name: "Tomaten", Category: CategoryProduce},
			{Name: "Zwiebel", Category: CategoryProduce},
		},
	}}
	cache := &mockCache{}
	gen := newTestGenerator(plans, &mockPantry{}, cache, cat)

	first, _, err := gen.Generate(context.Background(), "h1", time.Now(), time.Now())
	if err != nil {
		t.Fatalf("First generation failed: %v", err)
	}
	second, _, err := gen.Generate(context.Background(), "h1", time.Now(), time.Now())
	if err != nil {
		t.Fatalf("Second generation failed: %v", err)
	}
	if cat.calls != 1 {
		t.Errorf("Expected the second run to be served from cache, got %d calls", cat.calls)
	}
	if !reflect.DeepEqual(first.Categories, second.Categories) {
		t.Errorf("Expected identical composed results:\nfirst:  %+v\nsecond: %+v", first.Categories, second.Categories)
	}
	if !reflect.DeepEqual(first.FromPantry, second.FromPantry) || !reflect.DeepEqual(first.BasicItems, second.BasicItems) {
		t.Error("Expected pantry and basic views to be identical across runs")
	}
}
