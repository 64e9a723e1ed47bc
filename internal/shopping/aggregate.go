package shopping

import "sort"

// Aggregate groups raw ingredient occurrences by their normalization key.
// Occurrences whose key normalizes to the empty string are dropped. The
// returned slice is sorted by key so downstream stages see a stable order.
func Aggregate(occurrences []IngredientOccurrence) []AggregatedIngredient {
	byKey := make(map[string]*AggregatedIngredient)

	for _, occ := range occurrences {
		key := Normalize(occ.RawText)
		if key == "" {
			continue
		}

		agg, ok := byKey[key]
		if !ok {
			agg = &AggregatedIngredient{
				Key:     key,
				Recipes: make(map[string]string),
			}
			byKey[key] = agg
		}
		agg.OriginalTexts = append(agg.OriginalTexts, occ.RawText)
		if occ.RecipeID != "" {
			agg.Recipes[occ.RecipeID] = occ.RecipeTitle
		}
	}

	result := make([]AggregatedIngredient, 0, len(byKey))
	for _, agg := range byKey {
		result = append(result, *agg)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})
	return result
}

// Sample returns the representative raw text for an aggregate, the first
// occurrence in contribution order.
func (a AggregatedIngredient) Sample() string {
	if len(a.OriginalTexts) == 0 {
		return a.Key
	}
	return a.OriginalTexts[0]
}

// RecipeRefs flattens the contributing recipes into a sorted slice.
func (a AggregatedIngredient) RecipeRefs() []RecipeRef {
	if len(a.Recipes) == 0 {
		return nil
	}
	refs := make([]RecipeRef, 0, len(a.Recipes))
	for id, title := range a.Recipes {
		refs = append(refs, RecipeRef{RecipeID: id, RecipeTitle: title})
	}
	sort.Slice(refs, func(i, j int) bool {
		return refs[i].RecipeID < refs[j].RecipeID
	})
	return refs
}
