package shopping

import "strings"

// minSubstringRunes guards the fuzzy rung of the attribution ladder so
// that short keys like "ei" cannot match unrelated ingredients.
const minSubstringRunes = 4

// attributeRecipes resolves which aggregated ingredients a categorizer
// output item came from. Matching descends a fixed ladder against the
// normalized output name:
//
//  1. exact key match
//  2. substring match in either direction, both sides at least 4 runes
//  3. first-word match
//
// Within each rung the aggregates are scanned in key order and the first
// match wins. An item nothing matches gets no recipe refs.
func attributeRecipes(outputName string, aggs []AggregatedIngredient) []RecipeRef {
	name := Normalize(outputName)
	if name == "" {
		return nil
	}

	for _, agg := range aggs {
		if agg.Key == name {
			return agg.RecipeRefs()
		}
	}

	if len([]rune(name)) >= minSubstringRunes {
		for _, agg := range aggs {
			if len([]rune(agg.Key)) < minSubstringRunes {
				continue
			}
			if strings.Contains(agg.Key, name) || strings.Contains(name, agg.Key) {
				return agg.RecipeRefs()
			}
		}
	}

	nameWord := firstWord(name)
	for _, agg := range aggs {
		if firstWord(agg.Key) == nameWord {
			return agg.RecipeRefs()
		}
	}

	return nil
}

func firstWord(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}
