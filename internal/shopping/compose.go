package shopping

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// compose merges cached items, freshly categorized items and pantry
// matches into the final list shape. Output ordering is contractual:
// category groups follow CategoryOrder, empty groups are omitted, items
// inside a group are sorted by name.
func compose(
	householdID string,
	hits []CachedIngredient,
	fresh CategorizationResult,
	aggs []AggregatedIngredient,
	pantryNames []string,
) CategorizedList {
	grouped := make(map[string][]ListItem)
	var fromPantry []PantryItemView
	var basicItems []BasicItemView

	for _, hit := range hits {
		name := hit.Entry.DisplayName
		if name == "" {
			name = hit.Entry.Key
		}
		if match, ok := matchPantry(hit.Entry.Key, pantryNames); ok {
			fromPantry = append(fromPantry, PantryItemView{Name: name, PantryMatch: match})
			continue
		}
		if hit.Entry.IsBasic {
			basicItems = append(basicItems, BasicItemView{Name: name, Category: canonicalCategory(hit.Entry.Category)})
			continue
		}
		category := canonicalCategory(hit.Entry.Category)
		grouped[category] = append(grouped[category], ListItem{
			Name:    name,
			Recipes: hit.Ingredient.RecipeRefs(),
		})
	}

	for _, item := range fresh.ShoppingItems {
		if strings.TrimSpace(item.Name) == "" {
			continue
		}
		if match, ok := matchPantry(Normalize(item.Name), pantryNames); ok {
			fromPantry = append(fromPantry, PantryItemView{Name: item.Name, Amount: item.Amount, PantryMatch: match})
			continue
		}
		category := canonicalCategory(item.Category)
		grouped[category] = append(grouped[category], ListItem{
			Name:    item.Name,
			Amount:  item.Amount,
			Recipes: attributeRecipes(item.Name, aggs),
		})
	}

	fromPantry = append(fromPantry, fresh.FromPantry...)
	basicItems = append(basicItems, fresh.BasicItems...)

	sort.Slice(fromPantry, func(i, j int) bool { return fromPantry[i].Name < fromPantry[j].Name })
	sort.Slice(basicItems, func(i, j int) bool { return basicItems[i].Name < basicItems[j].Name })

	var categories []CategoryGroup
	for _, name := range CategoryOrder {
		items := grouped[name]
		if len(items) == 0 {
			continue
		}
		sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
		categories = append(categories, CategoryGroup{Name: name, Items: items})
	}

	return CategorizedList{
		Categories: categories,
		FromPantry: fromPantry,
		BasicItems: basicItems,
		FlatItems:  flattenItems(householdID, categories),
	}
}

// flattenItems builds the persisted projection of the category groups.
// The display string joins amount and name; recipe attribution collapses
// to the first recipe's ID and a comma-joined title list.
func flattenItems(householdID string, categories []CategoryGroup) []ShoppingItem {
	var flat []ShoppingItem
	for _, group := range categories {
		for _, item := range group.Items {
			display := item.Name
			if item.Amount != "" {
				display = item.Amount + " " + item.Name
			}

			var recipeID, recipeTitle string
			if len(item.Recipes) > 0 {
				recipeID = item.Recipes[0].RecipeID
				titles := make([]string, 0, len(item.Recipes))
				for _, ref := range item.Recipes {
					titles = append(titles, ref.RecipeTitle)
				}
				recipeTitle = strings.Join(titles, ", ")
			}

			flat = append(flat, ShoppingItem{
				ID:          uuid.NewString(),
				HouseholdID: householdID,
				Name:        display,
				Category:    group.Name,
				RecipeID:    recipeID,
				RecipeTitle: recipeTitle,
			})
		}
	}
	return flat
}
