package shopping

// IngredientOccurrence is a single raw ingredient line contributed by a
// planned recipe. Occurrences only live for the duration of one
// shopping-list generation.
type IngredientOccurrence struct {
	RawText     string
	RecipeID    string
	RecipeTitle string
}

// AggregatedIngredient collects all occurrences that normalized to the
// same key, together with the recipes that contributed them.
type AggregatedIngredient struct {
	Key           string
	OriginalTexts []string
	// Recipes is keyed by recipe ID so that several ingredient lines
	// from the same recipe count once.
	Recipes map[string]string
}

// RecipeRef points a consolidated item back at an originating recipe.
type RecipeRef struct {
	RecipeID    string `json:"recipe_id"`
	RecipeTitle string `json:"recipe_title"`
}

// CacheEntry is one remembered categorization decision for a household.
// Entries are never updated in place; an existing entry is authoritative
// until the household's cache is cleared.
type CacheEntry struct {
	HouseholdID string
	Key         string
	Category    string
	DisplayName string
	IsBasic     bool
}

// ShoppingItem is the persisted, flat projection of a consolidated item.
type ShoppingItem struct {
	ID          string `json:"id"`
	HouseholdID string `json:"-"`
	Name        string `json:"name"`
	Checked     bool   `json:"checked"`
	Category    string `json:"category"`
	RecipeID    string `json:"recipe_id,omitempty"`
	RecipeTitle string `json:"recipe_title,omitempty"`
}

// ListItem is a consolidated item inside a category group.
type ListItem struct {
	Name    string      `json:"name"`
	Amount  string      `json:"amount,omitempty"`
	Recipes []RecipeRef `json:"recipes,omitempty"`
}

// CategoryGroup holds the items of one shopping category.
type CategoryGroup struct {
	Name  string     `json:"name"`
	Items []ListItem `json:"items"`
}

// PantryItemView is an item that is already covered by the pantry.
type PantryItemView struct {
	Name        string `json:"name"`
	Amount      string `json:"amount,omitempty"`
	PantryMatch string `json:"pantry_match,omitempty"`
}

// BasicItemView is a kitchen staple listed apart from the main list.
type BasicItemView struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// CategorizedList is the composed result of one generation run.
type CategorizedList struct {
	Categories []CategoryGroup  `json:"categories"`
	FromPantry []PantryItemView `json:"from_pantry"`
	BasicItems []BasicItemView  `json:"basic_items"`
	FlatItems  []ShoppingItem   `json:"items"`

	// Degraded is set when the categorizer was unavailable and the
	// affected items were emitted under CategoryMisc instead.
	Degraded      bool  `json:"degraded,omitempty"`
	DegradedCause error `json:"-"`
}

// The fixed shopping category enumeration, in display order.
const (
	CategoryProduce   = "Obst & Gemüse"
	CategoryMeatFish  = "Fleisch & Fisch"
	CategoryDairyEggs = "Milchprodukte & Eier"
	CategoryBakery    = "Backwaren"
	CategoryFrozen    = "Tiefkühl"
	CategoryCanned    = "Konserven & Fertiggerichte"
	CategorySpicesOil = "Gewürze & Öle"
	CategoryBeverages = "Getränke"
	CategoryMisc      = "Sonstiges"
)

// CategoryOrder is the contractual output order of category groups.
var CategoryOrder = []string{
	CategoryProduce,
	CategoryMeatFish,
	CategoryDairyEggs,
	CategoryBakery,
	CategoryFrozen,
	CategoryCanned,
	CategorySpicesOil,
	CategoryBeverages,
	CategoryMisc,
}

var knownCategories = func() map[string]struct{} {
	m := make(map[string]struct{}, len(CategoryOrder))
	for _, c := range CategoryOrder {
		m[c] = struct{}{}
	}
	return m
}()

// canonicalCategory maps arbitrary categorizer output onto the fixed
// enumeration. Unknown categories land in CategoryMisc, never dropped.
func canonicalCategory(category string) string {
	if _, ok := knownCategories[category]; ok {
		return category
	}
	return CategoryMisc
}
