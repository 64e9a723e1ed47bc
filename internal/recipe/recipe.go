package recipe

import "strings"

// Recipe is the stored recipe shape. Rows keep the whole recipe as a
// JSON blob, so adding fields here does not need a migration.
type Recipe struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	Tags         []string `json:"tags"`
	PrepTime     string   `json:"prep_time"`
	Servings     string   `json:"servings"`
	Calories     string   `json:"calories,omitempty"`
	SourceURL    string   `json:"source_url,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`
}

// MatchesQuery reports whether the recipe matches a free-text query
// against title, tags and ingredients.
func (r Recipe) MatchesQuery(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Title), q) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), q) {
			return true
		}
	}
	return false
}
