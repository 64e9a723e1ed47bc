package mealplan

import "time"

// Entry is one planned meal on one day.
type Entry struct {
	ID          int64     `json:"id"`
	HouseholdID string    `json:"-"`
	RecipeID    string    `json:"recipe_id"`
	RecipeTitle string    `json:"recipe_title,omitempty"`
	Date        time.Time `json:"date"`
	MealType    string    `json:"meal_type"`
}

// WeekOf returns the Monday and Sunday enclosing the given day.
func WeekOf(day time.Time) (time.Time, time.Time) {
	day = day.Truncate(24 * time.Hour)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	monday := day.AddDate(0, 0, -(weekday - 1))
	sunday := monday.AddDate(0, 0, 6)
	return monday, sunday
}
