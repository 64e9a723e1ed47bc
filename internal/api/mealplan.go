package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"foodplaner/internal/mealplan"
)

const dateLayout = "2006-01-02"

// weekFromQuery resolves the requested week, defaulting to the current one.
func weekFromQuery(c *gin.Context) (time.Time, time.Time, error) {
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		day = parsed
	}
	from, to := mealplan.WeekOf(day)
	return from, to, nil
}

func (s *Server) handleGetMealPlan(c *gin.Context) {
	from, to, err := weekFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	entries, err := s.plans.Range(c.Request.Context(), householdID(c), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Titles are resolved here so the client does not need a second round trip.
	for i, entry := range entries {
		rec, err := s.recipes.Get(c.Request.Context(), entry.RecipeID)
		if err == nil {
			entries[i].RecipeTitle = rec.Title
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"from":    from.Format(dateLayout),
		"to":      to.Format(dateLayout),
		"entries": entries,
	})
}

func (s *Server) handleAddMealPlanEntry(c *gin.Context) {
	var req struct {
		RecipeID string `json:"recipe_id" binding:"required"`
		Date     string `json:"date" binding:"required"`
		MealType string `json:"meal_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	if _, err := s.recipes.Get(c.Request.Context(), req.RecipeID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	entry, err := s.plans.Add(c.Request.Context(), mealplan.Entry{
		HouseholdID: householdID(c),
		RecipeID:    req.RecipeID,
		Date:        date,
		MealType:    req.MealType,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (s *Server) handleMoveMealPlanEntry(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	var req struct {
		Date     string `json:"date" binding:"required"`
		MealType string `json:"meal_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	if err := s.plans.Move(c.Request.Context(), householdID(c), id, date, req.MealType); err != nil {
		if errors.Is(err, mealplan.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal plan entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDeleteMealPlanEntry(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	if err := s.plans.Delete(c.Request.Context(), householdID(c), id); err != nil {
		if errors.Is(err, mealplan.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal plan entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
