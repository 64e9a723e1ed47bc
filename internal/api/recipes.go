package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"foodplaner/internal/recipe"
	"foodplaner/internal/spoonacular"
)

func (s *Server) handleListRecipes(c *gin.Context) {
	recipes, err := s.recipes.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (s *Server) handleSearchRecipes(c *gin.Context) {
	matches, err := s.recipes.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": matches})
}

func (s *Server) handleExternalSearch(c *gin.Context) {
	ctx := c.Request.Context()

	var results []spoonacular.SearchResult
	var err error
	if raw := c.Query("ingredients"); raw != "" {
		results, err = s.external.FindByIngredients(ctx, strings.Split(raw, ","), 10)
	} else {
		results, err = s.external.Search(ctx, c.Query("q"), 10)
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) handleSaveRecipe(c *gin.Context) {
	var rec recipe.Recipe
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if rec.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	saved, err := s.recipes.Save(c.Request.Context(), rec)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (s *Server) handleSuggestRecipes(c *gin.Context) {
	var req struct {
		Wish string `json:"wish" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := s.recipes.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result, err := s.suggester.Suggest(c.Request.Context(), req.Wish, existing)
	s.recordMetas(result.Meta)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": result.Recipes})
}

func (s *Server) handleImportRecipe(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.importer.Import(c.Request.Context(), req.Text)
	s.recordMetas(result.Meta)
	if err != nil {
		if errors.Is(err, recipe.ErrEmptyImport) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	saved, err := s.recipes.Save(c.Request.Context(), result.Recipe)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (s *Server) handleClipRecipe(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, meta, err := s.clipper.ClipURL(c.Request.Context(), req.URL)
	s.recordMetas(meta)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	saved, err := s.recipes.Save(c.Request.Context(), rec)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (s *Server) handleDeleteRecipe(c *gin.Context) {
	err := s.recipes.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, recipe.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
