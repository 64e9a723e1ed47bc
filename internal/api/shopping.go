package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleGetShoppingList(c *gin.Context) {
	items, err := s.shopping.List(c.Request.Context(), householdID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) handleGenerateShoppingList(c *gin.Context) {
	from, to, err := weekFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	household := householdID(c)
	list, metas, err := s.generator.Generate(c.Request.Context(), household, from, to)
	s.recordMetas(metas...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// The prior list is only replaced after a successful composition.
	if err := s.shopping.ReplaceAll(c.Request.Context(), household, list.FlatItems); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":        from.Format(dateLayout),
		"to":          to.Format(dateLayout),
		"categories":  list.Categories,
		"from_pantry": list.FromPantry,
		"basic_items": list.BasicItems,
		"items":       list.FlatItems,
		"degraded":    list.Degraded,
	})
}

func (s *Server) handleAddShoppingItem(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := s.shopping.Add(c.Request.Context(), householdID(c), req.Name, req.Category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) handleToggleShoppingItem(c *gin.Context) {
	var req struct {
		Checked bool `json:"checked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := s.shopping.Toggle(c.Request.Context(), householdID(c), c.Param("id"), req.Checked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shopping item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDeleteShoppingItem(c *gin.Context) {
	err := s.shopping.Delete(c.Request.Context(), householdID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shopping item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleClearShoppingList(c *gin.Context) {
	if err := s.shopping.Clear(c.Request.Context(), householdID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleClearCache(c *gin.Context) {
	count, err := s.cache.Clear(c.Request.Context(), householdID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": count})
}
