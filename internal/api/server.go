package api

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"foodplaner/internal/auth"
	"foodplaner/internal/clipper"
	"foodplaner/internal/mealplan"
	"foodplaner/internal/metrics"
	"foodplaner/internal/pantry"
	"foodplaner/internal/recipe"
	"foodplaner/internal/shared"
	"foodplaner/internal/shopping"
	"foodplaner/internal/spoonacular"
)

const claimsKey = "authClaims"

// ListGenerator runs one shopping-list generation.
type ListGenerator interface {
	Generate(ctx context.Context, householdID string, from, to time.Time) (shopping.CategorizedList, []shared.AgentMeta, error)
}

// RecipeSuggester proposes new recipes for a free-text wish.
type RecipeSuggester interface {
	Suggest(ctx context.Context, wish string, existing []recipe.Recipe) (recipe.SuggesterResult, error)
}

// RecipeImporter parses pasted recipe text.
type RecipeImporter interface {
	Import(ctx context.Context, text string) (recipe.ImporterResult, error)
}

// RecipeClipper imports a recipe from a URL.
type RecipeClipper interface {
	ClipURL(ctx context.Context, url string) (recipe.Recipe, shared.AgentMeta, error)
}

// Server wires the HTTP surface onto the domain services.
type Server struct {
	auth      *auth.Service
	recipes   *recipe.Repository
	pantry    *pantry.Repository
	plans     *mealplan.Repository
	shopping  *shopping.Repository
	cache     shopping.CacheStore
	generator ListGenerator
	suggester RecipeSuggester
	importer  RecipeImporter
	clipper   RecipeClipper
	external  *spoonacular.Client
	metrics   *metrics.Store
}

type Deps struct {
	Auth      *auth.Service
	Recipes   *recipe.Repository
	Pantry    *pantry.Repository
	Plans     *mealplan.Repository
	Shopping  *shopping.Repository
	Cache     shopping.CacheStore
	Generator ListGenerator
	Suggester RecipeSuggester
	Importer  RecipeImporter
	Clipper   RecipeClipper
	External  *spoonacular.Client
	Metrics   *metrics.Store
}

func NewServer(deps Deps) *Server {
	return &Server{
		auth:      deps.Auth,
		recipes:   deps.Recipes,
		pantry:    deps.Pantry,
		plans:     deps.Plans,
		shopping:  deps.Shopping,
		cache:     deps.Cache,
		generator: deps.Generator,
		suggester: deps.Suggester,
		importer:  deps.Importer,
		clipper:   deps.Clipper,
		external:  deps.External,
		metrics:   deps.Metrics,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.POST("/api/login", s.handleLogin)

	authed := router.Group("/api")
	authed.Use(s.authRequired())
	{
		authed.GET("/recipes", s.handleListRecipes)
		authed.GET("/recipes/search", s.handleSearchRecipes)
		authed.GET("/recipes/external", s.handleExternalSearch)
		authed.POST("/recipes", s.handleSaveRecipe)
		authed.POST("/recipes/suggest", s.handleSuggestRecipes)
		authed.POST("/recipes/import", s.handleImportRecipe)
		authed.POST("/recipes/clip", s.handleClipRecipe)
		authed.DELETE("/recipes/:id", s.handleDeleteRecipe)

		authed.GET("/pantry", s.handleListPantry)
		authed.POST("/pantry", s.handleAddPantry)
		authed.DELETE("/pantry/:id", s.handleDeletePantry)

		authed.GET("/mealplan", s.handleGetMealPlan)
		authed.POST("/mealplan", s.handleAddMealPlanEntry)
		authed.PUT("/mealplan/:id", s.handleMoveMealPlanEntry)
		authed.DELETE("/mealplan/:id", s.handleDeleteMealPlanEntry)

		authed.GET("/shopping", s.handleGetShoppingList)
		authed.POST("/shopping/generate", s.handleGenerateShoppingList)
		authed.POST("/shopping", s.handleAddShoppingItem)
		authed.PATCH("/shopping/:id", s.handleToggleShoppingItem)
		authed.DELETE("/shopping/:id", s.handleDeleteShoppingItem)
		authed.DELETE("/shopping", s.handleClearShoppingList)
		authed.DELETE("/shopping/cache", s.handleClearCache)

		authed.GET("/metrics/usage", s.handleUsage)
	}

	return router
}

func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := s.auth.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

func householdID(c *gin.Context) string {
	claims, ok := c.Get(claimsKey)
	if !ok {
		return ""
	}
	return claims.(auth.Claims).HouseholdID
}

func (s *Server) handleLogin(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := s.auth.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) handleUsage(c *gin.Context) {
	days := 7
	usage, err := s.metrics.GetDailyUsage(days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "usage": usage})
}

// recordMetas persists agent usage; failures only cost reporting.
func (s *Server) recordMetas(metas ...shared.AgentMeta) {
	if s.metrics == nil {
		return
	}
	for _, meta := range metas {
		if err := s.metrics.RecordMeta(meta); err != nil {
			log.Printf("Warning: failed to record metrics: %v", err)
		}
	}
}

var _ RecipeClipper = (*clipper.Clipper)(nil)
