package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodplaner/internal/api"
	"foodplaner/internal/auth"
	"foodplaner/internal/clipper"
	"foodplaner/internal/config"
	"foodplaner/internal/database"
	"foodplaner/internal/llm"
	"foodplaner/internal/mealplan"
	"foodplaner/internal/metrics"
	"foodplaner/internal/pantry"
	"foodplaner/internal/recipe"
	"foodplaner/internal/shopping"
	"foodplaner/internal/spoonacular"
	"foodplaner/internal/telegram"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	// LLM clients: Groq for the fast structured tasks, Gemini for the
	// free-form suggestions.
	categorizerModel := llm.NewGroqClient(cfg, llm.ModelCategorizer, 0.1)
	extractorModel := llm.NewGroqClient(cfg, llm.ModelExtractor, 0.3)

	geminiClient, err := llm.NewGeminiClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}
	defer geminiClient.Close()

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	recipeRepo := recipe.NewRepository(db.SQL)
	planRepo := mealplan.NewRepository(db.SQL)
	pantryRepo := pantry.NewRepository(db.SQL)
	shoppingRepo := shopping.NewRepository(db.SQL)
	cacheRepo := shopping.NewCacheRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	categorizer := shopping.NewLLMCategorizer(categorizerModel, cfg.CategorizerTimeout)
	generator := shopping.NewGenerator(
		mealplan.NewIngredientSource(planRepo, recipeRepo),
		pantryRepo,
		cacheRepo,
		categorizer,
	)

	recipeClipper := clipper.NewClipper(extractorModel)
	suggester := recipe.NewSuggester(geminiClient, cfg.DailyCalories)
	importer := recipe.NewImporter(extractorModel)

	server := api.NewServer(api.Deps{
		Auth:      auth.NewService(cfg.JWTSecret, cfg.APIUsername, cfg.APIPassword, cfg.HouseholdID),
		Recipes:   recipeRepo,
		Pantry:    pantryRepo,
		Plans:     planRepo,
		Shopping:  shoppingRepo,
		Cache:     cacheRepo,
		Generator: generator,
		Suggester: suggester,
		Importer:  importer,
		Clipper:   recipeClipper,
		External:  spoonacular.NewClient(cfg.SpoonacularAPIKey),
		Metrics:   metricsStore,
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", server.Router())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// The Telegram bot is optional; without a token the API runs alone.
	if cfg.TelegramBotToken != "" {
		bot, err := telegram.NewBot(cfg, generator, shoppingRepo, recipeClipper, recipeRepo, metricsStore)
		if err != nil {
			log.Fatalf("Failed to initialize Telegram Bot: %v", err)
		}
		bot.RegisterHandlers(mux)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: mux,
	}

	go func() {
		log.Printf("Server listening on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
