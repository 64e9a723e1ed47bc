package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"foodplaner/internal/config"
	"foodplaner/internal/database"
	"foodplaner/internal/llm"
	"foodplaner/internal/mealplan"
	"foodplaner/internal/metrics"
	"foodplaner/internal/pantry"
	"foodplaner/internal/recipe"
	"foodplaner/internal/shopping"
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

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

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate-shopping":
		genCmd := flag.NewFlagSet("generate-shopping", flag.ExitOnError)
		dateArg := genCmd.String("date", "", "Any day of the target week (YYYY-MM-DD, default today)")
		genCmd.Parse(os.Args[2:])

		day := time.Now()
		if *dateArg != "" {
			parsed, err := time.Parse("2006-01-02", *dateArg)
			if err != nil {
				log.Fatalf("Invalid date %q: %v", *dateArg, err)
			}
			day = parsed
		}
		from, to := mealplan.WeekOf(day)

		categorizerModel := llm.NewGroqClient(cfg, llm.ModelCategorizer, 0.1)
		categorizer := shopping.NewLLMCategorizer(categorizerModel, cfg.CategorizerTimeout)
		generator := shopping.NewGenerator(
			mealplan.NewIngredientSource(planRepo, recipeRepo),
			pantryRepo,
			cacheRepo,
			categorizer,
		)

		list, metas, err := generator.Generate(ctx, cfg.HouseholdID, from, to)
		for _, m := range metas {
			if recErr := metricsStore.RecordMeta(m); recErr != nil {
				log.Printf("Warning: failed to record metrics: %v", recErr)
			}
		}
		if err != nil {
			log.Fatalf("Shopping list generation failed: %v", err)
		}

		if err := shoppingRepo.ReplaceAll(ctx, cfg.HouseholdID, list.FlatItems); err != nil {
			log.Fatalf("Failed to persist shopping list: %v", err)
		}

		output, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			log.Fatalf("Failed to render shopping list: %v", err)
		}
		fmt.Println(string(output))
		if list.Degraded {
			fmt.Fprintln(os.Stderr, "Warning: categorization was unavailable, items are unsorted.")
		}

	case "clear-cache":
		count, err := cacheRepo.Clear(ctx, cfg.HouseholdID)
		if err != nil {
			log.Fatalf("Failed to clear ingredient cache: %v", err)
		}
		fmt.Printf("Removed %d cached categorizations.\n", count)

	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		if err := metricsStore.Cleanup(*days); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Println("Removed old metric records.")

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: foodplaner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  generate-shopping  Build the consolidated shopping list for a week")
	fmt.Println("  clear-cache        Drop the household's ingredient categorization cache")
	fmt.Println("  metrics-cleanup    Remove old metric records")
}
