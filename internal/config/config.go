package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath string

	// LLM providers
	GeminiAPIKey string
	GroqAPIKey   string

	// Categorizer behaviour
	CategorizerTimeout time.Duration

	// Spoonacular recipe search
	SpoonacularAPIKey string

	// HTTP API
	ServerPort    string
	JWTSecret     string
	APIUsername   string
	APIPassword   string
	HouseholdID   string
	DailyCalories int

	// Telegram Config
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
	AdminTelegramID        int64
}

// NewFromEnv creates a new Config object from environment variables.
// A .env file in the working directory is loaded first if present.
func NewFromEnv() (*Config, error) {
	// Missing .env is fine; real deployments use process env vars.
	_ = godotenv.Load()

	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	groqAPIKey := os.Getenv("GROQ_API_KEY")
	if groqAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY environment variable not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	databasePath := os.Getenv("DATABASE_PATH")
	if databasePath == "" {
		databasePath = "data/foodplaner.db"
	}

	serverPort := os.Getenv("PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	householdID := os.Getenv("HOUSEHOLD_ID")
	if householdID == "" {
		householdID = "default"
	}

	categorizerTimeout := 60 * time.Second
	if raw := os.Getenv("CATEGORIZER_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid CATEGORIZER_TIMEOUT %q: %w", raw, err)
		}
		categorizerTimeout = d
	}

	dailyCalories := 1800
	if raw := os.Getenv("DAILY_CALORIE_TARGET"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid DAILY_CALORIE_TARGET %q: %w", raw, err)
		}
		dailyCalories = n
	}

	// Telegram config (optional for CLI, required for the bot server)
	var allowedIDs []int64
	for _, part := range strings.Split(os.Getenv("TELEGRAM_ALLOWED_USER_IDS"), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS entry %q: %w", part, err)
		}
		allowedIDs = append(allowedIDs, id)
	}

	var adminTelegramID int64
	if raw := os.Getenv("ADMIN_TELEGRAM_ID"); raw != "" {
		fmt.Sscanf(raw, "%d", &adminTelegramID)
	}

	return &Config{
		DatabasePath:           databasePath,
		GeminiAPIKey:           geminiAPIKey,
		GroqAPIKey:             groqAPIKey,
		CategorizerTimeout:     categorizerTimeout,
		SpoonacularAPIKey:      os.Getenv("SPOONACULAR_API_KEY"),
		ServerPort:             serverPort,
		JWTSecret:              jwtSecret,
		APIUsername:            os.Getenv("API_USERNAME"),
		APIPassword:            os.Getenv("API_PASSWORD"),
		HouseholdID:            householdID,
		DailyCalories:          dailyCalories,
		TelegramBotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:     os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowedUserIDs: allowedIDs,
		AdminTelegramID:        adminTelegramID,
	}, nil
}
