package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"foodplaner/internal/clipper"
	"foodplaner/internal/config"
	"foodplaner/internal/mealplan"
	"foodplaner/internal/metrics"
	"foodplaner/internal/recipe"
	"foodplaner/internal/shopping"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram API around the shopping-list generator and the
// recipe clipper. It is webhook-driven and only talks to allow-listed
// users.
type Bot struct {
	api          *tgbotapi.BotAPI
	generator    *shopping.Generator
	shoppingRepo *shopping.Repository
	clipper      *clipper.Clipper
	recipeRepo   *recipe.Repository
	metricsStore *metrics.Store
	cfg          *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(
	cfg *config.Config,
	generator *shopping.Generator,
	shoppingRepo *shopping.Repository,
	clip *clipper.Clipper,
	recipeRepo *recipe.Repository,
	metricsStore *metrics.Store,
) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:          bot,
		generator:    generator,
		shoppingRepo: shoppingRepo,
		clipper:      clip,
		recipeRepo:   recipeRepo,
		metricsStore: metricsStore,
		cfg:          cfg,
	}, nil
}

// RegisterHandlers registers the webhook handler with the given mux.
func (b *Bot) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", b.handleWebhook)
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	isAllowed := false
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if update.Message.From.ID == id {
			isAllowed = true
			break
		}
	}

	if !isAllowed {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)

	switch {
	case text == "/metrics":
		b.handleMetricsRequest(msg)
	case text == "/shopping" || strings.HasPrefix(text, "/shopping "):
		b.handleShoppingRequest(msg)
	case strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://"):
		b.handleClipperRequest(msg)
	default:
		b.sendMarkdown(msg.Chat.ID, "Schick mir eine Rezept-URL zum Speichern oder `/shopping` für die Einkaufsliste der Woche.")
	}
}

func (b *Bot) handleShoppingRequest(msg *tgbotapi.Message) {
	sentMsg, err := b.api.Send(b.markdownMessage(msg.Chat.ID, "🛒 *Erstelle Einkaufsliste...*"))
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	day := time.Now()
	if arg := strings.TrimSpace(strings.TrimPrefix(msg.Text, "/shopping")); arg != "" {
		parsed, err := time.Parse("2006-01-02", arg)
		if err != nil {
			b.editMarkdown(msg.Chat.ID, sentMsg.MessageID, "❌ Ungültiges Datum, erwartet `YYYY-MM-DD`.")
			return
		}
		day = parsed
	}
	from, to := mealplan.WeekOf(day)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	household := b.cfg.HouseholdID
	list, metas, err := b.generator.Generate(ctx, household, from, to)

	for _, m := range metas {
		if recErr := b.metricsStore.RecordMeta(m); recErr != nil {
			log.Printf("Warning: failed to record metrics: %v", recErr)
		}
	}

	if err != nil {
		log.Printf("Error generating shopping list: %v", err)
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		b.editMarkdown(msg.Chat.ID, sentMsg.MessageID, fmt.Sprintf("❌ *Fehler beim Erstellen:*\n```\n%v\n```", safeErr))
		return
	}

	if err := b.shoppingRepo.ReplaceAll(ctx, household, list.FlatItems); err != nil {
		log.Printf("Error persisting shopping list: %v", err)
	}

	b.editMarkdown(msg.Chat.ID, sentMsg.MessageID, formatShoppingList(from, to, list))
}

func (b *Bot) handleClipperRequest(msg *tgbotapi.Message) {
	sentMsg, err := b.api.Send(b.markdownMessage(msg.Chat.ID, "✂️ *Speichere Rezept...*"))
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rec, meta, err := b.clipper.ClipURL(ctx, msg.Text)
	if recErr := b.metricsStore.RecordMeta(meta); recErr != nil {
		log.Printf("Warning: failed to record metrics: %v", recErr)
	}

	var finalText string
	if err != nil {
		log.Printf("Error clipping recipe: %v", err)
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		finalText = fmt.Sprintf("❌ *Fehler beim Speichern:*\n```\n%v\n```", safeErr)
	} else {
		saved, saveErr := b.recipeRepo.Save(ctx, rec)
		if saveErr != nil {
			log.Printf("Error saving clipped recipe: %v", saveErr)
			finalText = "❌ *Rezept konnte nicht gespeichert werden.*"
		} else {
			finalText = fmt.Sprintf("✅ *Rezept gespeichert!*\n\n*Titel:* %s\n*Zutaten:* %d", saved.Title, len(saved.Ingredients))
		}
	}

	b.editMarkdown(msg.Chat.ID, sentMsg.MessageID, finalText)
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.AdminTelegramID {
		b.sendMarkdown(msg.Chat.ID, "⛔ *Access Denied*: Admin only.")
		return
	}

	usage, err := b.metricsStore.GetDailyUsage(7)
	if err != nil {
		b.sendMarkdown(msg.Chat.ID, "❌ Error fetching metrics.")
		return
	}

	health := metrics.GetSysHealth("data")

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent LLM Activity*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d tokens (%d execs)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataDiskSize))

	b.sendMarkdown(msg.Chat.ID, sb.String())
}

func formatShoppingList(from, to time.Time, list shopping.CategorizedList) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🛒 *Einkaufsliste %s – %s*\n", from.Format("02.01."), to.Format("02.01.")))
	if list.Degraded {
		sb.WriteString("_⚠️ Kategorisierung nicht verfügbar, Liste unsortiert._\n")
	}

	if len(list.Categories) == 0 {
		sb.WriteString("\n_Keine Zutaten im Wochenplan._\n")
	}
	for _, group := range list.Categories {
		sb.WriteString(fmt.Sprintf("\n*%s*\n", group.Name))
		for _, item := range group.Items {
			if item.Amount != "" {
				sb.WriteString(fmt.Sprintf("• %s %s\n", item.Amount, item.Name))
			} else {
				sb.WriteString(fmt.Sprintf("• %s\n", item.Name))
			}
		}
	}

	if len(list.FromPantry) > 0 {
		sb.WriteString("\n🏠 *Schon im Vorrat*\n")
		for _, item := range list.FromPantry {
			sb.WriteString(fmt.Sprintf("• %s (%s)\n", item.Name, item.PantryMatch))
		}
	}

	if len(list.BasicItems) > 0 {
		sb.WriteString("\n🧂 *Grundzutaten prüfen*\n")
		for _, item := range list.BasicItems {
			sb.WriteString(fmt.Sprintf("• %s\n", item.Name))
		}
	}

	return sb.String()
}

func (b *Bot) markdownMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	return msg
}

func (b *Bot) sendMarkdown(chatID int64, text string) {
	if _, err := b.api.Send(b.markdownMessage(chatID, text)); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func (b *Bot) editMarkdown(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = "Markdown"
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("Failed to edit message: %v", err)
	}
}
