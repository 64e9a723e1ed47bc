package recipe

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"text/template"
	"time"

	"foodplaner/internal/llm"
	"foodplaner/internal/shared"
)

//go:embed suggester_prompt.md
var suggesterPrompt string

type suggesterPromptData struct {
	Wish           string
	DailyCalories  int
	ExistingTitles []string
}

// SuggesterResult carries the proposed recipes together with usage meta.
type SuggesterResult struct {
	Recipes []Recipe
	Meta    shared.AgentMeta
}

// Suggester asks the model for new recipe ideas matching a free-text
// wish, avoiding titles the household already has.
type Suggester struct {
	textGen       llm.TextGenerator
	dailyCalories int
}

func NewSuggester(textGen llm.TextGenerator, dailyCalories int) *Suggester {
	return &Suggester{
		textGen:       textGen,
		dailyCalories: dailyCalories,
	}
}

func (s *Suggester) Suggest(ctx context.Context, wish string, existing []Recipe) (SuggesterResult, error) {
	start := time.Now()

	titles := make([]string, 0, len(existing))
	for _, rec := range existing {
		titles = append(titles, rec.Title)
	}

	prompt, err := buildSuggesterPrompt(suggesterPromptData{
		Wish:           wish,
		DailyCalories:  s.dailyCalories,
		ExistingTitles: titles,
	})
	if err != nil {
		return SuggesterResult{}, err
	}

	resp, err := s.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return SuggesterResult{}, fmt.Errorf("failed to get LLM response: %w", err)
	}

	meta := shared.AgentMeta{
		AgentName: "Suggester",
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}

	raw := struct {
		Recipes []Recipe `json:"recipes"`
	}{}
	if err := json.Unmarshal([]byte(resp.Content), &raw); err != nil {
		return SuggesterResult{Meta: meta}, fmt.Errorf(
			"failed to parse suggester response %w. Response: %s",
			err,
			resp.Content,
		)
	}

	return SuggesterResult{Recipes: raw.Recipes, Meta: meta}, nil
}

func buildSuggesterPrompt(data suggesterPromptData) (string, error) {
	tmpl, err := template.New("suggester").Parse(suggesterPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
