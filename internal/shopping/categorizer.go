package shopping

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"text/template"
	"time"

	"foodplaner/internal/llm"
	"foodplaner/internal/shared"
)

//go:embed categorizer_prompt.md
var categorizerPrompt string

// CategorizationError wraps any failure of the categorizer gateway. The
// generator treats it as a signal to degrade, not to abort.
type CategorizationError struct {
	Cause error
}

func (e *CategorizationError) Error() string {
	return fmt.Sprintf("ingredient categorization failed: %v", e.Cause)
}

func (e *CategorizationError) Unwrap() error {
	return e.Cause
}

// CategorizedItem is one consolidated shopping item as the model names it.
type CategorizedItem struct {
	Name     string `json:"name"`
	Amount   string `json:"amount,omitempty"`
	Category string `json:"category"`
}

// CategorizationResult is the JSON contract of the categorizer response.
type CategorizationResult struct {
	ShoppingItems []CategorizedItem `json:"shopping_items"`
	FromPantry    []PantryItemView  `json:"from_pantry"`
	BasicItems    []BasicItemView   `json:"basic_items"`
}

// Categorizer resolves ingredients the cache has never seen.
type Categorizer interface {
	Categorize(ctx context.Context, samples []string, pantryItems []string) (CategorizationResult, shared.AgentMeta, error)
}

type categorizerPromptData struct {
	Ingredients []string
	PantryItems []string
	Categories  []string
}

// LLMCategorizer sends one representative sample per unresolved
// ingredient to the model and parses the structured answer.
type LLMCategorizer struct {
	textGen llm.TextGenerator
	timeout time.Duration
}

func NewLLMCategorizer(textGen llm.TextGenerator, timeout time.Duration) *LLMCategorizer {
	return &LLMCategorizer{
		textGen: textGen,
		timeout: timeout,
	}
}

func (c *LLMCategorizer) Categorize(
	ctx context.Context,
	samples []string,
	pantryItems []string,
) (CategorizationResult, shared.AgentMeta, error) {
	start := time.Now()

	prompt, err := buildCategorizerPrompt(categorizerPromptData{
		Ingredients: samples,
		PantryItems: pantryItems,
		Categories:  CategoryOrder,
	})
	if err != nil {
		return CategorizationResult{}, shared.AgentMeta{}, &CategorizationError{Cause: err}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return CategorizationResult{}, shared.AgentMeta{}, &CategorizationError{
			Cause: fmt.Errorf("failed to get LLM response: %w", err),
		}
	}

	meta := shared.AgentMeta{
		AgentName: "Categorizer",
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}

	result := CategorizationResult{}
	if err := json.Unmarshal([]byte(resp.Content), &result); err != nil {
		return CategorizationResult{}, meta, &CategorizationError{
			Cause: fmt.Errorf("failed to parse categorizer response %w. Response: %s", err, resp.Content),
		}
	}

	for i, item := range result.ShoppingItems {
		result.ShoppingItems[i].Category = canonicalCategory(item.Category)
	}
	for i, item := range result.BasicItems {
		result.BasicItems[i].Category = canonicalCategory(item.Category)
	}

	return result, meta, nil
}

// IsCategorizationError reports whether err stems from the categorizer
// gateway, including timeouts surfaced through it.
func IsCategorizationError(err error) bool {
	var catErr *CategorizationError
	return errors.As(err, &catErr)
}

func buildCategorizerPrompt(data categorizerPromptData) (string, error) {
	tmpl, err := template.New("categorizer").Parse(categorizerPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
