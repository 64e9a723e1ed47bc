package clipper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"foodplaner/internal/llm"
	"foodplaner/internal/recipe"
	"foodplaner/internal/shared"

	"github.com/PuerkitoBio/goquery"
)

// Clipper fetches a recipe page and turns it into a structured recipe.
type Clipper struct {
	textGen llm.TextGenerator
	client  *http.Client
}

// NewClipper creates a new Clipper instance.
func NewClipper(textGen llm.TextGenerator) *Clipper {
	return &Clipper{
		textGen: textGen,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// ClipURL fetches the URL and extracts the recipe using the model. The
// caller owns persistence.
func (c *Clipper) ClipURL(ctx context.Context, url string) (recipe.Recipe, shared.AgentMeta, error) {
	start := time.Now()

	content, err := c.fetchAndCleanHTML(ctx, url)
	if err != nil {
		return recipe.Recipe{}, shared.AgentMeta{}, fmt.Errorf("failed to fetch content: %w", err)
	}

	prompt := fmt.Sprintf(`
You are a recipe extraction expert. Extract the recipe details from the following page content.
Return the result strictly as a JSON object with this structure:
{
  "title": "Recipe Title",
  "ingredients": ["quantity + item 1", "quantity + item 2", ...],
  "instructions": "Step-by-step instructions",
  "tags": ["tag1", "tag2"],
  "prep_time": "e.g. 30 mins",
  "servings": "e.g. 4 people"
}
Keep the original language of the page. Return ONLY the raw JSON string.

Page Content:
%s
`, content)

	resp, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return recipe.Recipe{}, shared.AgentMeta{}, fmt.Errorf("ai extraction failed: %w", err)
	}

	meta := shared.AgentMeta{
		AgentName: "Clipper",
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}

	var extracted recipe.Recipe
	if err := json.Unmarshal([]byte(resp.Content), &extracted); err != nil {
		return recipe.Recipe{}, meta, fmt.Errorf("failed to parse AI response: %w. Response: %s", err, resp.Content)
	}
	if extracted.Title == "" {
		return recipe.Recipe{}, meta, fmt.Errorf("no recipe found at %s", url)
	}

	extracted.SourceURL = url
	return extracted, meta, nil
}

func (c *Clipper) fetchAndCleanHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save LLM tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return doc.Find("body").Text(), nil
}
