package recipe

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"foodplaner/internal/database"
	"foodplaner/internal/llm"
	"foodplaner/internal/shared"
)

type MockTextGenerator struct {
	Response string
	Err      error
	Prompt   string
}

func (m *MockTextGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.Prompt = prompt
	if m.Err != nil {
		return llm.ContentResponse{}, m.Err
	}
	return llm.ContentResponse{
		Content: m.Response,
		Usage:   shared.TokenUsage{PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30, Model: "test"},
	}, nil
}

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.SQL)
}

func TestRepositorySaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	saved, err := repo.Save(ctx, Recipe{
		Title:       "Spaghetti Bolognese",
		Ingredients: []string{"500g Hackfleisch", "400g Spaghetti"},
		Tags:        []string{"pasta"},
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("Expected an assigned ID")
	}

	got, err := repo.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "Spaghetti Bolognese" || len(got.Ingredients) != 2 {
		t.Errorf("Unexpected recipe: %+v", got)
	}
}

func TestRepositoryGetMissing(t *testing.T) {
	repo := newTestRepository(t)
	if _, err := repo.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestRepositorySearch(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	recipes := []Recipe{
		{Title: "Spaghetti Bolognese", Ingredients: []string{"Hackfleisch"}, Tags: []string{"pasta"}},
		{Title: "Gemüsecurry", Ingredients: []string{"Kokosmilch"}, Tags: []string{"vegetarisch"}},
	}
	for _, rec := range recipes {
		if _, err := repo.Save(ctx, rec); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	matches, err := repo.Search(ctx, "hackfleisch")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 1 || matches[0].Title != "Spaghetti Bolognese" {
		t.Errorf("Unexpected matches: %+v", matches)
	}

	all, err := repo.Search(ctx, "")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected empty query to match everything, got %d", len(all))
	}
}

func TestRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	saved, err := repo.Save(ctx, Recipe{Title: "Pfannkuchen"})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := repo.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete(ctx, saved.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected empty repository, got %d", count)
	}
}

func TestSuggester(t *testing.T) {
	gen := &MockTextGenerator{
		Response: `{"recipes": [{"title": "Linsendal", "ingredients": ["250g rote Linsen"], "instructions": "Kochen.", "tags": ["vegetarisch"]}]}`,
	}
	sug := NewSuggester(gen, 1800)

	result, err := sug.Suggest(context.Background(), "etwas Vegetarisches", []Recipe{{Title: "Gemüsecurry"}})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(result.Recipes) != 1 || result.Recipes[0].Title != "Linsendal" {
		t.Errorf("Unexpected recipes: %+v", result.Recipes)
	}
	if result.Meta.AgentName != "Suggester" {
		t.Errorf("Expected agent name 'Suggester', got %q", result.Meta.AgentName)
	}
	if !strings.Contains(gen.Prompt, "etwas Vegetarisches") {
		t.Error("Expected the wish in the prompt")
	}
	if !strings.Contains(gen.Prompt, "Gemüsecurry") {
		t.Error("Expected existing titles in the prompt")
	}
	if !strings.Contains(gen.Prompt, "1800") {
		t.Error("Expected the calorie target in the prompt")
	}
}

func TestSuggesterMalformedResponse(t *testing.T) {
	gen := &MockTextGenerator{Response: "not json"}
	sug := NewSuggester(gen, 1800)

	result, err := sug.Suggest(context.Background(), "egal", nil)
	if err == nil {
		t.Fatal("Expected a parse error")
	}
	if !strings.Contains(err.Error(), "not json") {
		t.Error("Expected the raw response in the error")
	}
	if result.Meta.AgentName != "Suggester" {
		t.Errorf("Expected meta even on failure, got %+v", result.Meta)
	}
}

func TestImporter(t *testing.T) {
	gen := &MockTextGenerator{
		Response: `{"title": "Omas Kartoffelsuppe", "ingredients": ["1kg Kartoffeln", "2 Möhren"], "instructions": "Alles kochen."}`,
	}
	imp := NewImporter(gen)

	result, err := imp.Import(context.Background(), "Omas Kartoffelsuppe\n1kg Kartoffeln\n2 Möhren\nAlles kochen.")
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Recipe.Title != "Omas Kartoffelsuppe" || len(result.Recipe.Ingredients) != 2 {
		t.Errorf("Unexpected recipe: %+v", result.Recipe)
	}
	if result.Meta.AgentName != "Importer" {
		t.Errorf("Expected agent name 'Importer', got %q", result.Meta.AgentName)
	}
}

func TestImporterRejectsEmptyText(t *testing.T) {
	imp := NewImporter(&MockTextGenerator{})
	if _, err := imp.Import(context.Background(), "   "); !errors.Is(err, ErrEmptyImport) {
		t.Errorf("Expected ErrEmptyImport, got %v", err)
	}
}

func TestImporterRequiresTitle(t *testing.T) {
	gen := &MockTextGenerator{Response: `{"ingredients": ["1 Ei"]}`}
	imp := NewImporter(gen)
	if _, err := imp.Import(context.Background(), "1 Ei"); err == nil {
		t.Fatal("Expected an error for a recipe without title")
	}
}
