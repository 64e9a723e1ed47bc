package recipe

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"foodplaner/internal/llm"
	"foodplaner/internal/shared"
)

//go:embed importer_prompt.md
var importerPrompt string

// ErrEmptyImport is returned when the pasted text contains nothing usable.
var ErrEmptyImport = errors.New("import text is empty")

type importerPromptData struct {
	Text string
}

// ImporterResult carries the parsed recipe together with usage meta.
type ImporterResult struct {
	Recipe Recipe
	Meta   shared.AgentMeta
}

// Importer turns pasted free-form recipe text into a structured Recipe.
type Importer struct {
	textGen llm.TextGenerator
}

func NewImporter(textGen llm.TextGenerator) *Importer {
	return &Importer{textGen: textGen}
}

func (i *Importer) Import(ctx context.Context, text string) (ImporterResult, error) {
	if strings.TrimSpace(text) == "" {
		return ImporterResult{}, ErrEmptyImport
	}

	start := time.Now()

	prompt, err := buildImporterPrompt(importerPromptData{Text: text})
	if err != nil {
		return ImporterResult{}, err
	}

	resp, err := i.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return ImporterResult{}, fmt.Errorf("failed to get LLM response: %w", err)
	}

	meta := shared.AgentMeta{
		AgentName: "Importer",
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}

	rec := Recipe{}
	if err := json.Unmarshal([]byte(resp.Content), &rec); err != nil {
		return ImporterResult{Meta: meta}, fmt.Errorf(
			"failed to parse importer response %w. Response: %s",
			err,
			resp.Content,
		)
	}
	if rec.Title == "" {
		return ImporterResult{Meta: meta}, fmt.Errorf("importer returned a recipe without title. Response: %s", resp.Content)
	}

	return ImporterResult{Recipe: rec, Meta: meta}, nil
}

func buildImporterPrompt(data importerPromptData) (string, error) {
	tmpl, err := template.New("importer").Parse(importerPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
