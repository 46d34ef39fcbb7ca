package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"fridgechef/internal/config"
	"fridgechef/internal/pantry"
)

type generateFunc func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Client talks to the Gemini backend. The credential is read through the
// config cell on every call so a key injected after startup is picked up.
type Client struct {
	cred       *config.Cell
	textModel  string
	imageModel string

	generate generateFunc
}

func NewClient(cred *config.Cell, textModel, imageModel string) *Client {
	c := &Client{
		cred:       cred,
		textModel:  textModel,
		imageModel: imageModel,
	}
	c.generate = c.generateLive
	return c
}

func (c *Client) generateLive(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	key := c.cred.Get()
	if !config.UsableCredential(key) {
		return nil, &ServiceError{Kind: KindCredential, Err: errors.New("API key is not configured")}
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return gc.Models.GenerateContent(ctx, model, contents, cfg)
}

// GenerateRecipes asks the text backend for exactly RecipeCount recipes built
// from the given ingredients. A single attempt, no retries; the caller
// decides whether the user gets to try again.
func (c *Client) GenerateRecipes(ctx context.Context, ingredients []string, meal pantry.MealTime) (*Batch, error) {
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("no ingredients provided")
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemMessage, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    batchSchema(),
	}
	resp, err := c.generate(ctx, c.textModel, genai.Text(recipePrompt(ingredients, meal)), cfg)
	if err != nil {
		return nil, Classify(fmt.Errorf("recipe generation failed: %w", err))
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, &ServiceError{Kind: KindEmptyResponse, Err: ErrEmptyResponse}
	}

	var batch Batch
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &batch); err != nil {
		return nil, &ServiceError{Kind: KindGeneration, Err: fmt.Errorf("failed to parse AI response: %w", err)}
	}
	if len(batch.Recipes) != RecipeCount {
		return nil, &ServiceError{Kind: KindGeneration, Err: fmt.Errorf("expected %d recipes, got %d", RecipeCount, len(batch.Recipes))}
	}
	return &batch, nil
}

// TestConnection sends a minimal prompt with a tight output cap and reports
// whether anything came back. Never returns an error.
func (c *Client) TestConnection(ctx context.Context) bool {
	cfg := &genai.GenerateContentConfig{MaxOutputTokens: 8}
	resp, err := c.generate(ctx, c.textModel, genai.Text(connectivityPrompt), cfg)
	if err != nil {
		slog.InfoContext(ctx, "connectivity test failed", "error", err)
		return false
	}
	return strings.TrimSpace(resp.Text()) != ""
}

func batchSchema() *genai.Schema {
	recipe := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":       {Type: genai.TypeString},
			"description": {Type: genai.TypeString},
			"ingredients": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"steps":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
		Required: []string{"title", "description", "ingredients", "steps"},
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"recipes": {
				Type:     genai.TypeArray,
				Items:    recipe,
				MinItems: genai.Ptr[int64](RecipeCount),
				MaxItems: genai.Ptr[int64](RecipeCount),
			},
		},
		Required: []string{"recipes"},
	}
}

// models sometimes wrap the JSON in a fence despite the response mime type
func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
