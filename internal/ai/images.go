package ai

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/url"

	"google.golang.org/genai"
)

const placeholderHost = "https://picsum.photos"

// PlaceholderURL is the deterministic fallback image for a recipe title.
// Same title, same picture, across calls and restarts.
func PlaceholderURL(title string) string {
	return placeholderHost + "/seed/" + url.PathEscape(title) + "/600/600"
}

// GenerateRecipeImage asks the image backend to illustrate a recipe and
// returns either a data URI or the placeholder. Image failures are never
// fatal and never propagate; a recipe card without a generated photo is
// still a recipe card.
func (c *Client) GenerateRecipeImage(ctx context.Context, title string) string {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}
	resp, err := c.generate(ctx, c.imageModel, genai.Text(imagePrompt(title)), cfg)
	if err != nil {
		slog.WarnContext(ctx, "image generation failed, using placeholder", "title", title, "error", err)
		return PlaceholderURL(title)
	}

	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			mime := part.InlineData.MIMEType
			if mime == "" {
				mime = "image/png"
			}
			return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(part.InlineData.Data)
		}
	}

	slog.InfoContext(ctx, "image response had no inline image part, using placeholder", "title", title)
	return PlaceholderURL(title)
}
