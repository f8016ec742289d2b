package planner

import (
	"context"
	"fmt"
	"strings"

	"voyago/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GenAIClient abstracts the generative provider: one prompt, an optional
// image part, and a response schema the output must conform to.
type GenAIClient interface {
	Generate(ctx context.Context, prompt string, image *models.ImageAttachment, schema *genai.Schema) (string, error)
}

// GeminiClient implements GenAIClient against the Gemini API.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

func NewGeminiClient(apiKey, modelName string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, modelName: modelName}, nil
}

// Generate runs one schema-constrained generation. A fresh model value is
// configured per call so concurrent callers never share ResponseSchema.
func (g *GeminiClient) Generate(ctx context.Context, prompt string, image *models.ImageAttachment, schema *genai.Schema) (string, error) {
	model := g.client.GenerativeModel(g.modelName)
	if schema != nil {
		model.ResponseMIMEType = "application/json"
		model.ResponseSchema = schema
	}

	parts := []genai.Part{genai.Text(prompt)}
	if image != nil && len(image.Data) > 0 {
		format := strings.TrimPrefix(image.MIMEType, "image/")
		parts = append(parts, genai.ImageData(format, image.Data))
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}
