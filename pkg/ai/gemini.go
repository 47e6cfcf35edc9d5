package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiDefaultModel = "gemini-1.5-flash-latest"

// GeminiClient wraps the Gemini API client
type GeminiClient struct {
	genaiClient *genai.Client
	model       string
}

// Ensure GeminiClient implements Generator
var _ Generator = (*GeminiClient)(nil)

// NewGeminiClient creates a new Gemini client. Extra options are appended
// after the API key.
func NewGeminiClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*GeminiClient, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		genaiClient: client,
		model:       geminiDefaultModel,
	}, nil
}

// Close closes the client
func (c *GeminiClient) Close() error {
	return c.genaiClient.Close()
}

// Generate sends the prompt and any inline media to Gemini.
func (c *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	name := req.Model
	if name == "" {
		name = c.model
	}

	// GenerativeModel is a cheap handle; a fresh one per call keeps the
	// response config of concurrent requests apart.
	model := c.genaiClient.GenerativeModel(name)
	if len(req.Fields) > 0 {
		model.ResponseMIMEType = "application/json"
		model.ResponseSchema = objectSchema(req.Fields)
	}

	resp, err := model.GenerateContent(ctx, geminiParts(req)...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	return sb.String(), nil
}

func geminiParts(req Request) []genai.Part {
	parts := make([]genai.Part, 0, len(req.Media)+1)
	parts = append(parts, genai.Text(req.Prompt))
	for _, m := range req.Media {
		parts = append(parts, genai.Blob{MIMEType: m.MIMEType, Data: m.Data})
	}
	return parts
}

func objectSchema(fields []string) *genai.Schema {
	props := make(map[string]*genai.Schema, len(fields))
	for _, f := range fields {
		props[f] = &genai.Schema{Type: genai.TypeString}
	}
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: props,
		Required:   append([]string(nil), fields...),
	}
}
