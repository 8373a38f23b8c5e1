package ai

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/models"
)

// Client is the gateway to the generative model. Grounded and
// schema-constrained generation are mutually exclusive, so each gets its
// own method. Calls are single-shot: a failure surfaces to the caller as
// one error, no retry.
type Client interface {
	// GenerateGrounded runs the prompt with Google Search grounding enabled
	// and returns the raw response text.
	GenerateGrounded(ctx context.Context, prompt string) (string, error)
	// GenerateStructured runs the prompt constrained to the given JSON
	// schema and returns the raw response text.
	GenerateStructured(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

// Ensure implementation satisfies the interface
var _ Client = (*GeminiClient)(nil)

// GeminiClient implements Client on top of the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates the Gemini-backed gateway client.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "NewGeminiClient")
	defer span.End()

	if apiKey == "" {
		err := fmt.Errorf("gemini api key is not set")
		span.RecordError(err)
		span.SetStatus(codes.Error, "API key not set")
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create Gemini client")
		return nil, err
	}

	span.SetStatus(codes.Ok, "AI client created successfully")
	return &GeminiClient{client: client, model: model}, nil
}

func (ai *GeminiClient) GenerateGrounded(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Tools:       []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		Temperature: genai.Ptr[float32](0.3),
	}
	return ai.generate(ctx, "GenerateGrounded", prompt, config)
}

func (ai *GeminiClient) GenerateStructured(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
		Temperature:      genai.Ptr[float32](0.5),
	}
	return ai.generate(ctx, "GenerateStructured", prompt, config)
}

func (ai *GeminiClient) generate(ctx context.Context, op, prompt string, config *genai.GenerateContentConfig) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, op, trace.WithAttributes(
		attribute.Int("prompt.length", len(prompt)),
		attribute.String("model", ai.model),
	))
	defer span.End()

	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), config)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to generate content")
		return "", fmt.Errorf("%w: %v", models.ErrGenerationFailed, err)
	}

	responseText := result.Text()
	span.SetAttributes(attribute.Int("response.length", len(responseText)))
	span.SetStatus(codes.Ok, "Content generated successfully")
	return responseText, nil
}
