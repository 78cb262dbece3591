package assist

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

// Provider names accepted by NewModel.
const (
	ProviderGoogleAI = "googleai"
	ProviderOpenAI   = "openai"
)

// NewModel initializes the LLM backing the enrichment client.
// Both providers serve text and vision requests through the same
// llms.Model interface.
func NewModel(ctx context.Context, provider, apiKey, defaultModel string) (llms.Model, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("no API key configured for provider %s", provider)
	}

	switch provider {
	case ProviderGoogleAI:
		model, err := googleai.New(ctx,
			googleai.WithAPIKey(apiKey),
			googleai.WithDefaultModel(defaultModel),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google AI client: %w", err)
		}
		return model, nil
	case ProviderOpenAI:
		model, err := openai.New(
			openai.WithToken(apiKey),
			openai.WithModel(defaultModel),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
		}
		return model, nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
