package llm

import (
	"context"
	"errors"
	"fmt"
)

// returned by generators that could not be configured
var ErrUnavailable = errors.New("language model is not configured")

// creates a text generator with auto-configuration from environment variables
func NewTextGenerator() (TextGenerator, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load LLM config: %w", err)
	}

	return NewTextGeneratorWithConfig(config)
}

// creates a text generator with explicit configuration
func NewTextGeneratorWithConfig(config *Config) (TextGenerator, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	switch config.Provider {
	case ProviderAnthropic:
		return NewAnthropicGenerator(AnthropicConfig{
			APIKey:      config.APIKey,
			Model:       config.Model,
			BaseURL:     config.BaseURL,
			MaxTokens:   config.MaxTokens,
			Temperature: config.Temperature,
		}), nil
	case ProviderOpenAI, ProviderAzure:
		return NewOpenAIGenerator(OpenAIConfig{
			APIKey:      config.APIKey,
			Model:       config.Model,
			BaseURL:     config.BaseURL,
			Azure:       config.Provider == ProviderAzure,
			Deployment:  config.Deployment,
			APIVersion:  config.APIVersion,
			MaxTokens:   config.MaxTokens,
			Temperature: config.Temperature,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", config.Provider)
	}
}

// a generator that always fails; keeps the server up without credentials so fallbacks are served
type unavailableGenerator struct {
	reason error
}

func Unavailable(reason error) TextGenerator {
	return &unavailableGenerator{reason: reason}
}

func (g *unavailableGenerator) GenerateText(_ context.Context, _ TextGenerationRequest) (*TextGenerationResponse, error) {
	return nil, fmt.Errorf("%w: %v", ErrUnavailable, g.reason)
}

func (g *unavailableGenerator) Model() string {
	return "unavailable"
}
