package llm

import (
	"fmt"
	"os"
	"strconv"
)

const (
	defaultOpenAIModel     = "gpt-4o-mini"
	defaultAnthropicModel  = "claude-3-5-haiku-20241022"
	defaultAzureAPIVersion = "2023-05-15"
	defaultMaxTokens       = 1024
	defaultTemperature     = 0.7
)

// loads LLM configuration from environment variables
func loadConfig() (*Config, error) {
	provider := Provider(os.Getenv("LLM_PROVIDER"))
	if provider == "" {
		provider = ProviderOpenAI // default
	}

	config := &Config{
		Provider:    provider,
		Model:       os.Getenv("LLM_MODEL"),
		BaseURL:     os.Getenv("LLM_BASE_URL"),
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	}

	switch provider {
	case ProviderOpenAI:
		config.APIKey = os.Getenv("OPENAI_API_KEY")
		if config.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
		}

		if config.Model == "" {
			config.Model = defaultOpenAIModel
		}
	case ProviderAzure:
		config.APIKey = os.Getenv("AZURE_OPENAI_API_KEY")
		if config.APIKey == "" {
			return nil, fmt.Errorf("AZURE_OPENAI_API_KEY environment variable is required")
		}

		if endpoint := os.Getenv("AZURE_OPENAI_ENDPOINT"); endpoint != "" {
			config.BaseURL = endpoint
		}
		if config.BaseURL == "" {
			return nil, fmt.Errorf("AZURE_OPENAI_ENDPOINT environment variable is required")
		}

		config.Deployment = os.Getenv("AZURE_OPENAI_DEPLOYMENT")
		if config.Deployment == "" {
			config.Deployment = defaultOpenAIModel
		}

		config.APIVersion = os.Getenv("AZURE_OPENAI_API_VERSION")
		if config.APIVersion == "" {
			config.APIVersion = defaultAzureAPIVersion
		}

		if config.Model == "" {
			config.Model = config.Deployment
		}
	case ProviderAnthropic:
		config.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if config.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is required")
		}

		if config.Model == "" {
			config.Model = defaultAnthropicModel
		}
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}

	// optional parameters
	if maxTokensStr := os.Getenv("LLM_MAX_TOKENS"); maxTokensStr != "" {
		if val, err := strconv.Atoi(maxTokensStr); err == nil && val > 0 {
			config.MaxTokens = val
		}
	}

	if tempStr := os.Getenv("LLM_TEMPERATURE"); tempStr != "" {
		if val, err := strconv.ParseFloat(tempStr, 32); err == nil {
			config.Temperature = float32(val)
		}
	}

	return config, nil
}
