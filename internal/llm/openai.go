package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// shared HTTP client for OpenAI and Azure OpenAI calls
var openaiHTTPClient = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

type OpenAIConfig struct {
	APIKey      string
	Model       string // e.g., "gpt-4o-mini"
	BaseURL     string // OpenAI-compatible endpoint, or the Azure resource endpoint
	Azure       bool
	Deployment  string // azure deployment name
	APIVersion  string // azure api version
	MaxTokens   int
	Temperature float32
}

// chat completion generator over the OpenAI-compatible API
type OpenAIGenerator struct {
	client *openai.Client
	config OpenAIConfig
}

func NewOpenAIGenerator(config OpenAIConfig) *OpenAIGenerator {
	if config.MaxTokens == 0 {
		config.MaxTokens = defaultMaxTokens
	}

	if config.Model == "" {
		config.Model = defaultOpenAIModel
	}

	var clientCfg openai.ClientConfig

	if config.Azure {
		clientCfg = openai.DefaultAzureConfig(config.APIKey, config.BaseURL)
		if config.APIVersion != "" {
			clientCfg.APIVersion = config.APIVersion
		}

		deployment := config.Deployment
		if deployment == "" {
			deployment = config.Model
		}
		clientCfg.AzureModelMapperFunc = func(string) string {
			return deployment
		}
	} else {
		clientCfg = openai.DefaultConfig(config.APIKey)
		if config.BaseURL != "" {
			clientCfg.BaseURL = config.BaseURL
		}
	}

	clientCfg.HTTPClient = openaiHTTPClient

	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(clientCfg),
		config: config,
	}
}

func (g *OpenAIGenerator) Model() string {
	return g.config.Model
}

func (g *OpenAIGenerator) GenerateText(ctx context.Context, req TextGenerationRequest) (*TextGenerationResponse, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)

	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}

	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = g.config.MaxTokens
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.config.Model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	return &TextGenerationResponse{
		Text: strings.TrimSpace(resp.Choices[0].Message.Content),
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}
