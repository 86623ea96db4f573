// ABOUTME: OpenAI client for embeddings and completions with retry logic
// ABOUTME: text-embedding-3-small for embeddings, gpt-4o-mini for chat (configurable)
package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rowan/keepsake/internal/core"
	"github.com/rowan/keepsake/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultChatModel is the default model for chat completions
	DefaultChatModel = "gpt-4o-mini"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = openai.SmallEmbedding3
)

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel openai.EmbeddingModel
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	chatModel := os.Getenv("KEEPSAKE_CHAT_MODEL")
	if chatModel == "" {
		chatModel = DefaultChatModel
	}

	return &ClientConfig{
		APIKey:         apiKey,
		ChatModel:      chatModel,
		EmbeddingModel: DefaultEmbeddingModel,
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		RetryDelay:     time.Second * 2,
	}
}

// OpenAIClient wraps the OpenAI API client with retry logic. It implements
// core.Embedder and core.Completer.
type OpenAIClient struct {
	client         *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration
}

// NewOpenAIClient creates a new OpenAI client with default configuration
func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	return NewOpenAIClientWithConfig(DefaultConfig(apiKey))
}

// NewOpenAIClientWithConfig creates a new OpenAI client with custom configuration
func NewOpenAIClientWithConfig(config *ClientConfig) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	return &OpenAIClient{
		client:         openai.NewClient(config.APIKey),
		chatModel:      config.ChatModel,
		embeddingModel: config.EmbeddingModel,
		timeout:        config.Timeout,
		maxRetries:     config.MaxRetries,
		retryDelay:     config.RetryDelay,
	}, nil
}

// GenerateEmbedding generates an embedding vector for the given text
func (c *OpenAIClient) GenerateEmbedding(text string) ([]float64, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)

		resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
			Input: []string{text},
			Model: c.embeddingModel,
		})

		if err != nil {
			cancel()
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}

		if len(resp.Data) == 0 {
			cancel()
			lastErr = fmt.Errorf("attempt %d: no embeddings returned", attempt+1)
			continue
		}

		// Convert []float32 to []float64
		embedding32 := resp.Data[0].Embedding
		embedding64 := make([]float64, len(embedding32))
		for i, v := range embedding32 {
			embedding64[i] = float64(v)
		}

		cancel()
		return embedding64, nil
	}

	return nil, fmt.Errorf("failed to generate embedding after %d attempts: %w", c.maxRetries+1, lastErr)
}

// Complete generates a chat completion from a system and user prompt
func (c *OpenAIClient) Complete(system, user string, maxTokens int, temperature float64) (core.Completion, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)

		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: system,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: user,
				},
			},
			MaxTokens:   maxTokens,
			Temperature: float32(temperature),
		})

		if err != nil {
			cancel()
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}

		if len(resp.Choices) == 0 {
			cancel()
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		cancel()
		return core.Completion{
			Text:       resp.Choices[0].Message.Content,
			TokensUsed: resp.Usage.TotalTokens,
		}, nil
	}

	return core.Completion{}, fmt.Errorf("failed to complete after %d attempts: %w", c.maxRetries+1, lastErr)
}
