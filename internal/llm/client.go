// Package llm is the remote-model backend: it turns a staged diff into a
// commit message by calling OpenAI or Gemini. It satisfies the same
// single-operation contract as the offline analyzer, so the orchestration
// layer can swap the two freely.
package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/autocommit/autocommit-go/internal/config"
)

// Provider identifies the remote backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// requestsPerMinute bounds outgoing API calls client-side; generous for an
// interactive CLI but protects against scripted loops.
const requestsPerMinute = 30

// Client generates commit messages through a remote model.
type Client struct {
	provider     Provider
	style        string
	openaiClient *openai.Client
	geminiClient *GeminiClient
	openaiModel  string
	limiter      *rate.Limiter
	logger       *slog.Logger
}

// NewClient creates a client for the provider configured in cfg. Errors when
// the provider has no API key; the caller decides whether that is fatal.
func NewClient(ctx context.Context, cfg *config.Config, style string) (*Client, error) {
	logger := slog.Default().With("component", "llm")

	c := &Client{
		style:   style,
		limiter: rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1),
		logger:  logger,
	}

	switch Provider(cfg.Provider) {
	case ProviderGemini:
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("no Gemini API key configured (set GEMINI_API_KEY or run 'autocommit keys set')")
		}
		gemini, err := NewGeminiClient(ctx, cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		c.provider = ProviderGemini
		c.geminiClient = gemini
		logger.Debug("gemini backend initialized", "model", cfg.GeminiModel)

	case ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("no OpenAI API key configured (set OPENAI_API_KEY or run 'autocommit keys set')")
		}
		c.provider = ProviderOpenAI
		c.openaiClient = openai.NewClient(cfg.OpenAIKey)
		c.openaiModel = cfg.OpenAIModel
		logger.Debug("openai backend initialized", "model", cfg.OpenAIModel)

	default:
		return nil, fmt.Errorf("unknown provider %q (valid: openai, gemini)", cfg.Provider)
	}

	return c, nil
}

// Provider returns the active backend.
func (c *Client) Provider() Provider {
	return c.provider
}

// GenerateCommitMessage produces a commit message for the diff via the
// remote model. Implements the generator contract.
func (c *Client) GenerateCommitMessage(ctx context.Context, diff string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	systemPrompt := SystemPrompt(c.style)
	userPrompt := UserPrompt(diff)

	var (
		response string
		err      error
	)
	switch c.provider {
	case ProviderGemini:
		response, err = c.geminiClient.Complete(ctx, systemPrompt, userPrompt)
	case ProviderOpenAI:
		response, err = c.completeOpenAI(ctx, systemPrompt, userPrompt)
	default:
		return "", fmt.Errorf("no provider configured")
	}
	if err != nil {
		return "", err
	}

	message := CleanResponse(response)
	if message == "" {
		return "", fmt.Errorf("%s returned an empty message", c.provider)
	}
	return message, nil
}

func (c *Client) completeOpenAI(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.openaiClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.openaiModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.3,
		MaxTokens:   200,
	})
	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	response := resp.Choices[0].Message.Content
	c.logger.Debug("openai completion",
		"model", c.openaiModel,
		"prompt_length", len(userPrompt),
		"response_length", len(response),
		"tokens_used", resp.Usage.TotalTokens,
	)
	return response, nil
}
