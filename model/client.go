package model

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"linesheet-extractor/internal/types"
)

// Config holds the connection settings for the hosted chat-completion
// service. The credential is passed in explicitly and validated at
// construction time, before any network activity.
type Config struct {
	APIKey         string
	Endpoint       string
	Deployment     string
	APIVersion     string
	MaxTokens      int
	Temperature    float64
	Timeout        time.Duration
	MaxPromptChars int
}

// DefaultConfig returns the default model configuration. APIKey and Endpoint
// have no defaults and must be supplied by the caller.
func DefaultConfig() Config {
	return Config{
		Deployment:     "gpt-4o",
		APIVersion:     "2024-02-15-preview",
		MaxTokens:      4000,
		Temperature:    0.1,
		Timeout:        60 * time.Second,
		MaxPromptChars: 12000,
	}
}

// Client calls an Azure OpenAI chat-completions deployment.
type Client struct {
	config Config
	http   *resty.Client
	logger types.Logger
}

// chatMessage is one role-tagged message in the request envelope.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// New validates the configuration and returns a ready client. A missing
// credential or endpoint is a configuration error, surfaced here so the
// pipeline fails before any page is fetched.
func New(config Config, logger types.Logger) (*Client, error) {
	if config.APIKey == "" {
		return nil, types.NewConfigError("model API key is not set")
	}
	if config.Endpoint == "" {
		return nil, types.NewConfigError("model endpoint is not set")
	}
	if config.Deployment == "" {
		config.Deployment = DefaultConfig().Deployment
	}
	if config.APIVersion == "" {
		config.APIVersion = DefaultConfig().APIVersion
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = DefaultConfig().MaxTokens
	}

	http := resty.New().
		SetBaseURL(config.Endpoint).
		SetTimeout(config.Timeout).
		SetHeader("api-key", config.APIKey).
		SetHeader("content-type", "application/json")

	return &Client{
		config: config,
		http:   http,
		logger: logger,
	}, nil
}

// Categorize sends the extracted page text to the model and returns its raw
// text reply. The call is synchronous; a single failure surfaces as a
// model-stage pipeline error with no retry.
func (c *Client) Categorize(ctx context.Context, pageText, repFirmName string) (string, error) {
	c.logger.Info("Processing data through the categorization model...")

	body := chatRequest{
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildPrompt(pageText, repFirmName, c.config.MaxPromptChars)},
		},
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	}

	var result chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("api-version", c.config.APIVersion).
		SetBody(body).
		SetResult(&result).
		SetError(&result).
		Post(fmt.Sprintf("/openai/deployments/%s/chat/completions", c.config.Deployment))
	if err != nil {
		return "", types.NewModelError("chat completion request failed", err)
	}

	if resp.IsError() {
		msg := fmt.Sprintf("chat completion returned status %d", resp.StatusCode())
		if result.Error != nil {
			msg = fmt.Sprintf("%s: %s", msg, result.Error.Message)
		}
		return "", types.NewModelError(msg, nil)
	}

	if len(result.Choices) == 0 {
		return "", types.NewModelError("chat completion returned no choices", nil)
	}

	c.logger.Info("Successfully processed data through the categorization model")
	return result.Choices[0].Message.Content, nil
}
