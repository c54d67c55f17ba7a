// File: internal/services/provider/bearer_provider.go
package provider

import (
	"context"
	"errors"
	"net"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// BearerProvider talks to an OpenAI-compatible endpoint authenticated
// with an Authorization: Bearer header. It carries both the text and
// the vision capability.
type BearerProvider struct {
	config *Config
	client *openai.Client
	logger Logger
}

func NewBearerProvider(config *Config, logger Logger) (*BearerProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	clientConfig := openai.DefaultConfig(config.APIKey)
	clientConfig.BaseURL = config.BaseURL
	clientConfig.HTTPClient = &http.Client{Timeout: config.Timeout}

	return &BearerProvider{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
		logger: logger,
	}, nil
}

func (p *BearerProvider) Complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: p.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	return p.createCompletion(ctx, "completion", req)
}

func (p *BearerProvider) CompleteVision(ctx context.Context, prompt string, imagePaths []string) (string, error) {
	model := p.config.VisionModel
	if model == "" {
		model = p.config.Model
	}

	parts := []openai.ChatMessagePart{
		{Type: openai.ChatMessagePartTypeText, Text: prompt},
	}
	for _, path := range imagePaths {
		uri, err := imageDataURI(path)
		if err != nil {
			return "", err
		}
		parts = append(parts, openai.ChatMessagePart{
			Type:     openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{URL: uri},
		})
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, MultiContent: parts},
		},
	}
	return p.createCompletion(ctx, "vision", req)
}

func (p *BearerProvider) createCompletion(ctx context.Context, operation string, req openai.ChatCompletionRequest) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		classified := classifyOpenAIError(operation, err)
		p.logger.Error("provider call failed", "operation", operation, "error", classified)
		return "", classified
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", NewProviderError(operation, 0, "provider returned an empty reply")
	}
	return resp.Choices[0].Message.Content, nil
}

// classifyOpenAIError distinguishes a structured provider error (whose
// message is passed through verbatim) from a transport failure.
func classifyOpenAIError(operation string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return NewProviderError(operation, apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return NewProviderError(operation, reqErr.HTTPStatusCode, reqErr.Error())
	}

	var netErr net.Error
	switch {
	case errors.As(err, &netErr) && netErr.Timeout(),
		errors.Is(err, context.DeadlineExceeded):
		return NewNetworkError(operation, "provider call timed out", err)
	case errors.Is(err, context.Canceled):
		return NewNetworkError(operation, "provider call canceled", err)
	}
	return NewNetworkError(operation, "provider call failed", err)
}
