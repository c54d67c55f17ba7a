// File: internal/services/provider/signed_provider.go
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// SignedProvider talks to a gateway that authenticates every request
// through an HMAC-SHA256 signed query string instead of a bearer
// header. The gateway validates the signature against a GET request
// line; the completion exchange itself is a POSTed message envelope.
type SignedProvider struct {
	config *Config
	client *http.Client
	logger Logger
	now    func() time.Time
}

func NewSignedProvider(config *Config, logger Logger) (*SignedProvider, error) {
	if err := config.ValidateSigned(); err != nil {
		return nil, err
	}
	return &SignedProvider{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger,
		now:    time.Now,
	}, nil
}

type signedMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type signedEnvelope struct {
	Model    string          `json:"model"`
	Messages []signedMessage `json:"messages"`
}

func (p *SignedProvider) Complete(ctx context.Context, prompt string) (string, error) {
	requestURL, err := SignURL(p.config.BaseURL, p.config.APIKey, p.config.APISecret, p.now())
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(signedEnvelope{
		Model:    p.config.Model,
		Messages: []signedMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", &ProviderError{Type: ErrTypeValidation, Operation: "completion", Message: "invalid request payload", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(body))
	if err != nil {
		return "", NewNetworkError("completion", "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		classified := classifyTransportError("completion", err)
		p.logger.Error("signed provider call failed", "error", classified)
		return "", classified
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", NewNetworkError("completion", "failed to read response", err)
	}
	return p.handleResponse(resp.StatusCode, raw)
}

func (p *SignedProvider) handleResponse(status int, raw []byte) (string, error) {
	if status == http.StatusTooManyRequests {
		return "", &ProviderError{Type: ErrTypeRateLimit, Code: status, Operation: "completion", Message: "rate limit exceeded"}
	}
	if status < 200 || status >= 300 {
		return "", NewProviderError("completion", status, strings.TrimSpace(string(raw)))
	}
	return unwrapAssistantContent(raw)
}

// unwrapAssistantContent extracts the assistant message from a reply
// body. A 200 body can still carry a structured error, which is
// surfaced verbatim. Bodies in an unknown shape are handed to the
// normalizer untouched.
func unwrapAssistantContent(raw []byte) (string, error) {
	var reply struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Error   *struct {
			Code    interface{} `json:"code"`
			Message string      `json:"message"`
		} `json:"error"`
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &reply); err != nil {
		return strings.TrimSpace(string(raw)), nil
	}
	if reply.Error != nil {
		return "", NewProviderError("completion", 0, reply.Error.Message)
	}
	if reply.Code != 0 {
		return "", NewProviderError("completion", reply.Code, reply.Message)
	}
	if len(reply.Choices) > 0 && reply.Choices[0].Message.Content != "" {
		return reply.Choices[0].Message.Content, nil
	}
	return strings.TrimSpace(string(raw)), nil
}

func classifyTransportError(operation string, err error) error {
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
