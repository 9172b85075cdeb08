package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pharmatriage/classifier-api/internal/domain/service"
)

// LLMClient is a thin wrapper over an OpenAI-compatible chat
// completion endpoint (OpenRouter or a local server).
type LLMClient struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewLLMClient creates a chat-completion client. baseURL must be the
// full API base (e.g. "https://openrouter.ai/api/v1"). headers are
// attached to every request; OpenRouter uses them for app attribution.
func NewLLMClient(baseURL, apiKey, model string, maxTokens int, headers map[string]string, timeout time.Duration) *LLMClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	cfg.HTTPClient = &http.Client{
		Transport: &headerTransport{base: http.DefaultTransport, headers: headers},
		Timeout:   timeout,
	}

	return &LLMClient{
		client:    openai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: maxTokens,
	}
}

// Model returns the configured model identifier.
func (c *LLMClient) Model() string {
	return c.model
}

// Complete sends one system+user exchange and returns the assistant
// message content. Provider failures of any kind come back wrapped in
// service.ErrProvider so callers can map them uniformly.
func (c *LLMClient) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", service.ErrProvider, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: provider returned no choices", service.ErrProvider)
	}
	return resp.Choices[0].Message.Content, nil
}

// headerTransport attaches fixed headers to every outgoing request.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for k, v := range t.headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	return t.base.RoundTrip(req)
}
