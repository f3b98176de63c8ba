package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"linuxplus_backend/internal/model"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// Wire families understood by the dispatcher.
const (
	WireChatBearer  = "chat_bearer"
	WireChatGoogKey = "chat_goog_key"
	WireMessages    = "messages"

	anthropicVersion = "2023-06-01"
)

// DefaultProviders is the built-in provider registry, in display order.
var DefaultProviders = []model.Provider{
	{
		ID:           "openai",
		Name:         "OpenAI (GPT)",
		BaseURL:      "https://api.openai.com/v1",
		DefaultModel: "gpt-4o",
		Models:       []string{"gpt-4o", "gpt-4o-mini", "gpt-4-turbo"},
		Wire:         WireChatBearer,
	},
	{
		ID:           "gemini",
		Name:         "Google Gemini",
		BaseURL:      "https://generativelanguage.googleapis.com/v1beta/openai",
		DefaultModel: "gemini-2.0-flash",
		Models:       []string{"gemini-2.0-flash", "gemini-1.5-pro", "gemini-1.5-flash"},
		Wire:         WireChatGoogKey,
	},
	{
		ID:           "anthropic",
		Name:         "Anthropic Claude",
		BaseURL:      "https://api.anthropic.com/v1",
		DefaultModel: "claude-3-5-sonnet-20241022",
		Models:       []string{"claude-3-5-sonnet-20241022", "claude-3-haiku-20240307"},
		Wire:         WireMessages,
	},
	{
		ID:           "deepseek",
		Name:         "DeepSeek",
		BaseURL:      "https://api.deepseek.com",
		DefaultModel: "deepseek-chat",
		Models:       []string{"deepseek-chat", "deepseek-coder"},
		Wire:         WireChatBearer,
	},
	{
		ID:           "qwen",
		Name:         "Qwen (Alibaba)",
		BaseURL:      "https://dashscope-intl.aliyuncs.com/compatible-mode/v1",
		DefaultModel: "qwen-max",
		Models:       []string{"qwen-max", "qwen-plus", "qwen-turbo"},
		Wire:         WireChatBearer,
	},
	{
		ID:           "perplexity",
		Name:         "Perplexity",
		BaseURL:      "https://api.perplexity.ai",
		DefaultModel: "sonar-pro",
		Models:       []string{"sonar-pro", "sonar"},
		Wire:         WireChatBearer,
	},
}

// explainCall is the provider-independent content of one outbound request.
type explainCall struct {
	BaseURL     string
	APIKey      string
	Model       string
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// wireFormat builds the HTTP request for one request shape and pulls the
// answer text out of a successful response body.
type wireFormat interface {
	buildRequest(ctx context.Context, call explainCall) (*http.Request, error)
	extractText(body []byte) (string, error)
}

var wireFormats = map[string]wireFormat{
	WireChatBearer:  chatCompletionFormat{authorize: bearerAuth},
	WireChatGoogKey: chatCompletionFormat{authorize: googAPIKeyAuth},
	WireMessages:    messagesFormat{},
}

func bearerAuth(h http.Header, apiKey string) {
	h.Set("Authorization", "Bearer "+apiKey)
}

func googAPIKeyAuth(h http.Header, apiKey string) {
	h.Set("x-goog-api-key", apiKey)
}

func newJSONRequest(ctx context.Context, url string, payload interface{}) (*http.Request, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// chatCompletionFormat is the OpenAI-compatible /chat/completions shape.
type chatCompletionFormat struct {
	authorize func(h http.Header, apiKey string)
}

func (f chatCompletionFormat) buildRequest(ctx context.Context, call explainCall) (*http.Request, error) {
	body := openai.ChatCompletionRequest{
		Model: call.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: call.System},
			{Role: openai.ChatMessageRoleUser, Content: call.User},
		},
		MaxTokens:   call.MaxTokens,
		Temperature: call.Temperature,
	}

	req, err := newJSONRequest(ctx, call.BaseURL+"/chat/completions", body)
	if err != nil {
		return nil, err
	}
	f.authorize(req.Header, call.APIKey)
	return req, nil
}

func (chatCompletionFormat) extractText(body []byte) (string, error) {
	var result openai.ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode chat completion: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", errors.New("AI returned no choices")
	}
	return result.Choices[0].Message.Content, nil
}

// messagesFormat is Anthropic's /messages shape: system prompt as a separate
// field and a single user turn.
type messagesFormat struct{}

type messagesTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model     string         `json:"model"`
	MaxTokens int            `json:"max_tokens"`
	System    string         `json:"system"`
	Messages  []messagesTurn `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (messagesFormat) buildRequest(ctx context.Context, call explainCall) (*http.Request, error) {
	body := messagesRequest{
		Model:     call.Model,
		MaxTokens: call.MaxTokens,
		System:    call.System,
		Messages:  []messagesTurn{{Role: "user", Content: call.User}},
	}

	req, err := newJSONRequest(ctx, call.BaseURL+"/messages", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", call.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	return req, nil
}

func (messagesFormat) extractText(body []byte) (string, error) {
	var result messagesResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode messages response: %w", err)
	}
	for _, block := range result.Content {
		if block.Type == "text" || block.Type == "" {
			return block.Text, nil
		}
	}
	return "", errors.New("AI returned no text content")
}
