package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"linuxplus_backend/internal/config"
	"linuxplus_backend/internal/model"
	"linuxplus_backend/internal/util"
	"linuxplus_backend/pkg/logger"
	"linuxplus_backend/pkg/monitoring"
	"linuxplus_backend/pkg/tracing"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// ErrorKind values carried by a failed ExplanationResult.
const (
	ErrorKindProvider   = "provider_error"
	ErrorKindTimeout    = "timeout"
	ErrorKindUnexpected = "unexpected"

	timeoutMessage = "Request timed out. Please try again."

	// 上游响应体上限
	maxResponseBytes = 1 << 20
	maxOptions       = 26
)

type AIService struct {
	client    *http.Client
	providers []model.Provider
	byID      map[string]model.Provider

	mu  sync.RWMutex
	cfg config.AIConfig
}

// NewAIService builds the dispatcher. A nil client means http.DefaultClient;
// the bounded wait comes from cfg, not from the client.
func NewAIService(cfg config.AIConfig, providers []model.Provider, client *http.Client) *AIService {
	if client == nil {
		client = http.DefaultClient
	}
	byID := make(map[string]model.Provider, len(providers))
	for _, p := range providers {
		byID[p.ID] = p
	}
	s := &AIService{
		client:    client,
		providers: providers,
		byID:      byID,
	}
	s.UpdateConfig(cfg)
	return s
}

// UpdateConfig swaps the tuning knobs, used by the config watcher.
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 60
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

func (s *AIService) config() config.AIConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *AIService) ListProviders() []model.Provider {
	return append([]model.Provider(nil), s.providers...)
}

type ExplainRequest struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer *int     `json:"correct_answer" binding:"required"`
	UserAnswer    *int     `json:"user_answer"`
	Provider      string   `json:"provider" binding:"required"`
	APIKey        string   `json:"api_key" binding:"required"`
	Model         string   `json:"model"`
	Language      string   `json:"language"`

	// 登录用户id，匿名调用为空
	UserID string `json:"-"`
}

// Validate checks the answer indexes against the option list.
func (r *ExplainRequest) Validate() error {
	if len(r.Options) > maxOptions {
		return fmt.Errorf("%w: at most %d options are supported", util.ErrInvalidExplainRequest, maxOptions)
	}
	if r.CorrectAnswer == nil {
		return fmt.Errorf("%w: correct_answer is required", util.ErrInvalidExplainRequest)
	}
	if *r.CorrectAnswer < 0 || *r.CorrectAnswer >= len(r.Options) {
		return fmt.Errorf("%w: correct_answer %d out of range", util.ErrInvalidExplainRequest, *r.CorrectAnswer)
	}
	if r.UserAnswer != nil && (*r.UserAnswer < 0 || *r.UserAnswer >= len(r.Options)) {
		return fmt.Errorf("%w: user_answer %d out of range", util.ErrInvalidExplainRequest, *r.UserAnswer)
	}
	return nil
}

type ExplanationResult struct {
	Explanation string `json:"explanation"`
	Provider    string `json:"provider"`
	Model       string `json:"model"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
	ErrorKind   string `json:"error_kind,omitempty"`
	Status      int    `json:"status,omitempty"`
}

func optionLetter(i int) string {
	return string(rune('A' + i))
}

func systemPrompt(language string) string {
	langInstruction := "Answer in English."
	if language == model.LanguageGerman {
		langInstruction = "Antworte auf Deutsch."
	}
	return "You are a Linux expert helping students prepare for the CompTIA Linux+ XK0-006 exam.\n" +
		"Provide clear, concise explanations for exam questions.\n" +
		"Focus on WHY the correct answer is right and explain the relevant Linux concepts.\n" +
		langInstruction
}

func userPrompt(req ExplainRequest) string {
	var options strings.Builder
	for i, opt := range req.Options {
		if i > 0 {
			options.WriteString("\n")
		}
		fmt.Fprintf(&options, "%s. %s", optionLetter(i), opt)
	}

	correct := optionLetter(*req.CorrectAnswer)
	selected := ""
	if req.UserAnswer != nil && *req.UserAnswer != *req.CorrectAnswer {
		selected = fmt.Sprintf("\n\nThe user selected: %s (incorrect)", optionLetter(*req.UserAnswer))
	}

	return fmt.Sprintf("Explain this Linux+ exam question:\n\n"+
		"Question: %s\n\n"+
		"Options:\n%s\n\n"+
		"Correct Answer: %s%s\n\n"+
		"Provide a clear explanation of why %s is correct. Include relevant Linux commands or concepts that help understand the topic.",
		req.Question, options.String(), correct, selected, correct)
}

// Explain sends one explanation request to the chosen provider. An unknown
// provider or an invalid request is returned as an error before any I/O; every
// upstream failure comes back as a result with Success false.
func (s *AIService) Explain(ctx context.Context, req ExplainRequest) (*ExplanationResult, error) {
	provider, ok := s.byID[req.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", util.ErrUnknownProvider, req.Provider)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	format, ok := wireFormats[provider.Wire]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no wire format", util.ErrUnknownProvider, req.Provider)
	}

	modelName := req.Model
	if modelName == "" {
		modelName = provider.DefaultModel
	}
	result := &ExplanationResult{Provider: provider.ID, Model: modelName}

	cfg := s.config()
	baseURL := provider.BaseURL
	if override := cfg.BaseURLs[provider.ID]; override != "" {
		baseURL = override
	}
	baseURL = strings.TrimRight(baseURL, "/")

	ctx, span := tracing.Tracer.Start(ctx, "ai.explain")
	defer span.End()
	span.SetAttributes(
		attribute.String("ai.provider", provider.ID),
		attribute.String("ai.model", modelName),
	)
	if req.UserID != "" {
		span.SetAttributes(attribute.String("enduser.id", req.UserID))
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	start := time.Now()
	text, status, body, err := s.call(ctx, format, explainCall{
		BaseURL:     baseURL,
		APIKey:      req.APIKey,
		Model:       modelName,
		System:      systemPrompt(req.Language),
		User:        userPrompt(req),
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	})
	monitoring.AIExplanationDuration.WithLabelValues(provider.ID).Observe(time.Since(start).Seconds())

	switch {
	case err != nil && isTimeout(ctx, err):
		result.ErrorKind = ErrorKindTimeout
		result.Error = timeoutMessage
	case err != nil:
		result.ErrorKind = ErrorKindUnexpected
		result.Error = err.Error()
	case status < 200 || status > 299:
		result.ErrorKind = ErrorKindProvider
		result.Status = status
		result.Error = fmt.Sprintf("API error (%d): %s", status, body)
	default:
		result.Success = true
		result.Explanation = text
	}

	outcome := "success"
	if !result.Success {
		outcome = result.ErrorKind
		span.SetStatus(codes.Error, result.Error)
		logger.WithUser(req.UserID).Error("AI explanation failed",
			zap.String("provider", provider.ID),
			zap.String("model", modelName),
			zap.String("kind", result.ErrorKind),
			zap.Int("status", result.Status),
			zap.Error(err),
		)
	}
	monitoring.AIExplanations.WithLabelValues(provider.ID, outcome).Inc()

	return result, nil
}

// call performs the HTTP round trip. A non-2xx status is reported through
// status and body with a nil error.
func (s *AIService) call(ctx context.Context, format wireFormat, c explainCall) (text string, status int, body string, err error) {
	httpReq, err := format.buildRequest(ctx, c)
	if err != nil {
		return "", 0, "", err
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", 0, "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", resp.StatusCode, "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", resp.StatusCode, string(raw), nil
	}

	text, err = format.extractText(raw)
	return text, resp.StatusCode, "", err
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
