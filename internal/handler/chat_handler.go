// Package handler provides HTTP handlers for the chat gateway.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hpn/buildmate-ai/internal/adapter"
	"github.com/hpn/buildmate-ai/internal/assistant"
	"github.com/hpn/buildmate-ai/internal/domain"
)

// ChatHandler serves chat completions through a single ChatCompleter.
type ChatHandler struct {
	client         adapter.ChatCompleter
	registry       domain.Registry
	logger         *slog.Logger
	requestTimeout time.Duration
}

// ChatHandlerOption is a functional option for configuring ChatHandler.
type ChatHandlerOption func(*ChatHandler)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) ChatHandlerOption {
	return func(h *ChatHandler) {
		h.logger = logger
	}
}

// WithRequestTimeout bounds each upstream call. Zero means no bound beyond the client's connection.
func WithRequestTimeout(d time.Duration) ChatHandlerOption {
	return func(h *ChatHandler) {
		if d >= 0 {
			h.requestTimeout = d
		}
	}
}

// WithRegistry sets the provider table reported by HandleProviders.
func WithRegistry(reg domain.Registry) ChatHandlerOption {
	return func(h *ChatHandler) {
		h.registry = reg
	}
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(client adapter.ChatCompleter, opts ...ChatHandlerOption) *ChatHandler {
	h := &ChatHandler{
		client: client,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// ChatRequest is the body of POST /v1/chat/completions.
type ChatRequest struct {
	Messages    []domain.Turn    `json:"messages"`
	Tier        domain.ModelTier `json:"tier,omitempty"`
	Model       string           `json:"model,omitempty"`
	MaxTokens   *int             `json:"max_tokens,omitempty"`
	Temperature *float64         `json:"temperature,omitempty"`
}

// ChatResponse is the normalized completion returned to callers.
type ChatResponse struct {
	Content  string              `json:"content"`
	Usage    json.RawMessage     `json:"usage,omitempty"`
	Provider domain.ProviderName `json:"provider"`
	Model    string              `json:"model,omitempty"`
}

// AssistantRequest is the body of POST /v1/assistant/chat.
type AssistantRequest struct {
	Message string             `json:"message"`
	History []domain.Turn      `json:"history,omitempty"`
	Project *assistant.Project `json:"project,omitempty"`
	Tier    domain.ModelTier   `json:"tier,omitempty"`
}

// HandleChatCompletion handles POST /v1/chat/completions.
func (h *ChatHandler) HandleChatCompletion(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "invalid_request_error", "Invalid request body: "+err.Error())
		return
	}

	if len(req.Messages) == 0 {
		h.sendError(c, http.StatusBadRequest, "invalid_request_error", "messages array is required")
		return
	}

	opts := domain.Options{
		Tier:        req.Tier,
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	h.complete(c, req.Messages, opts)
}

// HandleAssistantChat handles POST /v1/assistant/chat.
// It wraps the user's message in the construction assistant prompt.
func (h *ChatHandler) HandleAssistantChat(c *gin.Context) {
	var req AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "invalid_request_error", "Invalid request body: "+err.Error())
		return
	}

	turns, err := assistant.Conversation(req.Project, req.History, req.Message)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "invalid_request_error", err.Error())
		return
	}

	h.complete(c, turns, domain.Options{Tier: req.Tier})
}

func (h *ChatHandler) complete(c *gin.Context, turns []domain.Turn, opts domain.Options) {
	ctx := c.Request.Context()
	if h.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.requestTimeout)
		defer cancel()
	}

	provider := h.client.Provider()
	c.Set("provider", string(provider))

	completion, err := h.client.ChatCompletion(ctx, turns, opts)
	if err != nil {
		h.handleCompletionError(c, provider, err)
		return
	}

	h.logger.Info("chat completion succeeded",
		slog.String("provider", string(provider)),
		slog.Int("turns", len(turns)),
		slog.Int("content_length", len(completion.Content)),
	)

	c.JSON(http.StatusOK, ChatResponse{
		Content:  completion.Content,
		Usage:    completion.Usage,
		Provider: provider,
		Model:    completion.Model,
	})
}

// handleCompletionError maps client errors to HTTP responses.
// Upstream details are logged, not returned.
func (h *ChatHandler) handleCompletionError(c *gin.Context, provider domain.ProviderName, err error) {
	var upstream *adapter.UpstreamError

	switch {
	case errors.Is(err, adapter.ErrInvalidRequest):
		h.sendError(c, http.StatusBadRequest, "invalid_request_error", err.Error())
		return
	case adapter.IsConfigError(err):
		h.logger.Error("ai provider misconfigured", slog.String("provider", string(provider)), slog.String("error", err.Error()))
		h.sendError(c, http.StatusServiceUnavailable, "configuration_error", "The AI assistant is not configured.")
		return
	case errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn("ai provider timed out", slog.String("provider", string(provider)))
		h.sendError(c, http.StatusGatewayTimeout, "timeout_error", "The AI provider did not respond in time.")
		return
	case errors.As(err, &upstream):
		h.logger.Warn("ai provider returned an error",
			slog.String("provider", string(provider)),
			slog.Int("upstream_status", upstream.StatusCode),
			slog.String("error", err.Error()),
		)
		c.Set("upstream_status", upstream.StatusCode)
		h.sendError(c, http.StatusBadGateway, "upstream_error", "The AI provider returned an error.")
		return
	case adapter.IsShapeError(err):
		h.logger.Error("ai provider response not understood", slog.String("provider", string(provider)), slog.String("error", err.Error()))
		h.sendError(c, http.StatusBadGateway, "upstream_error", "The AI provider returned an unexpected response.")
		return
	default:
		h.logger.Error("ai provider request failed", slog.String("provider", string(provider)), slog.String("error", err.Error()))
		h.sendError(c, http.StatusBadGateway, "upstream_error", "The AI provider could not be reached.")
	}
}

// ProviderStatus describes one provider for GET /v1/providers.
type ProviderStatus struct {
	Name       domain.ProviderName `json:"name"`
	Family     string              `json:"family"`
	Models     domain.Models       `json:"models"`
	Configured bool                `json:"configured"`
	Active     bool                `json:"active"`
}

// HandleProviders handles GET /v1/providers.
// Credentials are reported only as configured or not.
func (h *ChatHandler) HandleProviders(c *gin.Context) {
	active := h.client.Provider()

	data := make([]ProviderStatus, 0, len(h.registry))
	for _, name := range domain.ProviderNames() {
		d, ok := h.registry.Lookup(name)
		if !ok {
			continue
		}
		data = append(data, ProviderStatus{
			Name:       d.Name,
			Family:     d.Family.String(),
			Models:     d.Models,
			Configured: d.HasCredential(),
			Active:     d.Name == active,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"active": active,
		"data":   data,
	})
}

// HandleHealth handles GET /health.
func (h *ChatHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"provider": h.client.Provider(),
	})
}

// sendError sends an error response in OpenAI-compatible format.
func (h *ChatHandler) sendError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"message": message,
			"type":    errType,
			"param":   nil,
			"code":    nil,
		},
	})
}
