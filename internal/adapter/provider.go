// Package adapter provides the provider-agnostic chat client.
// It hides the request and response formats of each hosted LLM API behind one call.
package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hpn/buildmate-ai/internal/domain"
	"github.com/hpn/buildmate-ai/internal/security"
)

// maxResponseBytes caps how much of a provider response is read.
const maxResponseBytes = 8 << 20

// ChatCompleter is the contract consumers depend on.
type ChatCompleter interface {
	// ChatCompletion sends the conversation to the active provider and returns
	// the normalized result.
	ChatCompletion(ctx context.Context, turns []domain.Turn, opts domain.Options) (domain.Completion, error)

	// Provider returns the active provider's name.
	Provider() domain.ProviderName
}

// Client talks to exactly one provider, chosen at construction.
// It holds no mutable state and is safe for concurrent use.
type Client struct {
	desc       domain.Descriptor
	codec      codec
	httpClient *http.Client
	logger     *slog.Logger
}

// Option is a functional option for configuring Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithBaseURL overrides the descriptor's base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.desc.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// New creates a Client for the named provider in registry.
// It fails with a *ConfigError when the provider is unknown or has no credential.
func New(registry domain.Registry, name domain.ProviderName, opts ...Option) (*Client, error) {
	desc, ok := registry.Lookup(name)
	if !ok {
		return nil, &ConfigError{Provider: name, Err: ErrUnknownProvider}
	}
	if !desc.HasCredential() {
		return nil, &ConfigError{Provider: name, Err: ErrMissingCredential}
	}

	cd, err := codecFor(desc.Family)
	if err != nil {
		return nil, &ConfigError{Provider: name, Err: err}
	}

	c := &Client{
		desc:       cloneDescriptor(desc),
		codec:      cd,
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}
	c.desc.BaseURL = strings.TrimSuffix(c.desc.BaseURL, "/")

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Provider returns the active provider's name.
func (c *Client) Provider() domain.ProviderName {
	return c.desc.Name
}

// Descriptor returns a copy of the active descriptor without its credential.
func (c *Client) Descriptor() domain.Descriptor {
	d := cloneDescriptor(c.desc)
	d.APIKey = ""
	return d
}

// ChatCompletion performs one request against the active provider.
// Failures are returned as-is; nothing is retried.
func (c *Client) ChatCompletion(ctx context.Context, turns []domain.Turn, opts domain.Options) (domain.Completion, error) {
	if err := validateTurns(turns); err != nil {
		return domain.Completion{}, err
	}
	if !opts.Tier.IsValid() {
		return domain.Completion{}, fmt.Errorf("%w: unknown model tier %q", ErrInvalidRequest, opts.Tier)
	}

	p := c.resolve(opts)

	body, err := json.Marshal(c.codec.encode(turns, p))
	if err != nil {
		return domain.Completion{}, fmt.Errorf("failed to marshal %s request: %w", c.desc.Name, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.codec.endpoint(&c.desc, p.model), bytes.NewReader(body))
	if err != nil {
		return domain.Completion{}, fmt.Errorf("failed to create http request: %s", security.Redact(err.Error()))
	}
	for k, v := range c.desc.Headers {
		httpReq.Header.Set(k, v)
	}
	c.codec.authenticate(httpReq.Header, &c.desc)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = security.RedactURL(urlErr.URL)
		}
		return domain.Completion{}, fmt.Errorf("failed to execute %s request: %w", c.desc.Name, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.Completion{}, fmt.Errorf("failed to read %s response: %w", c.desc.Name, err)
	}

	c.logger.Debug("provider call finished",
		slog.String("provider", string(c.desc.Name)),
		slog.String("model", p.model),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Completion{}, &UpstreamError{
			Provider:   c.desc.Name,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	completion, err := c.codec.decode(respBody)
	if err != nil {
		var shapeErr *ShapeError
		if errors.As(err, &shapeErr) {
			shapeErr.Provider = c.desc.Name
		}
		return domain.Completion{}, err
	}
	completion.Model = p.model

	return completion, nil
}

// resolve applies the option overrides on top of the descriptor defaults.
func (c *Client) resolve(opts domain.Options) params {
	p := params{
		model:       opts.Model,
		maxTokens:   c.desc.MaxTokens,
		temperature: c.desc.Temperature,
	}
	if p.model == "" {
		p.model = c.desc.Models.ForTier(opts.Tier)
	}
	if opts.MaxTokens != nil {
		p.maxTokens = *opts.MaxTokens
	}
	if opts.Temperature != nil {
		p.temperature = *opts.Temperature
	}
	return p
}

func validateTurns(turns []domain.Turn) error {
	if len(turns) == 0 {
		return ErrNoTurns
	}
	for i, t := range turns {
		if !t.Role.IsValid() {
			return fmt.Errorf("%w: turn %d has unknown role %q", ErrInvalidRequest, i, t.Role)
		}
	}
	return nil
}

func cloneDescriptor(d domain.Descriptor) domain.Descriptor {
	if d.Headers != nil {
		headers := make(map[string]string, len(d.Headers))
		for k, v := range d.Headers {
			headers[k] = v
		}
		d.Headers = headers
	}
	return d
}
