package adapter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hpn/buildmate-ai/internal/domain"
)

var (
	// ErrUnknownProvider is returned when the selected provider is not in the registry.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrMissingCredential is returned when the selected provider has no API key.
	ErrMissingCredential = errors.New("provider credential is not configured")

	// ErrInvalidRequest is the parent of all caller input errors.
	ErrInvalidRequest = errors.New("invalid chat request")

	// ErrNoTurns is returned for an empty conversation.
	ErrNoTurns = fmt.Errorf("%w: at least one turn is required", ErrInvalidRequest)
)

// ConfigError is raised before any network call when the client cannot be built.
type ConfigError struct {
	Provider domain.ProviderName
	Err      error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("ai provider %q configuration error: %v", e.Provider, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// UpstreamError reports a non-2xx response from a provider.
type UpstreamError struct {
	Provider   domain.ProviderName
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API error [%d]: %s", e.Provider, e.StatusCode, strings.TrimSpace(e.Body))
}

// ShapeError reports a successful response whose JSON lacks the expected path.
type ShapeError struct {
	Provider domain.ProviderName
	Path     string
	Err      error
}

func (e *ShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s response missing %s: %v", e.Provider, e.Path, e.Err)
	}
	return fmt.Sprintf("%s response missing %s", e.Provider, e.Path)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}

func missing(path string) error {
	return &ShapeError{Path: path}
}

func malformed(path string, err error) error {
	return &ShapeError{Path: path, Err: err}
}

// IsConfigError checks if an error is a ConfigError.
func IsConfigError(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}

// IsUpstreamError checks if an error is an UpstreamError.
func IsUpstreamError(err error) bool {
	var target *UpstreamError
	return errors.As(err, &target)
}

// IsShapeError checks if an error is a ShapeError.
func IsShapeError(err error) bool {
	var target *ShapeError
	return errors.As(err, &target)
}
