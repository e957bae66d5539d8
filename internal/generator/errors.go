package generator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyResult means neither the provider nor the offline generator
// produced a post.
var ErrEmptyResult = errors.New("AI provider returned no posts")

// ConfigurationError is returned before any network call when the provider
// cannot be configured.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// QuotaError is returned when the provider refuses work for billing or
// rate-limit reasons. It is never masked by the offline generator.
type QuotaError struct {
	Err error
}

func (e *QuotaError) Error() string {
	return "Gemini API quota/rate-limit exceeded. Check billing, active project, and key restrictions."
}

func (e *QuotaError) Unwrap() error {
	return e.Err
}

// ProviderError wraps a recoverable provider or parse failure.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider call failed: %v", e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NoSupportedModelError is returned once every candidate model reported
// itself missing or unsupported.
type NoSupportedModelError struct {
	Tried []string
	Err   error
}

func (e *NoSupportedModelError) Error() string {
	return "No supported Gemini model found for generateContent. Tried: " + strings.Join(e.Tried, ", ")
}

func (e *NoSupportedModelError) Unwrap() error {
	return e.Err
}

// ParseError is returned when the model text is not valid JSON.
type ParseError struct {
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse model response as JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// StatusError is a provider error carrying an HTTP status code.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("provider returned status %d", e.Code)
	}
	return e.Message
}

func (e *StatusError) StatusCode() int {
	return e.Code
}
