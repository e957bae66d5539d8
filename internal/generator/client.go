package generator

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ifuryst/postcraft/internal/metrics"
	"github.com/ifuryst/postcraft/internal/models"
)

// DefaultModels are tried after the configured model, cheapest first.
var DefaultModels = []string{
	"gemini-2.0-flash-lite",
	"gemini-2.0-flash",
	"gemini-1.5-flash",
	"gemini-1.5-flash-latest",
}

// Request is a single provider call.
type Request struct {
	Model           string
	Prompt          string
	Temperature     float64
	MaxOutputTokens int
}

// Provider turns a prompt into raw model text.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, req Request) (string, error)

func (f ProviderFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeRetry
	outcomeFatal
)

func (o outcome) String() string {
	switch o {
	case outcomeSuccess:
		return "success"
	case outcomeRetry:
		return "model_not_found"
	default:
		return "error"
	}
}

type attemptResult struct {
	outcome outcome
	payload Payload
	err     error
}

// ModelClient calls the provider with each candidate model in turn.
type ModelClient struct {
	provider   Provider
	candidates []string
	logger     *zap.Logger
}

func NewModelClient(provider Provider, preferred string, fallbacks []string, logger *zap.Logger) *ModelClient {
	if fallbacks == nil {
		fallbacks = DefaultModels
	}
	return &ModelClient{
		provider:   provider,
		candidates: ModelCandidates(preferred, fallbacks),
		logger:     logger,
	}
}

// ModelCandidates puts preferred first, drops blanks and keeps the first
// occurrence of each id.
func ModelCandidates(preferred string, fallbacks []string) []string {
	candidates := []string{}
	seen := map[string]bool{}
	for _, name := range append([]string{preferred}, fallbacks...) {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		candidates = append(candidates, name)
	}
	return candidates
}

// Candidates returns the models in the order they are tried.
func (c *ModelClient) Candidates() []string {
	return append([]string(nil), c.candidates...)
}

// Generate returns the decoded payload from the first model that answers.
// A model-not-found error moves on to the next candidate, anything else
// is returned as is.
func (c *ModelClient) Generate(ctx context.Context, userPrompt string, temperature float64, maxOutputTokens int) (Payload, error) {
	req := Request{
		Prompt:          fullPrompt(userPrompt),
		Temperature:     models.ClampTemperature(temperature),
		MaxOutputTokens: maxOutputTokens,
	}

	tried := make([]string, 0, len(c.candidates))
	var lastErr error

	for _, model := range c.candidates {
		tried = append(tried, model)
		req.Model = model

		start := time.Now()
		res := c.attempt(ctx, req)
		metrics.ModelAttemptsTotal.WithLabelValues(model, res.outcome.String()).Inc()

		switch res.outcome {
		case outcomeSuccess:
			c.logger.Info("Model generation succeeded",
				zap.String("model", model),
				zap.Duration("duration", time.Since(start)))
			return res.payload, nil
		case outcomeRetry:
			c.logger.Warn("Model not available, trying next candidate",
				zap.String("model", model),
				zap.Error(res.err))
			lastErr = res.err
		default:
			c.logger.Error("Model generation failed",
				zap.String("model", model),
				zap.Error(res.err))
			return nil, res.err
		}
	}

	return nil, &NoSupportedModelError{Tried: tried, Err: lastErr}
}

func (c *ModelClient) attempt(ctx context.Context, req Request) attemptResult {
	text, err := c.provider.Generate(ctx, req)
	if err != nil {
		if IsModelNotFoundError(err) {
			return attemptResult{outcome: outcomeRetry, err: err}
		}
		return attemptResult{outcome: outcomeFatal, err: err}
	}

	if strings.TrimSpace(text) == "" {
		text = "{}"
	}
	payload, err := ExtractJSON(text)
	if err != nil {
		return attemptResult{outcome: outcomeFatal, err: err}
	}
	return attemptResult{outcome: outcomeSuccess, payload: payload}
}

// MaxOutputTokens is the output budget for count posts.
func MaxOutputTokens(count int) int {
	tokens := count * 350
	if tokens < 800 {
		return 800
	}
	if tokens > 2200 {
		return 2200
	}
	return tokens
}
