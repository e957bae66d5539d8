package generator

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ifuryst/postcraft/internal/metrics"
	"github.com/ifuryst/postcraft/internal/models"
)

const (
	defaultPostCount     = 5
	missingAPIKeyMessage = "Missing GEMINI_API_KEY. Set it in your environment or .env file."
)

// Config is everything the pipeline needs from the environment.
type Config struct {
	APIKey         string
	Model          string
	FallbackModels []string
	Timeout        time.Duration
}

// Generator produces exactly the requested number of posts for a project,
// falling back to offline templates when the provider cannot deliver.
type Generator struct {
	cfg    Config
	client *ModelClient
	logger *zap.Logger
}

// New builds a Generator. A nil provider means the Gemini API.
func New(cfg Config, provider Provider, logger *zap.Logger) *Generator {
	if provider == nil {
		provider = NewGeminiProvider(cfg.APIKey, cfg.Timeout)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		cfg:    cfg,
		client: NewModelClient(provider, cfg.Model, cfg.FallbackModels, logger),
		logger: logger,
	}
}

// Generate returns len == count posts numbered 1..count, or one of
// ConfigurationError, QuotaError or ErrEmptyResult.
func (g *Generator) Generate(ctx context.Context, data ProjectData, temperature float64) ([]Post, error) {
	count := data.NumberOfPosts
	if count == 0 {
		count = defaultPostCount
	}
	count = models.ClampPostCount(count)
	data.NumberOfPosts = count

	if g.cfg.APIKey == "" {
		metrics.GenerationsTotal.WithLabelValues("config_error").Inc()
		return nil, &ConfigurationError{Message: missingAPIKeyMessage}
	}

	userPrompt := BuildUserPrompt(data)
	temperature = models.ClampTemperature(temperature)
	maxTokens := MaxOutputTokens(count)

	g.logger.Info("Generating posts",
		zap.String("business", data.BusinessName),
		zap.Int("count", count),
		zap.Float64("temperature", temperature),
		zap.Int("max_output_tokens", maxTokens))

	result := "provider"
	var posts []Post

	payload, err := g.client.Generate(ctx, userPrompt, temperature, maxTokens)
	switch {
	case err == nil:
		posts = NormalizePosts(payload)
	case IsQuotaError(err):
		metrics.GenerationsTotal.WithLabelValues("quota_error").Inc()
		g.logger.Error("Provider quota exhausted", zap.Error(err))
		return nil, &QuotaError{Err: err}
	default:
		var cfgErr *ConfigurationError
		if errors.As(err, &cfgErr) {
			metrics.GenerationsTotal.WithLabelValues("config_error").Inc()
			return nil, cfgErr
		}
		g.logger.Warn("Provider failed, using offline posts",
			zap.Error(&ProviderError{Err: err}))
		result = "fallback"
		posts = OfflinePosts(data, count)
	}

	for i := range posts {
		posts[i] = posts[i].Normalize()
	}

	if len(posts) > count {
		posts = posts[:count]
	}
	if len(posts) < count {
		if result == "provider" {
			result = "padded"
			g.logger.Info("Provider returned too few posts, padding",
				zap.Int("received", len(posts)),
				zap.Int("wanted", count))
		}
		posts = append(posts, OfflinePosts(data, count)[len(posts):]...)
	}

	if len(posts) == 0 {
		metrics.GenerationsTotal.WithLabelValues("empty").Inc()
		return nil, ErrEmptyResult
	}

	for i := range posts {
		posts[i].Number = i + 1
	}

	metrics.GenerationsTotal.WithLabelValues(result).Inc()
	metrics.PostsGeneratedTotal.Add(float64(len(posts)))
	return posts, nil
}
