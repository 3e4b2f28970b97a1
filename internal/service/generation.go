package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fitsage/coach-app/internal/config"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// TextGenerator is the external generative-text service contract: one call,
// prompt in, raw text out. Implementations raise on transport or service
// failure with enough information (status code or message substring) for the
// classification below.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// --- Terminal error types ---

// RateLimitExceededError is raised after every retry attempt hit the
// provider's rate limit. It is a "try again later" condition for the caller.
type RateLimitExceededError struct {
	Attempts int
}

func (e *RateLimitExceededError) Error() string {
	return fmt.Sprintf("generation rate limit exceeded after %d attempts, try again later", e.Attempts)
}

// AuthenticationError is a terminal configuration-level failure. It carries
// whether an API key was configured at all, never the key itself.
type AuthenticationError struct {
	KeyConfigured bool
	cause         error
}

func (e *AuthenticationError) Error() string {
	if !e.KeyConfigured {
		return "generation service authentication failed: no API key configured"
	}
	return "generation service authentication failed: API key was rejected"
}

func (e *AuthenticationError) Unwrap() error { return e.cause }

// GenerationError wraps any failure that is neither a rate limit nor an
// authentication problem, preserving the original message for diagnosis.
type GenerationError struct {
	cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.cause)
}

func (e *GenerationError) Unwrap() error { return e.cause }

// --- Error classification ---

// isRateLimitError reports whether the provider error indicates rate
// limiting. Checked first: these are the only errors worth retrying.
func isRateLimitError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "429")
}

// isAuthError reports whether the provider error indicates an
// authentication or authorization failure. Checked after rate limiting.
func isAuthError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "403") ||
		strings.Contains(msg, "forbidden") ||
		strings.Contains(msg, "permission denied") ||
		strings.Contains(msg, "api key") ||
		strings.Contains(msg, "authentication")
}

// --- Retry policy ---

// RetryPolicy is an explicit, unit-testable backoff policy: up to
// MaxAttempts tries with delay BaseDelay * 2^attempt between them, applied
// only to rate-limit-classified failures. Sleep is injectable for tests.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Sleep       func(time.Duration)
}

// DefaultRetryPolicy is the weekly-path default: 3 attempts, 2s base delay.
// The daily path uses a smaller base since its messages are cheap to redo.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: 2 * time.Second}
}

func (p RetryPolicy) sleep(d time.Duration) {
	if p.Sleep != nil {
		p.Sleep(d)
		return
	}
	time.Sleep(d)
}

// GenerationClient wraps a TextGenerator with the retry policy and error
// classification. Attempts are strictly sequential: a generation call is
// stateful on the remote side, and backoff needs the prior outcome.
type GenerationClient struct {
	generator     TextGenerator
	policy        RetryPolicy
	keyConfigured bool
	logger        *zap.Logger
}

// NewGenerationClient creates a GenerationClient. keyConfigured feeds the
// non-secret diagnostic on authentication failures.
func NewGenerationClient(generator TextGenerator, policy RetryPolicy, keyConfigured bool, logger *zap.Logger) *GenerationClient {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 3
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = 2 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerationClient{
		generator:     generator,
		policy:        policy,
		keyConfigured: keyConfigured,
		logger:        logger,
	}
}

// Generate invokes the text service. Rate-limited attempts back off and
// retry up to the policy limit; any other failure is terminal immediately.
func (c *GenerationClient) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < c.policy.MaxAttempts; attempt++ {
		text, err := c.generator.Generate(ctx, prompt)
		if err == nil {
			return text, nil
		}

		if !isRateLimitError(err) {
			if isAuthError(err) {
				return "", &AuthenticationError{KeyConfigured: c.keyConfigured, cause: err}
			}
			return "", &GenerationError{cause: err}
		}

		lastErr = err
		if attempt+1 < c.policy.MaxAttempts {
			delay := c.policy.BaseDelay * (1 << attempt)
			c.logger.Warn("generation rate limited, backing off",
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay))
			c.policy.sleep(delay)
		}
	}

	c.logger.Error("generation rate limit retries exhausted",
		zap.Int("attempts", c.policy.MaxAttempts),
		zap.Error(lastErr))
	return "", &RateLimitExceededError{Attempts: c.policy.MaxAttempts}
}

// --- Gemini-backed TextGenerator ---

// geminiGenerator implements TextGenerator using Google's Gemini API.
type geminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates the production TextGenerator from config.
func NewGeminiGenerator(ctx context.Context, cfg config.GeminiConfig) (TextGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	return &geminiGenerator{client: client, model: model}, nil
}

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}

	text := result.Text()
	if text == "" {
		return "", errors.New("no text returned by generation service")
	}
	return text, nil
}
