package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Generator produces a model reply for a prompt
type Generator interface {
	Generate(ctx context.Context, prompt string, temperature float32) (string, error)
}

var (
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY not set")
	ErrPromptBlocked = errors.New("model blocked prompt")
	ErrEmptyReply    = errors.New("model returned empty content")
)

const (
	// DefaultGeminiModel is used when no model name is configured
	DefaultGeminiModel = "gemini-2.0-flash"
	maxRetries         = 3
	initialBackoff     = time.Second
)

type contentFunc func(ctx context.Context, prompt string, temperature float32) (*genai.GenerateContentResponse, error)

// GeminiGenerator calls Gemini through the generative-ai-go SDK
type GeminiGenerator struct {
	client  *genai.Client
	model   string
	logger  *zap.Logger
	backoff time.Duration
	call    contentFunc
}

// GeminiOption is a functional option for GeminiGenerator
type GeminiOption func(*GeminiGenerator)

// GeminiWithModel sets the model name
func GeminiWithModel(name string) GeminiOption {
	return func(g *GeminiGenerator) {
		if name != "" {
			g.model = name
		}
	}
}

// GeminiWithLogger sets the logger
func GeminiWithLogger(logger *zap.Logger) GeminiOption {
	return func(g *GeminiGenerator) {
		g.logger = logger
	}
}

// NewGeminiGenerator creates a Gemini client for apiKey
func NewGeminiGenerator(ctx context.Context, apiKey string, opts ...GeminiOption) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	g := &GeminiGenerator{
		client:  client,
		model:   DefaultGeminiModel,
		logger:  zap.NewNop(),
		backoff: initialBackoff,
	}
	g.call = g.generateContent
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Close releases the underlying client
func (g *GeminiGenerator) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// Model returns the configured model name
func (g *GeminiGenerator) Model() string {
	return g.model
}

func (g *GeminiGenerator) generateContent(ctx context.Context, prompt string, temperature float32) (*genai.GenerateContentResponse, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(temperature)
	return model.GenerateContent(ctx, genai.Text(prompt))
}

// Generate sends prompt to the model, retrying with exponential backoff.
// Blocked prompts and context cancellation are not retried.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	var lastErr error
	backoff := g.backoff
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		resp, err := g.call(ctx, prompt, temperature)
		if err == nil {
			var text string
			if text, err = g.responseText(resp); err == nil {
				return text, nil
			}
		}
		if errors.Is(err, ErrPromptBlocked) || ctx.Err() != nil {
			return "", err
		}

		lastErr = err
		g.logger.Warn("generation attempt failed",
			zap.String("model", g.model),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}
	return "", fmt.Errorf("failed to generate content after %d attempts: %w", maxRetries, lastErr)
}

// responseText concatenates the text parts of every candidate
func (g *GeminiGenerator) responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", ErrEmptyReply
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return "", fmt.Errorf("%w: %v", ErrPromptBlocked, resp.PromptFeedback.BlockReason)
	}

	var text strings.Builder
	for i, cand := range resp.Candidates {
		if cand == nil {
			continue
		}
		if cand.FinishReason != genai.FinishReasonUnspecified && cand.FinishReason != genai.FinishReasonStop {
			g.logger.Warn("candidate finished early",
				zap.Int("candidate", i),
				zap.Stringer("finish_reason", cand.FinishReason),
			)
		}
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}

	if text.Len() == 0 {
		return "", ErrEmptyReply
	}
	return text.String(), nil
}
