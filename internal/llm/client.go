package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kirankkt/Trivandrum-Realty-v2/pkg/circuitbreaker"
	"github.com/Kirankkt/Trivandrum-Realty-v2/pkg/logger"
)

var ErrEmptyCompletion = errors.New("llm returned no content")

// Completer sends one prompt to a chat model. Implementations make exactly
// one upstream attempt per call.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	Model() string
}

type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float32
	MaxTokens    int
}

type CompletionResponse struct {
	Content string
	Usage   Usage
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
	// BaseURL overrides the provider endpoint. Empty uses the public API.
	BaseURL string
}

// New builds the completer for cfg.Provider.
func New(cfg Config) (Completer, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	switch cfg.Provider {
	case "openai", "":
		return NewOpenAIClient(cfg), nil
	case "anthropic":
		return NewAnthropicClient(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}

func newBreaker(name string) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.NewCircuitBreaker(name, circuitbreaker.Config{
		MaxRequests:      5,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Logger:           logger.GetLogger(),
	})
}

func withDefaults(req CompletionRequest, temperature float32, maxTokens int) CompletionRequest {
	if req.Temperature == 0 {
		req.Temperature = temperature
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = maxTokens
	}
	return req
}
