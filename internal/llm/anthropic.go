package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/Kirankkt/Trivandrum-Realty-v2/internal/metrics"
	"github.com/Kirankkt/Trivandrum-Realty-v2/pkg/circuitbreaker"
	"github.com/Kirankkt/Trivandrum-Realty-v2/pkg/logger"
)

type AnthropicClient struct {
	client      sdk.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	cb          *circuitbreaker.CircuitBreaker
}

func NewAnthropicClient(cfg Config) *AnthropicClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		// One attempt per estimate; the baseline covers failures.
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	logger.Info("LLM client initialized",
		zap.String("provider", "anthropic"),
		zap.String("model", cfg.Model),
	)

	return &AnthropicClient{
		client:      sdk.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
		cb:          newBreaker("llm-anthropic"),
	}
}

func (c *AnthropicClient) Model() string { return c.model }

func (c *AnthropicClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req = withDefaults(req, c.temperature, c.maxTokens)

	params := sdk.MessageNewParams{
		Model:       sdk.Model(c.model),
		MaxTokens:   int64(req.MaxTokens),
		Messages:    []sdk.MessageParam{sdk.NewUserMessage(sdk.NewTextBlock(req.UserPrompt))},
		Temperature: sdk.Float(float64(req.Temperature)),
	}
	if req.SystemPrompt != "" {
		params.System = []sdk.TextBlockParam{{Text: req.SystemPrompt}}
	}

	var result *CompletionResponse

	err := c.cb.Execute(ctx, func() error {
		msg, err := c.client.Messages.New(ctx, params)
		if err != nil {
			return fmt.Errorf("failed to create message: %w", err)
		}

		var sb strings.Builder
		for _, block := range msg.Content {
			if block.Type == "text" {
				sb.WriteString(block.Text)
			}
		}
		if strings.TrimSpace(sb.String()) == "" {
			return ErrEmptyCompletion
		}

		in, out := int(msg.Usage.InputTokens), int(msg.Usage.OutputTokens)
		logger.Debug("LLM completion generated",
			zap.Int("prompt_tokens", in),
			zap.Int("completion_tokens", out),
		)
		metrics.RecordTokens(c.model, in, out)

		result = &CompletionResponse{
			Content: sb.String(),
			Usage: Usage{
				PromptTokens:     in,
				CompletionTokens: out,
				TotalTokens:      in + out,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
