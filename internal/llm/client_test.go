package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownProvider(t *testing.T) {
	_, err := New(Config{Provider: "gemini"})
	assert.Error(t, err)

	c, err := New(Config{Provider: "anthropic", APIKey: "k", Model: "claude-test"})
	require.NoError(t, err)
	assert.Equal(t, "claude-test", c.Model())
}

func TestOpenAIComplete(t *testing.T) {
	var body map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/chat/completions")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "gpt-test",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": `{"landRatePerCent": 12}`},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 8, "total_tokens": 48},
		})
	}))
	defer ts.Close()

	c, err := New(Config{Provider: "openai", APIKey: "k", Model: "gpt-test", MaxTokens: 256, BaseURL: ts.URL + "/v1"})
	require.NoError(t, err)

	resp, err := c.Complete(context.Background(), CompletionRequest{SystemPrompt: "sys", UserPrompt: "rate?"})
	require.NoError(t, err)
	assert.Equal(t, `{"landRatePerCent": 12}`, resp.Content)
	assert.Equal(t, 48, resp.Usage.TotalTokens)
	assert.Equal(t, "gpt-test", body["model"])
	assert.EqualValues(t, 256, body["max_tokens"])
}

func TestOpenAIEmptyChoicesIsAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`)) //nolint:errcheck
	}))
	defer ts.Close()

	c := NewOpenAIClient(Config{APIKey: "k", Model: "gpt-test", Timeout: time.Second, BaseURL: ts.URL + "/v1"})
	_, err := c.Complete(context.Background(), CompletionRequest{UserPrompt: "rate?"})
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestAnthropicComplete(t *testing.T) {
	var body map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/messages")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"id":   "msg_1",
			"type": "message",
			"role": "assistant",
			"content": []map[string]any{
				{"type": "text", "text": "Rate: "},
				{"type": "text", "text": `{"landRatePerCent": 9.5}`},
			},
			"model":       "claude-test",
			"stop_reason": "end_turn",
			"usage":       map[string]any{"input_tokens": 30, "output_tokens": 12},
		})
	}))
	defer ts.Close()

	c := NewAnthropicClient(Config{APIKey: "k", Model: "claude-test", MaxTokens: 512, Temperature: 0.1, Timeout: 5 * time.Second, BaseURL: ts.URL})
	resp, err := c.Complete(context.Background(), CompletionRequest{SystemPrompt: "sys", UserPrompt: "rate?"})
	require.NoError(t, err)

	assert.Equal(t, `Rate: {"landRatePerCent": 9.5}`, resp.Content)
	assert.Equal(t, 42, resp.Usage.TotalTokens)
	assert.Equal(t, "claude-test", body["model"])
	assert.EqualValues(t, 512, body["max_tokens"])
}

func TestAnthropicMakesOneAttempt(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"boom"}}`)) //nolint:errcheck
	}))
	defer ts.Close()

	c := NewAnthropicClient(Config{APIKey: "k", Model: "claude-test", MaxTokens: 64, Timeout: 5 * time.Second, BaseURL: ts.URL})
	_, err := c.Complete(context.Background(), CompletionRequest{UserPrompt: "rate?"})
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}
