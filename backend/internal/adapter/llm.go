package adapter

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"campaign-speeches/backend/internal/constants"
	"campaign-speeches/backend/internal/speech"
	apperrors "campaign-speeches/backend/pkg/errors"
	"campaign-speeches/backend/pkg/logger"
)

// PromptWords is how many of a speaker's top words go into the prompt
const PromptWords = 30

const summarySystemPrompt = "You summarize U.S. 2020 campaign speeches. " +
	"Given the most frequent words of one speaker, answer with a single sentence naming their main topics."

// LLMAdapter talks to an OpenAI-compatible chat endpoint
type LLMAdapter struct {
	client  *openai.Client
	model   string
	mu      sync.RWMutex // Protects model field for concurrent access
	backoff time.Duration
	logger  *zap.Logger
}

// NewLLMAdapter creates a new LLM adapter. An empty baseURL selects the
// OpenAI API.
func NewLLMAdapter(baseURL, apiKey, modelID string) *LLMAdapter {
	// LiteLLM and local servers accept any key
	if apiKey == "" {
		apiKey = "dummy-key"
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = strings.TrimRight(baseURL, "/") + "/v1"
	}

	return &LLMAdapter{
		client:  openai.NewClientWithConfig(config),
		model:   modelID,
		backoff: time.Second,
		logger:  logger.Named("llm"),
	}
}

// SetModel updates the model used by this adapter
func (a *LLMAdapter) SetModel(model string) {
	if model != "" {
		a.mu.Lock()
		a.model = model
		a.mu.Unlock()
		a.logger.Debug("LLM adapter model updated", zap.String("model", model))
	}
}

// GetModel returns the current model
func (a *LLMAdapter) GetModel() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.model
}

// Summarize returns a one-sentence topic summary for a speaker
func (a *LLMAdapter) Summarize(ctx context.Context, speaker string, words []speech.Count) (string, error) {
	if len(words) > PromptWords {
		words = words[:PromptWords]
	}
	list := make([]string, len(words))
	for i, w := range words {
		list[i] = fmt.Sprintf("%s (%d)", w.Label, w.Count)
	}
	userMsg := fmt.Sprintf("Speaker: %s\nMost frequent words: %s", speaker, strings.Join(list, ", "))

	content, err := a.complete(ctx, summarySystemPrompt, userMsg)
	if err != nil {
		return "", err
	}
	return firstLine(content), nil
}

// complete sends one chat request, retrying with linear backoff
func (a *LLMAdapter) complete(ctx context.Context, systemPrompt, userMsg string) (string, error) {
	currentModel := a.GetModel()
	req := openai.ChatCompletionRequest{
		Model: currentModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMsg},
		},
		Temperature: 0.3,
	}

	var (
		resp openai.ChatCompletionResponse
		err  error
	)
	maxRetries := constants.LLMMaxRetries
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * a.backoff
			a.logger.Warn("Retrying LLM request",
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err = a.client.CreateChatCompletion(ctx, req)
		if err == nil {
			break
		}

		a.logger.Error("LLM request failed",
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.String("model", currentModel),
		)
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	if err != nil {
		return "", apperrors.NewLLMFailed(currentModel, maxRetries, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", apperrors.ErrLLMNoResponse
	}

	a.logger.Debug("LLM response generated",
		zap.String("model", currentModel),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)
	return resp.Choices[0].Message.Content, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}
