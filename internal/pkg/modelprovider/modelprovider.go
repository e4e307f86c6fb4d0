package modelprovider

import (
	"context"
	"time"

	"github.com/go-redis/redis_rate/v10"
)

// config for model provider
type ModelProviderConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Timeout        time.Duration
	ThinkingBudget int
	RateLimitRPS   int
	Limiter        *redis_rate.Limiter
}

// Response is the raw outcome of one model invocation: the narrative text
// plus the grounding citations the model attached to it.
type Response struct {
	Text            string
	GroundingChunks []GroundingChunk
}

type GroundingChunk struct {
	Web *WebSource
}

type WebSource struct {
	Title string
	URI   string
}

type ModelProvider interface {
	Generate(ctx context.Context, prompt string) (Response, error)
}

type ModelProviderFactory struct {
	Provider map[string]ModelProvider
}

func NewModelProviderFactory() *ModelProviderFactory {
	return &ModelProviderFactory{
		Provider: make(map[string]ModelProvider),
	}
}

func (f *ModelProviderFactory) AddProvider(name string, provider ModelProvider) {
	f.Provider[name] = provider
}

func (f *ModelProviderFactory) GetProvider(name string) ModelProvider {
	return f.Provider[name]
}
