package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/spapperi/ragserver/internal/pkg/apperr"
)

// IProvider is one remote AI backend able to serve both chat completion
// and text embedding for the models it hosts.
type IProvider interface {
	Name() string
	Generate(ctx context.Context, model string, system string, user string) (string, error)
	Embed(ctx context.Context, model string, text string, taskType string) ([]float32, error)
}

// IGenerator produces a completion for a system prompt plus user message.
// Each call is a single synchronous remote request with no retry.
type IGenerator interface {
	Generate(ctx context.Context, system string, user string) (string, error)
}

// IEmbedder turns text into a fixed-length vector. Each call is a single
// synchronous remote request with no caching, batching, or retry.
type IEmbedder interface {
	Embed(ctx context.Context, text string, taskType string) ([]float32, error)
	ModelName() string
}

type generator struct {
	provider IProvider
	model    string
}

func NewGenerator(p IProvider, model string) IGenerator {
	return &generator{provider: p, model: model}
}

func (g *generator) Generate(ctx context.Context, system string, user string) (string, error) {
	res, err := g.provider.Generate(ctx, g.model, system, user)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperr.ErrCompletion, err)
	}
	return res, nil
}

type embedder struct {
	provider IProvider
	model    string
}

func NewEmbedder(p IProvider, model string) IEmbedder {
	return &embedder{provider: p, model: model}
}

func (e *embedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	vec, err := e.provider.Embed(ctx, e.model, text, taskType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrEmbedding, err)
	}
	return vec, nil
}

func (e *embedder) ModelName() string {
	return e.model
}

type ProviderFactory func(args interface{}) (IProvider, error)

var registry = map[string]ProviderFactory{}

func Register(name string, factory ProviderFactory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	registry[key] = factory
}

func NewProvider(name string, args interface{}) (IProvider, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("ai.provider is required")
	}
	factory := registry[key]
	if factory == nil {
		return nil, fmt.Errorf("unsupported ai provider: %s", name)
	}
	return factory(args)
}
