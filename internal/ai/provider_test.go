package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spapperi/ragserver/internal/pkg/apperr"
)

type fakeProvider struct {
	generateErr error
	embedErr    error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(ctx context.Context, model, system, user string) (string, error) {
	if f.generateErr != nil {
		return "", f.generateErr
	}
	return "ok", nil
}

func (f *fakeProvider) Embed(ctx context.Context, model, text, taskType string) ([]float32, error) {
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return []float32{1}, nil
}

func TestNewProviderUnknownName(t *testing.T) {
	_, err := NewProvider("nonexistent", nil)
	require.Error(t, err)

	_, err = NewProvider("", nil)
	require.Error(t, err)
}

func TestGeneratorWrapsCompletionError(t *testing.T) {
	gen := NewGenerator(&fakeProvider{generateErr: errors.New("boom")}, "m")
	_, err := gen.Generate(context.Background(), "sys", "user")
	require.ErrorIs(t, err, apperr.ErrCompletion)
}

func TestEmbedderWrapsEmbeddingError(t *testing.T) {
	emb := NewEmbedder(&fakeProvider{embedErr: errors.New("boom")}, "m")
	_, err := emb.Embed(context.Background(), "text", "")
	require.ErrorIs(t, err, apperr.ErrEmbedding)
	require.Equal(t, "m", emb.ModelName())
}

func TestGeneratorPassesThrough(t *testing.T) {
	gen := NewGenerator(&fakeProvider{}, "m")
	res, err := gen.Generate(context.Background(), "sys", "user")
	require.NoError(t, err)
	require.Equal(t, "ok", res)
}
