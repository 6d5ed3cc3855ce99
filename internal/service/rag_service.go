package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/spapperi/ragserver/internal/ai"
	"github.com/spapperi/ragserver/internal/model"
	"github.com/spapperi/ragserver/internal/pkg/apperr"
)

const systemPromptTemplate = `You are an expert assistant for %s,
an Italian agricultural machinery company. You have deep knowledge about their products,
services, and company information.

Your role is to:
- Provide accurate information about the company's agricultural machinery
- Answer technical questions about their products
- Help customers understand product specifications and features
- Provide contact information when needed
- Be professional, helpful, and knowledgeable

Always base your answers on the provided context. If you don't know something based
on the context, say so honestly. You can respond in multiple languages based on
the customer's question.

Context information:
%s
`

// Searcher is the nearest-neighbor read path the query pipeline uses.
type Searcher interface {
	SearchNearest(ctx context.Context, vec []float32, k int) ([]model.SearchHit, error)
}

// RAGService runs the per-request pipeline: embed the question, retrieve
// the top-K nearest chunks, and complete with the grounded system prompt.
// It holds no state across calls.
type RAGService struct {
	embedder    ai.IEmbedder
	generator   ai.IGenerator
	store       Searcher
	topK        int
	companyName string
}

func NewRAGService(embedder ai.IEmbedder, generator ai.IGenerator, store Searcher, topK int, companyName string) *RAGService {
	return &RAGService{
		embedder:    embedder,
		generator:   generator,
		store:       store,
		topK:        topK,
		companyName: companyName,
	}
}

func (s *RAGService) Query(ctx context.Context, question string) (*model.QueryResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is empty", apperr.ErrInvalid)
	}
	logger := logutil.GetLogger(ctx).With(zap.String("question", question))

	embedding, err := s.embedder.Embed(ctx, question, "RETRIEVAL_QUERY")
	if err != nil {
		logger.Error("failed to embed question", zap.Error(err))
		return nil, err
	}

	hits, err := s.store.SearchNearest(ctx, embedding, s.topK)
	if err != nil {
		logger.Error("nearest-neighbor search failed", zap.Error(err))
		return nil, err
	}

	system := fmt.Sprintf(systemPromptTemplate, s.companyName, buildContext(hits))
	answer, err := s.generator.Generate(ctx, system, question)
	if err != nil {
		logger.Error("completion failed", zap.Error(err))
		return nil, err
	}

	sources := make([]model.SourceScore, 0, len(hits))
	for _, hit := range hits {
		sources = append(sources, model.SourceScore{
			Source: hit.Source,
			// Raw 1-d transform; deliberately not clamped, so it goes
			// negative for distances above 1.
			RelevanceScore: 1 - hit.Distance,
		})
	}

	logger.Info("query answered", zap.Int("context_used", len(hits)))
	return &model.QueryResult{
		Question:    question,
		Answer:      answer,
		Sources:     sources,
		ContextUsed: len(hits),
	}, nil
}

// buildContext renders the grounding block, nearest hit first.
func buildContext(hits []model.SearchHit) string {
	sections := make([]string, 0, len(hits))
	for _, hit := range hits {
		sections = append(sections, fmt.Sprintf("[Source: %s]\n%s", hit.Source, hit.Content))
	}
	return strings.Join(sections, "\n\n")
}
