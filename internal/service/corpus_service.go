package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/spapperi/ragserver/internal/ingest"
	"github.com/spapperi/ragserver/internal/model"
)

// Store is the full document repository surface the corpus operations use.
type Store interface {
	ingest.Store
	DistinctSources(ctx context.Context) ([]string, error)
	DeleteAll(ctx context.Context) error
}

// CorpusService owns health, stats, and reload over the ingested corpus.
type CorpusService struct {
	store  Store
	loader *ingest.Loader
}

func NewCorpusService(store Store, loader *ingest.Loader) *CorpusService {
	return &CorpusService{store: store, loader: loader}
}

// Health degrades to an unhealthy report instead of failing when the
// store is unreachable.
func (s *CorpusService) Health(ctx context.Context) *model.HealthStatus {
	count, err := s.store.Count(ctx)
	if err != nil {
		logutil.GetLogger(ctx).Error("health check failed", zap.Error(err))
		return &model.HealthStatus{
			Status:            "unhealthy",
			DatabaseConnected: false,
			DocumentsLoaded:   0,
		}
	}
	return &model.HealthStatus{
		Status:            "healthy",
		DatabaseConnected: true,
		DocumentsLoaded:   count,
	}
}

func (s *CorpusService) Stats(ctx context.Context) (*model.CorpusStats, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	sources, err := s.store.DistinctSources(ctx)
	if err != nil {
		return nil, err
	}
	return &model.CorpusStats{
		TotalDocuments: count,
		UniqueSources:  len(sources),
		Sources:        sources,
	}, nil
}

// Ingest runs the idempotent corpus load.
func (s *CorpusService) Ingest(ctx context.Context) error {
	return s.loader.LoadAll(ctx, s.store)
}

// Reload deletes every row and reingests. The delete and the reinsert are
// not one transaction; a query racing a reload may observe a partial corpus.
func (s *CorpusService) Reload(ctx context.Context) error {
	logger := logutil.GetLogger(ctx)
	if err := s.store.DeleteAll(ctx); err != nil {
		logger.Error("failed to delete documents", zap.Error(err))
		return err
	}
	if err := s.loader.LoadAll(ctx, s.store); err != nil {
		logger.Error("failed to reload documents", zap.Error(err))
		return err
	}
	logger.Info("documents reloaded")
	return nil
}
