package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/spapperi/ragserver/internal/service"
)

// CorpusStatsJob periodically logs how many chunks and sources the store
// holds. Read-only; it never mutates the corpus.
type CorpusStatsJob struct {
	corpus *service.CorpusService
}

func NewCorpusStatsJob(corpus *service.CorpusService) *CorpusStatsJob {
	return &CorpusStatsJob{corpus: corpus}
}

func (j *CorpusStatsJob) Name() string {
	return "corpus_stats"
}

func (j *CorpusStatsJob) Run(ctx context.Context) error {
	stats, err := j.corpus.Stats(ctx)
	if err != nil {
		return err
	}
	logutil.GetLogger(ctx).Info("corpus stats",
		zap.Int64("total_documents", stats.TotalDocuments),
		zap.Int("unique_sources", stats.UniqueSources),
		zap.Strings("sources", stats.Sources),
	)
	return nil
}
