package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/tmc/langchaingo/textsplitter"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/spapperi/ragserver/internal/config"
	"github.com/spapperi/ragserver/internal/model"
	"github.com/spapperi/ragserver/internal/pkg/apperr"
)

// CompanyInfoSource labels chunks produced from the static overview.
const CompanyInfoSource = "company_info"

// Store is the subset of the document repository the loader writes through.
type Store interface {
	Count(ctx context.Context) (int64, error)
	Insert(ctx context.Context, chunk *model.Chunk) error
}

// Embedder mirrors ai.IEmbedder for the single call the loader needs.
type Embedder interface {
	Embed(ctx context.Context, text string, taskType string) ([]float32, error)
}

// Loader reads source material, splits it into overlapping chunks, embeds
// each chunk, and writes the rows. Ingestion is strictly sequential: one
// embedding call and one insert per chunk, in source order.
type Loader struct {
	embedder Embedder
	splitter textsplitter.RecursiveCharacter
	docsDir  string
	files    []string
}

func NewLoader(embedder Embedder, ragCfg config.RAGConfig, companyCfg config.CompanyConfig) *Loader {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(ragCfg.ChunkSize),
		textsplitter.WithChunkOverlap(ragCfg.ChunkOverlap),
	)
	return &Loader{
		embedder: embedder,
		splitter: splitter,
		docsDir:  companyCfg.DocsDir,
		files:    companyCfg.PDFFiles,
	}
}

// LoadPDF extracts page-ordered plain text from one PDF, pages joined by
// a line break.
func (l *Loader) LoadPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", apperr.ErrDocumentRead, path, err)
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: %s page %d: %w", apperr.ErrDocumentRead, path, i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// Chunk splits text into overlapping segments in reading order. Empty
// segments are never emitted.
func (l *Loader) Chunk(text string) ([]string, error) {
	parts, err := l.splitter.SplitText(text)
	if err != nil {
		return nil, err
	}
	chunks := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		chunks = append(chunks, part)
	}
	return chunks, nil
}

// LoadAll ingests the company overview and every configured PDF. It is a
// no-op when the store already holds any rows; this is a coarse corpus
// guard, not per-document dedup, so a crash mid-ingest leaves a partial
// corpus that a plain restart will not repair.
func (l *Loader) LoadAll(ctx context.Context, store Store) error {
	logger := logutil.GetLogger(ctx)

	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Info("documents already loaded, skipping ingestion", zap.Int64("count", count))
		return nil
	}

	chunks, err := l.Chunk(l.CompanyOverview())
	if err != nil {
		return fmt.Errorf("chunk company overview: %w", err)
	}
	if err := l.storeChunks(ctx, store, chunks, CompanyInfoSource); err != nil {
		return err
	}

	for _, name := range l.files {
		path := filepath.Join(l.docsDir, name)
		if _, err := os.Stat(path); err != nil {
			logger.Warn("source file not found, skipping", zap.String("path", path))
			continue
		}
		text, err := l.LoadPDF(path)
		if err != nil {
			logger.Warn("source file unreadable, skipping", zap.String("path", path), zap.Error(err))
			continue
		}
		chunks, err := l.Chunk(text)
		if err != nil {
			return fmt.Errorf("chunk %s: %w", name, err)
		}
		if err := l.storeChunks(ctx, store, chunks, name); err != nil {
			return err
		}
	}

	logger.Info("all documents loaded")
	return nil
}

func (l *Loader) storeChunks(ctx context.Context, store Store, chunks []string, source string) error {
	logger := logutil.GetLogger(ctx).With(zap.String("source", source))
	logger.Info("storing chunks", zap.Int("count", len(chunks)))

	for i, chunk := range chunks {
		embedding, err := l.embedder.Embed(ctx, chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			return fmt.Errorf("embed chunk %d of %s: %w", i, source, err)
		}
		if err := store.Insert(ctx, &model.Chunk{
			Content:   chunk,
			Source:    source,
			Meta:      model.ChunkMeta{ChunkIndex: i},
			Embedding: embedding,
		}); err != nil {
			return fmt.Errorf("store chunk %d of %s: %w", i, source, err)
		}
	}
	return nil
}
