package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"

	"github.com/spapperi/ragserver/internal/model"
	"github.com/spapperi/ragserver/internal/pkg/apperr"
)

// DocumentRepo persists text chunks and their embeddings in the
// documents table. All writes commit immediately.
type DocumentRepo struct {
	db  *sqlx.DB
	dim int
}

func NewDocumentRepo(db *sqlx.DB, dim int) *DocumentRepo {
	return &DocumentRepo{db: db, dim: dim}
}

func (r *DocumentRepo) Insert(ctx context.Context, chunk *model.Chunk) error {
	if len(chunk.Embedding) != r.dim {
		return fmt.Errorf("%w: embedding has %d dimensions, want %d",
			apperr.ErrPersistence, len(chunk.Embedding), r.dim)
	}
	meta, err := json.Marshal(chunk.Meta)
	if err != nil {
		return fmt.Errorf("%w: encode metadata: %w", apperr.ErrPersistence, err)
	}
	const query = `
		INSERT INTO documents (content, source, metadata, embedding)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, query,
		chunk.Content,
		chunk.Source,
		meta,
		pgvector.NewVector(chunk.Embedding),
	); err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrPersistence, err)
	}
	return nil
}

func (r *DocumentRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM documents`); err != nil {
		return 0, fmt.Errorf("%w: %w", apperr.ErrPersistence, err)
	}
	return count, nil
}

func (r *DocumentRepo) DistinctSources(ctx context.Context) ([]string, error) {
	var sources []string
	const query = `SELECT DISTINCT source FROM documents ORDER BY source`
	if err := r.db.SelectContext(ctx, &sources, query); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrPersistence, err)
	}
	return sources, nil
}

func (r *DocumentRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrPersistence, err)
	}
	return nil
}

// SearchNearest returns the k chunks closest to vec by cosine distance,
// ascending. Ties are broken by insertion id so results are deterministic.
func (r *DocumentRepo) SearchNearest(ctx context.Context, vec []float32, k int) ([]model.SearchHit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: top-k must be positive, got %d", apperr.ErrInvalid, k)
	}
	const query = `
		SELECT content, source, embedding <=> $1 AS distance
		FROM documents
		ORDER BY embedding <=> $1 ASC, id ASC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, pgvector.NewVector(vec), k)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrPersistence, err)
	}
	defer rows.Close()

	var hits []model.SearchHit
	for rows.Next() {
		var hit model.SearchHit
		if err := rows.Scan(&hit.Content, &hit.Source, &hit.Distance); err != nil {
			return nil, fmt.Errorf("%w: %w", apperr.ErrPersistence, err)
		}
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrPersistence, err)
	}
	return hits, nil
}
