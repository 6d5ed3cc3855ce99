package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spapperi/ragserver/internal/model"
	"github.com/spapperi/ragserver/internal/repo"
	"github.com/spapperi/ragserver/test/testutil"
)

const testDim = 1536

func testVector(seed float32) []float32 {
	vec := make([]float32, testDim)
	vec[0] = seed
	vec[1] = 1 - seed
	return vec
}

func TestDocumentRepoInsertCountAndSources(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	docs := repo.NewDocumentRepo(db, testDim)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, docs.Insert(ctx, &model.Chunk{
			Content:   "overview chunk",
			Source:    "company_info",
			Meta:      model.ChunkMeta{ChunkIndex: i},
			Embedding: testVector(float32(i) * 0.1),
		}))
	}
	require.NoError(t, docs.Insert(ctx, &model.Chunk{
		Content:   "brochure chunk",
		Source:    "Piantatalee-TP.pdf",
		Embedding: testVector(0.9),
	}))

	count, err := docs.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 4, count)

	sources, err := docs.DistinctSources(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"Piantatalee-TP.pdf", "company_info"}, sources)
}

func TestDocumentRepoSearchNearestOrdering(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	docs := repo.NewDocumentRepo(db, testDim)
	ctx := context.Background()

	target := testVector(0.5)
	require.NoError(t, docs.Insert(ctx, &model.Chunk{Content: "far", Source: "a", Embedding: testVector(0.0)}))
	require.NoError(t, docs.Insert(ctx, &model.Chunk{Content: "exact", Source: "b", Embedding: target}))
	require.NoError(t, docs.Insert(ctx, &model.Chunk{Content: "near", Source: "c", Embedding: testVector(0.45)}))

	hits, err := docs.SearchNearest(ctx, target, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	// Exact match ranks first at distance zero; the rest follow in
	// non-decreasing distance order.
	require.Equal(t, "exact", hits[0].Content)
	require.InDelta(t, 0, hits[0].Distance, 1e-6)
	for i := 1; i < len(hits); i++ {
		require.GreaterOrEqual(t, hits[i].Distance, hits[i-1].Distance)
	}
}

func TestDocumentRepoSearchNearestFewerRowsThanK(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	docs := repo.NewDocumentRepo(db, testDim)
	ctx := context.Background()

	require.NoError(t, docs.Insert(ctx, &model.Chunk{Content: "only", Source: "a", Embedding: testVector(0.3)}))

	hits, err := docs.SearchNearest(ctx, testVector(0.3), 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
}

func TestDocumentRepoDeleteAll(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	docs := repo.NewDocumentRepo(db, testDim)
	ctx := context.Background()

	require.NoError(t, docs.Insert(ctx, &model.Chunk{Content: "x", Source: "a", Embedding: testVector(0.1)}))
	require.NoError(t, docs.DeleteAll(ctx))

	count, err := docs.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}
