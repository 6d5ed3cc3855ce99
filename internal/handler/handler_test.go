package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/spapperi/ragserver/internal/handler"
	"github.com/spapperi/ragserver/internal/middleware"
	"github.com/spapperi/ragserver/internal/model"
	"github.com/spapperi/ragserver/internal/pkg/apperr"
)

type stubRAG struct {
	result *model.QueryResult
	err    error
}

func (s *stubRAG) Query(ctx context.Context, question string) (*model.QueryResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubCorpus struct {
	health    *model.HealthStatus
	stats     *model.CorpusStats
	statsErr  error
	reloadErr error
	reloads   int
}

func (s *stubCorpus) Health(ctx context.Context) *model.HealthStatus {
	return s.health
}

func (s *stubCorpus) Stats(ctx context.Context) (*model.CorpusStats, error) {
	if s.statsErr != nil {
		return nil, s.statsErr
	}
	return s.stats, nil
}

func (s *stubCorpus) Reload(ctx context.Context) error {
	s.reloads++
	return s.reloadErr
}

func newRouter(t *testing.T, rag handler.QueryService, corpus handler.CorpusService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.CORS(nil))
	handler.RegisterRoutes(engine.Group("/"), handler.RouterDeps{
		Query:  handler.NewQueryHandler(rag),
		Corpus: handler.NewCorpusHandler(corpus, "Spapperi RAG Agent API", "1.0.0"),
	})
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestQueryEndpointReturnsResult(t *testing.T) {
	rag := &stubRAG{result: &model.QueryResult{
		Question: "What products does the company make?",
		Answer:   "Transplanters and seeders.",
		Sources: []model.SourceScore{
			{Source: "company_info", RelevanceScore: 1},
			{Source: "Stendi-film-SF.pdf", RelevanceScore: -0.3},
		},
		ContextUsed: 2,
	}}
	engine := newRouter(t, rag, &stubCorpus{})

	rec := doJSON(t, engine, http.MethodPost, "/query", gin.H{
		"question": "What products does the company make?",
		"language": "en",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Transplanters and seeders.", body["answer"])
	require.EqualValues(t, 2, body["context_used"])
	sources := body["sources"].([]interface{})
	require.Len(t, sources, 2)
	first := sources[0].(map[string]interface{})
	require.Equal(t, "company_info", first["source"])
	require.EqualValues(t, 1, first["relevance_score"])
	second := sources[1].(map[string]interface{})
	require.InDelta(t, -0.3, second["relevance_score"].(float64), 1e-9)
}

func TestQueryEndpointFailure(t *testing.T) {
	rag := &stubRAG{err: fmt.Errorf("%w: upstream timeout", apperr.ErrCompletion)}
	engine := newRouter(t, rag, &stubCorpus{})

	rec := doJSON(t, engine, http.MethodPost, "/query", gin.H{"question": "anything"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body["detail"], "completion service failed")
}

func TestQueryEndpointRejectsBadBody(t *testing.T) {
	engine := newRouter(t, &stubRAG{}, &stubCorpus{})

	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpointUnhealthyStill200(t *testing.T) {
	corpus := &stubCorpus{health: &model.HealthStatus{
		Status:            "unhealthy",
		DatabaseConnected: false,
		DocumentsLoaded:   0,
	}}
	engine := newRouter(t, &stubRAG{}, corpus)

	rec := doJSON(t, engine, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "unhealthy", body["status"])
	require.Equal(t, false, body["database_connected"])
	require.EqualValues(t, 0, body["documents_loaded"])
}

func TestStatsEndpoint(t *testing.T) {
	corpus := &stubCorpus{stats: &model.CorpusStats{
		TotalDocuments: 7,
		UniqueSources:  2,
		Sources:        []string{"company_info", "Piantatalee-TP.pdf"},
	}}
	engine := newRouter(t, &stubRAG{}, corpus)

	rec := doJSON(t, engine, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.EqualValues(t, 7, body["total_documents"])
	require.EqualValues(t, 2, body["unique_sources"])
}

func TestReloadEndpoint(t *testing.T) {
	corpus := &stubCorpus{}
	engine := newRouter(t, &stubRAG{}, corpus)

	rec := doJSON(t, engine, http.MethodPost, "/reload-documents", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, corpus.reloads)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Documents reloaded successfully", body["message"])
}

func TestReloadEndpointFailure(t *testing.T) {
	corpus := &stubCorpus{reloadErr: fmt.Errorf("%w: insert failed", apperr.ErrPersistence)}
	engine := newRouter(t, &stubRAG{}, corpus)

	rec := doJSON(t, engine, http.MethodPost, "/reload-documents", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRootEndpoint(t *testing.T) {
	engine := newRouter(t, &stubRAG{}, &stubCorpus{})

	rec := doJSON(t, engine, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Spapperi RAG Agent API", body["message"])
	require.Equal(t, "1.0.0", body["version"])
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
