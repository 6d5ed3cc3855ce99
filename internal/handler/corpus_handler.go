package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/spapperi/ragserver/internal/model"
	"github.com/spapperi/ragserver/internal/pkg/response"
)

// CorpusService exposes health, stats, and reload over the corpus.
type CorpusService interface {
	Health(ctx context.Context) *model.HealthStatus
	Stats(ctx context.Context) (*model.CorpusStats, error)
	Reload(ctx context.Context) error
}

type CorpusHandler struct {
	corpus  CorpusService
	service string
	version string
}

func NewCorpusHandler(corpus CorpusService, service string, version string) *CorpusHandler {
	return &CorpusHandler{corpus: corpus, service: service, version: version}
}

func (h *CorpusHandler) Root(c *gin.Context) {
	response.Success(c, gin.H{
		"message": h.service,
		"version": h.version,
		"docs":    "/docs",
	})
}

// Health always answers 200; a severed database shows up in the body,
// not the status code.
func (h *CorpusHandler) Health(c *gin.Context) {
	response.Success(c, h.corpus.Health(c.Request.Context()))
}

func (h *CorpusHandler) Stats(c *gin.Context) {
	stats, err := h.corpus.Stats(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, stats)
}

func (h *CorpusHandler) Reload(c *gin.Context) {
	if err := h.corpus.Reload(c.Request.Context()); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Documents reloaded successfully"})
}
