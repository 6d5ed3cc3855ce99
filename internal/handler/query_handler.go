package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/spapperi/ragserver/internal/model"
	"github.com/spapperi/ragserver/internal/pkg/apperr"
	"github.com/spapperi/ragserver/internal/pkg/response"
)

// QueryService answers one question through the RAG pipeline.
type QueryService interface {
	Query(ctx context.Context, question string) (*model.QueryResult, error)
}

type QueryHandler struct {
	rag QueryService
}

func NewQueryHandler(rag QueryService) *QueryHandler {
	return &QueryHandler{rag: rag}
}

type queryRequest struct {
	Question string `json:"question"`
	// Accepted for API compatibility; the answer language follows the
	// question, not this field.
	Language string `json:"language"`
}

func (h *QueryHandler) Query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, apperr.ErrInvalid)
		return
	}
	result, err := h.rag.Query(c.Request.Context(), req.Question)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}
