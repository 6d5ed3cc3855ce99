package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/spapperi/ragserver/internal/pkg/apperr"
	"github.com/spapperi/ragserver/internal/pkg/response"
)

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID, _ := c.Get("request_id")
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.Any("request_id", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	if apperr.IsInvalid(err) {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	response.Error(c, http.StatusInternalServerError, err.Error())
}
