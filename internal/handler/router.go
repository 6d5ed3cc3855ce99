package handler

import (
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	Query  *QueryHandler
	Corpus *CorpusHandler
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/", deps.Corpus.Root)
	api.GET("/health", deps.Corpus.Health)
	api.GET("/stats", deps.Corpus.Stats)
	api.POST("/query", deps.Query.Query)
	api.POST("/reload-documents", deps.Corpus.Reload)
}
