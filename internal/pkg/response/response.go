package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error renders the FastAPI-style failure body the frontend expects.
func Error(c *gin.Context, status int, detail string) {
	c.JSON(status, gin.H{"detail": detail})
}
