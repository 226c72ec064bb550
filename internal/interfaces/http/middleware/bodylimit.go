package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/motodesk/backend/internal/interfaces/http/dto"
)

// BodyLimit caps the request body at maxBytes. Declared sizes are rejected
// up front from Content-Length; chunked uploads are cut off by a
// MaxBytesReader once the handler reads past the cap.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse("REQUEST_TOO_LARGE", "Request body exceeds maximum allowed size"))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
