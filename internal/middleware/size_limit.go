package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SizeLimit caps the request body at maxBodyBytes. Reading past the cap
// yields http.MaxBytesError, surfaced as 413 request entity too large.
// Applied to the avatar upload route, which carries base64 image data.
func SizeLimit(maxBodyBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		c.Next()
	}
}
