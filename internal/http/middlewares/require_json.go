package middlewares

import (
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireJSON rejects bodied requests that are not application/json before
// any handler touches the decoder.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			if !isJSONContentType(c.GetHeader("Content-Type")) {
				c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{
					"message": "Content-Type must be application/json",
				})
				return
			}
		}

		c.Next()
	}
}

func isJSONContentType(raw string) bool {
	if raw == "" {
		return false
	}

	// tolerate parameters like "application/json; charset=utf-8"
	mediaType, _, err := mime.ParseMediaType(raw)

	if err != nil {
		return false
	}

	return strings.EqualFold(mediaType, "application/json")
}
