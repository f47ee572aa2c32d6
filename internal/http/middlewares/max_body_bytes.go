package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes caps request bodies so nobody can feed the JSON decoder a
// multi-gigabyte payload. Zero or negative disables the cap.
func MaxBodyBytes(max int64) gin.HandlerFunc {
	if max <= 0 {
		return func(ctx *gin.Context) {
			ctx.Next()
		}
	}

	return func(ctx *gin.Context) {
		if ctx.Request.Body != nil {
			ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, max)
		}

		ctx.Next()
	}
}
