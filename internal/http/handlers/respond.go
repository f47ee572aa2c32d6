package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every error body is {"message": "..."}. Internal details never leak to
// the client, they only go to the server log.

func RespondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{
		"message": message,
	})
}

func RespondBadRequest(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusBadRequest, message)
}

func RespondUnauthorized(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusUnauthorized, message)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, message)
}

func RespondInternal(ctx *gin.Context) {
	RespondError(ctx, http.StatusInternalServerError, "Server error")
}
