package handlers

import "github.com/gin-gonic/gin"

type HealthHandler struct {
	dbPing    func() error
	cachePing func() error
}

// Pings are optional; nil means that dependency is not configured.
func NewHealthHandler(dbPing, cachePing func() error) *HealthHandler {
	return &HealthHandler{
		dbPing:    dbPing,
		cachePing: cachePing,
	}
}

func (h *HealthHandler) Healthz(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"status": "ok"})
}

func (h *HealthHandler) Readyz(ctx *gin.Context) {
	if h.dbPing != nil {
		if err := h.dbPing(); err != nil {
			ctx.JSON(503, gin.H{"status": "not ready", "db": err.Error()})
			return
		}
	}

	if h.cachePing != nil {
		if err := h.cachePing(); err != nil {
			ctx.JSON(503, gin.H{"status": "not ready", "cache": err.Error()})
			return
		}
	}

	ctx.JSON(200, gin.H{"status": "ready"})
}
