package status

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRoutes регистрирует маршруты статуса в группе.
func SetupRoutes(r *gin.RouterGroup, board *Board) {
	handler := NewHandler(board)
	r.GET("/last", handler.LastCycle)
}

// NewRouter собирает gin-роутер с health-check и группой /status.
func NewRouter(board *Board, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	SetupRoutes(r.Group("/status"), board)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	log.Info("Маршруты статуса зарегистрированы", zap.Strings("routes", []string{"GET /health", "GET /status/last"}))
	return r
}
