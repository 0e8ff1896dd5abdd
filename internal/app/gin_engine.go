package app

import (
	"log/slog"

	"PayPalReconciler/pkg/logger"
	"PayPalReconciler/pkg/metrics"

	"github.com/gin-gonic/gin"
)

func NewGinEngine(l *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(
		metrics.GinMiddleware(),
		logger.CorrelationMiddleware(),
		logger.RequestLogger(l),
		gin.Recovery(),
	)
	return engine
}
