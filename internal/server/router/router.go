package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aliouned/propfin/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.FinanceHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")
	{
		api.POST("/roi/calculate", handler.CalculateROI)
		api.POST("/properties/:id/snapshots", handler.CreateSnapshot)
		api.GET("/properties/:id/history", handler.History)
		api.POST("/snapshots/generate", handler.GenerateSnapshots)
		api.POST("/payments/rent", handler.RecordRentPayment)
		api.POST("/expenses/maintenance", handler.RecordMaintenanceExpense)
		api.POST("/goals", handler.SetGoal)
		api.POST("/goals/refresh", handler.RefreshGoals)
		api.GET("/overview", handler.Overview)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
