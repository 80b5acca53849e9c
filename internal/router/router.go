package router

import (
	"github.com/gin-gonic/gin"

	"spherical/internal/handler"
	"spherical/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	allowedOrigins []string,
	documentH *handler.DocumentHandler,
	ocrH *handler.OcrHandler,
	analysisH *handler.AnalysisHandler,
	agentH *handler.AgentHandler,
	dashboardH *handler.DashboardHandler,
	stateH *handler.StateHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Document routes
	documents := v1.Group("/documents")
	documents.POST("/upload", documentH.Upload)
	documents.GET("", documentH.List)
	documents.POST("/combine", documentH.Combine)
	documents.GET("/:id", documentH.Get)
	documents.DELETE("/:id", documentH.Delete)
	documents.POST("/:id/ocr", ocrH.Run)
	documents.GET("/:id/ocr", ocrH.Results)

	// Analysis routes
	analysis := v1.Group("/analysis")
	analysis.GET("", analysisH.Get)
	analysis.GET("/frequencies.csv", analysisH.FrequenciesCSV)

	// Agent routes
	agents := v1.Group("/agents")
	agents.GET("", agentH.List)
	agents.GET("/results", agentH.History)
	agents.GET("/results/:index/html", agentH.ResultHTML)
	agents.POST("/:id/run", agentH.Run)

	// Dashboard routes
	dashboard := v1.Group("/dashboard")
	dashboard.GET("", dashboardH.Get)
	dashboard.GET("/export", dashboardH.Export)

	// Session state
	v1.GET("/state", stateH.Get)
	v1.PUT("/view", stateH.SetView)

	return r
}
