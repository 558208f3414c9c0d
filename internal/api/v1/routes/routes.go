package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/rroosshhaann/whisper-diarization/internal/api/v1/handlers"
)

// RegisterRoutes registers the job routes
func RegisterRoutes(router gin.IRoutes, jobHandler *handlers.JobHandler) {
	router.GET("/health", jobHandler.Health)

	router.POST("/jobs", jobHandler.Submit)
	router.GET("/jobs/:id", jobHandler.Status)
	router.GET("/jobs/:id/result", jobHandler.Result)
	router.DELETE("/jobs/:id", jobHandler.Delete)
}
