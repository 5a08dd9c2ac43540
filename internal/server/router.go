package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mfurukawa/tango/internal/config"
)

// NewRouter builds the gin engine with all routes registered.
func NewRouter(handler *Handler, corsCfg config.CORSConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsCfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Owner-ID"},
		AllowCredentials: true,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(OwnerID())
	api.POST("/sessions", handler.StartSession)
	api.GET("/sessions/:sessionID", handler.GetSession)
	api.POST("/sessions/:sessionID/cards/:cardID/answer", handler.RecordAnswer)
	api.GET("/reviews/due", handler.DueReviews)
	api.GET("/statistics", handler.Statistics)

	return router
}
