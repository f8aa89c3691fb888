package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fazalmajid/feedparser/app/cfg"
)

// NewServer creates the HTTP engine with all routes configured.
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	setupRoutes(r, handler)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler) {
	r.POST("/parse", handler.ParseBody)
	r.GET("/parse", handler.ParseURL)

	r.GET("/health", handler.GetHealth)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "feedparser",
			"version":     cfg.GetVersion(),
			"description": "Tolerant RSS/Atom/JSON Feed parsing service",
			"endpoints": map[string]string{
				"parse_body": "POST /parse (raw feed document, optional ?format=rss20|rss10|rss09x|atom10|atom03|json10|json11)",
				"parse_url":  "GET /parse?url=<feed url>",
				"health":     "GET /health",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
