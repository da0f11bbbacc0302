package router

import (
	"net/http"
	"os"
	"path/filepath"

	"codeflow.app/relay/internal/http/handler"
	"codeflow.app/relay/internal/service"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	WebDir               string
	ExposeProviderErrors bool
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	setupFrontend(router, cfg.WebDir)

	api := router.Group("/api")
	{
		reviewHandler := handler.NewReviewHandler(services.Review(), cfg.ExposeProviderErrors)
		ReviewRouter(api, reviewHandler)

		schemaHandler := handler.NewSchemaHandler()
		SchemaRouter(api.Group("/schemas"), schemaHandler)
	}
}

// setupFrontend serves the static page at / when webDir holds an index.html.
func setupFrontend(router *gin.Engine, webDir string) {
	if webDir == "" {
		return
	}
	index := filepath.Join(webDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		return
	}

	router.StaticFile("/", index)
	router.Static("/static", webDir)
}
