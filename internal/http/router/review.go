package router

import (
	"codeflow.app/relay/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func ReviewRouter(rg *gin.RouterGroup, h *handler.ReviewHandler) {
	rg.POST("/analyze", h.Analyze)
	rg.POST("/fix", h.Fix)
	rg.POST("/generate-tests", h.GenerateTests)
	rg.POST("/verify", h.Verify)
}

func SchemaRouter(rg *gin.RouterGroup, h *handler.SchemaHandler) {
	rg.GET("/:name", h.Get)
}
