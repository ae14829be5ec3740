package upload

import (
	"github.com/gin-gonic/gin"

	"github.com/sword-demon/pan-share/internal/middleware"
	"github.com/sword-demon/pan-share/internal/storage"
)

func RegisterRoutes(r *gin.RouterGroup, uploader storage.Uploader) {
	h := NewHandler(uploader)

	g := r.Group("/uploads")
	g.Use(middleware.JWTAuth())
	{
		g.POST("/cover", h.Cover)
	}
}
