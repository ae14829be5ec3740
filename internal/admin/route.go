package admin

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sword-demon/pan-share/internal/middleware"
	"github.com/sword-demon/pan-share/internal/permission"
)

// RegisterRoutes 设置管理端路由
// 全部需要认证；读写分别检查能力
func RegisterRoutes(r *gin.RouterGroup, db *gorm.DB) {
	h := NewAdminHandler(db)

	g := r.Group("/admin/pan-shares")
	g.Use(middleware.JWTAuth())
	{
		// 只读
		read := g.Group("")
		read.Use(permission.Require(permission.PanSharesRead))
		{
			read.GET("", h.List)
			read.GET("/:id", h.Get)
		}

		// 写操作
		write := g.Group("")
		write.Use(permission.Require(permission.PanSharesWrite))
		{
			write.POST("", h.Create)
			write.PUT("/:id", h.Update)
			write.POST("/:id/approve", h.Approve)
			write.POST("/:id/reject", h.Reject)
			write.DELETE("/:id", h.Delete)
		}
	}
}
