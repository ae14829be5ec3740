package panshare

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sword-demon/pan-share/config"
	"github.com/sword-demon/pan-share/internal/middleware"
)

// RegisterRoutes 设置分享相关路由
func RegisterRoutes(r *gin.RouterGroup, db *gorm.DB, rdb *redis.Client) {
	h := NewPanShareHandler(db)

	shares := r.Group("/pan-shares")
	{
		// 公开接口
		shares.GET("", h.ListPublished)

		// 需要认证的接口
		shares.POST("", middleware.JWTAuth(), h.Submit)
		shares.GET("/mine", middleware.JWTAuth(), h.ListMine)

		// secret 接口：认证 + 限流
		shares.POST("/:id/secret",
			middleware.JWTAuth(),
			middleware.RateLimit(rdb, "secret", config.Conf.RateLimit.SecretPerMinute),
			h.Secret)

		// 注意 /:id 要放在 /mine 之后注册，避免吞掉固定路径
		shares.GET("/:id", h.GetPublished)
	}
}
