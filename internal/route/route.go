package route

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/sword-demon/pan-share/config"
	"github.com/sword-demon/pan-share/internal/admin"
	"github.com/sword-demon/pan-share/internal/database"
	"github.com/sword-demon/pan-share/internal/middleware"
	"github.com/sword-demon/pan-share/internal/panshare"
	"github.com/sword-demon/pan-share/internal/storage"
	"github.com/sword-demon/pan-share/internal/upload"
)

func initRoute(r *gin.Engine) {
	// Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 存活探针
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	db := database.GetDB()
	uploader := storage.NewAliyunOSS(config.Conf.Storage)

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		panshare.RegisterRoutes(apiV1, db, database.RedisDB)
		admin.RegisterRoutes(apiV1, db)
		upload.RegisterRoutes(apiV1, uploader)
	}
}

func SetupRouter() *gin.Engine {
	if config.Conf.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.LoggerMiddleware(), gin.Recovery())

	origin := os.Getenv("FRONTEND_URL")
	if origin == "" {
		origin = "http://localhost:3000" // 默认值
	}

	// 设置跨域请求
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	initRoute(r)

	return r
}
