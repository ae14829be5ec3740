package main

import (
	"fmt"

	"github.com/sword-demon/pan-share/config"
	"github.com/sword-demon/pan-share/internal/database"
	"github.com/sword-demon/pan-share/internal/route"
	"github.com/sword-demon/pan-share/pkg/logger"
)

func main() {
	// 1. 加载配置
	config.MustLoad("config.yaml")

	// 2. 初始化日志
	logger.Init(config.Conf.Log)

	// 3. 初始化数据库
	database.InitDatabase()

	// 4. 设置路由
	r := route.SetupRouter()

	// 5. 启动服务
	addr := fmt.Sprintf("%s:%d", config.Conf.Server.Host, config.Conf.Server.Port)
	r.Run(addr)
}
