package database

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/sword-demon/pan-share/config"
	"github.com/sword-demon/pan-share/internal/model"
)

var (
	PostgresDB *gorm.DB
	RedisDB    *redis.Client
)

func InitDatabase() {
	initPostgres()
	initRedis()
}

func initPostgres() {
	databaseConf := config.Conf.Database

	// 设置默认日志级别
	logLevel := databaseConf.LogLevel
	if logLevel == "" {
		logLevel = "info"
	}

	var err error
	PostgresDB, err = InitPostgres(
		&PostgresConfig{
			Username:        databaseConf.Username,
			Password:        databaseConf.Password,
			Host:            databaseConf.Host,
			Port:            databaseConf.Port,
			Database:        databaseConf.Database,
			SSLMode:         databaseConf.SSLMode,
			LogLevel:        logLevel,
			MaxIdleConns:    databaseConf.MaxIdleConns,
			MaxOpenConns:    databaseConf.MaxOpenConns,
			ConnMaxLifetime: time.Duration(databaseConf.MaxLifetime) * time.Second,
		},
	)

	if err != nil {
		panic(err)
	}

	// 初始化数据库表
	err = model.InitTable(PostgresDB)
	if err != nil {
		panic(err)
	}
}

func initRedis() {
	redisConf := config.Conf.Redis

	var err error
	RedisDB, err = InitRedis(&RedisConfig{
		Host:     redisConf.Host,
		Port:     redisConf.Port,
		Password: redisConf.Password,
		DB:       redisConf.DB,
		PoolSize: redisConf.PoolSize,
	})

	// Redis 只服务于限流，连不上不阻止进程启动
	if err != nil {
		logrus.WithError(err).Warn("Redis 初始化失败，限流功能不可用")
		RedisDB = nil
	}
}

// GetDB 获取数据库实例
func GetDB() *gorm.DB {
	return PostgresDB
}
