package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisConfig Redis 配置
type RedisConfig struct {
	Host     string // Redis 地址
	Port     int    // Redis 端口
	Password string // Redis 密码
	DB       int    // Redis 数据库编号
	PoolSize int    // 连接池大小
}

// InitRedis 初始化 Redis 连接
func InitRedis(config *RedisConfig) (*redis.Client, error) {
	if config == nil {
		return nil, fmt.Errorf("配置不能为空")
	}

	if config.Host == "" {
		config.Host = "localhost"
	}
	if config.Port == 0 {
		config.Port = 6379
	}
	if config.PoolSize == 0 {
		config.PoolSize = 10
	}

	options := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		DB:       config.DB,
		PoolSize: config.PoolSize,
	}

	// 只有当密码不为空时才设置密码
	if config.Password != "" {
		options.Password = config.Password
	}

	client := redis.NewClient(options)

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("连接 Redis 失败: %v", err)
	}

	logrus.Info("Redis连接成功")
	return client, nil
}
