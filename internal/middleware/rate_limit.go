package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/sword-demon/pan-share/internal/dto"
	"github.com/sword-demon/pan-share/pkg/response"
)

// RateLimit 基于 Redis 的固定窗口限流（按客户端IP，每分钟 perMinute 次）
// Redis 不可用时直接放行，限流只是防爬的附加手段
func RateLimit(rdb *redis.Client, keyPrefix string, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || perMinute <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s:%d",
			keyPrefix, c.ClientIP(), time.Now().Unix()/60)

		count, err := rdb.Incr(c, key).Result()
		if err != nil {
			logrus.WithError(err).Warn("限流计数失败，放行请求")
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(c, key, time.Minute)
		}

		if count > int64(perMinute) {
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.TooManyRequests),
				response.WithErrorMessage("请求频率过高，请稍后再试"),
			))
			c.Abort()
			return
		}

		c.Next()
	}
}
