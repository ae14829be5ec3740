// Package permission 管理端权限检查
// 固定的角色-能力表，没有策略引擎：管理员可读可写，审核员只读
package permission

import (
	"github.com/gin-gonic/gin"

	"github.com/sword-demon/pan-share/internal/dto"
	"github.com/sword-demon/pan-share/pkg/response"
)

// Capability 管理端能力
type Capability string

const (
	PanSharesRead  Capability = "pan_shares:read"
	PanSharesWrite Capability = "pan_shares:write"
)

// roleCapabilities 角色到能力的映射
var roleCapabilities = map[string][]Capability{
	"admin":    {PanSharesRead, PanSharesWrite},
	"reviewer": {PanSharesRead},
}

// HasCapability 检查角色是否具备某项能力
// 未知/空角色一律拒绝
func HasCapability(role string, cap Capability) bool {
	for _, c := range roleCapabilities[role] {
		if c == cap {
			return true
		}
	}
	return false
}

// Require 能力检查中间件，需在 JWTAuth 之后使用
func Require(cap Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("user_role")
		roleStr, _ := role.(string)

		if !HasCapability(roleStr, cap) {
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.Forbidden),
				response.WithErrorMessage("没有操作权限"),
			))
			c.Abort()
			return
		}

		c.Next()
	}
}
