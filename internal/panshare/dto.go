package panshare

import (
	"time"

	model "github.com/sword-demon/pan-share/internal/model/panshare"
)

// SubmitRequest 用户投稿请求
type SubmitRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"max=1000"`
	CoverImage  string `json:"coverImage" binding:"omitempty,url"`
	DiskType    string `json:"diskType" binding:"required"`
	ShareURL    string `json:"shareUrl" binding:"required,max=500"`
	ShareCode   string `json:"shareCode" binding:"max=50"`
	// 格式 YYYY-MM-DD 或 RFC3339，留空表示永不过期
	ExpiredAt string `json:"expiredAt"`
}

// AdminCreateRequest 管理端创建请求（全字段，默认直接发布）
type AdminCreateRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"max=1000"`
	Content     string `json:"content"`
	CoverImage  string `json:"coverImage" binding:"omitempty,url"`
	DiskType    string `json:"diskType" binding:"required"`
	ShareURL    string `json:"shareUrl" binding:"required,max=500"`
	ShareCode   string `json:"shareCode" binding:"max=50"`
	ExpiredAt   string `json:"expiredAt"`
	Status      string `json:"status"`
}

// AdminUpdateRequest 管理端编辑请求
// 指针字段表示"未提交则不修改"；id 和 createdAt 永远不可改
type AdminUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	CoverImage  *string `json:"coverImage"`
	DiskType    *string `json:"diskType"`
	ShareURL    *string `json:"shareUrl"`
	ShareCode   *string `json:"shareCode"`
	ExpiredAt   *string `json:"expiredAt"`
	Status      *string `json:"status"`
}

// PublicShare 对外投影：绝不携带 shareUrl / shareCode
type PublicShare struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description"`
	Content      *string    `json:"content"`
	CoverImage   *string    `json:"coverImage"`
	DiskType     string     `json:"diskType"`
	DiskTypeName string     `json:"diskTypeName"`
	ExpiredAt    *time.Time `json:"expiredAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	// 客户端据此显示"有提取码"，实际内容走 secret 接口
	HasShareCode bool `json:"hasShareCode"`
}

// OwnerShare 用户在"我的分享"里看到的投影
// 同样不带敏感字段，额外带状态供提交者查看审核进度
type OwnerShare struct {
	PublicShare
	Status     string `json:"status"`
	StatusName string `json:"statusName"`
}

// ListResponse 公开列表响应
type ListResponse struct {
	Shares     []PublicShare `json:"shares"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int64         `json:"totalPages"`
}

// MineListResponse 我的分享列表响应
type MineListResponse struct {
	Shares     []OwnerShare `json:"shares"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int64        `json:"totalPages"`
}

// AdminListResponse 管理端列表响应（完整行）
type AdminListResponse struct {
	Shares     []model.PanShare `json:"shares"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int64            `json:"totalPages"`
}

// SecretResponse 敏感字段响应
type SecretResponse struct {
	ShareURL  string  `json:"shareUrl"`
	ShareCode *string `json:"shareCode"`
}

// toPublicShare 剥掉敏感字段
func toPublicShare(s *model.PanShare) PublicShare {
	return PublicShare{
		ID:           s.ID,
		Title:        s.Title,
		Description:  s.Description,
		Content:      s.Content,
		CoverImage:   s.CoverImage,
		DiskType:     s.DiskType,
		DiskTypeName: model.DiskTypeLabels[model.DiskType(s.DiskType)],
		ExpiredAt:    s.ExpiredAt,
		CreatedAt:    s.CreatedAt,
		HasShareCode: s.ShareCode != nil && *s.ShareCode != "",
	}
}

func toOwnerShare(s *model.PanShare) OwnerShare {
	return OwnerShare{
		PublicShare: toPublicShare(s),
		Status:      s.Status,
		StatusName:  model.StatusLabels[model.Status(s.Status)],
	}
}
