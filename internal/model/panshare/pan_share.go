// Package panshare 网盘分享相关模型
package panshare

import (
	"time"
)

// DiskType 网盘类型
type DiskType string

const (
	DiskTypeBaidu  DiskType = "baidu"  // 百度网盘
	DiskTypeAliyun DiskType = "aliyun" // 阿里云盘
	DiskTypeQuark  DiskType = "quark"  // 夸克网盘
	DiskTypeXunlei DiskType = "xunlei" // 迅雷网盘
	DiskType115    DiskType = "115"    // 115网盘
	DiskTypeOther  DiskType = "other"  // 其他
)

// DiskTypeLabels 网盘类型显示名称
var DiskTypeLabels = map[DiskType]string{
	DiskTypeBaidu:  "百度网盘",
	DiskTypeAliyun: "阿里云盘",
	DiskTypeQuark:  "夸克网盘",
	DiskTypeXunlei: "迅雷网盘",
	DiskType115:    "115网盘",
	DiskTypeOther:  "其他",
}

// ValidDiskType 检查是否为合法的网盘类型
func ValidDiskType(s string) bool {
	_, ok := DiskTypeLabels[DiskType(s)]
	return ok
}

// Status 分享状态
type Status string

const (
	StatusPending   Status = "pending"   // 待审核
	StatusPublished Status = "published" // 已发布
	StatusRejected  Status = "rejected"  // 已拒绝
	StatusArchived  Status = "archived"  // 已归档/删除
)

// StatusLabels 分享状态显示名称
var StatusLabels = map[Status]string{
	StatusPending:   "待审核",
	StatusPublished: "已发布",
	StatusRejected:  "已拒绝",
	StatusArchived:  "已归档",
}

// ValidStatus 检查是否为合法的分享状态
func ValidStatus(s string) bool {
	_, ok := StatusLabels[Status(s)]
	return ok
}

// PanShare 网盘分享表
// 注意：软删除不用 gorm.DeletedAt，DeletedAt 由仓储层显式过滤，
// 这样 includeDeleted 查询和 archived 状态的耦合是显式可见的
type PanShare struct {
	ID          string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string  `gorm:"type:varchar(255);not null" json:"title"`
	Description *string `gorm:"type:varchar(1000)" json:"description"`
	// Markdown 正文
	Content    *string `gorm:"type:text" json:"content"`
	CoverImage *string `gorm:"type:varchar(500)" json:"coverImage"`
	DiskType   string  `gorm:"type:varchar(20);not null;index" json:"diskType"`
	// 敏感字段：仅 secret 接口和管理端可见
	ShareURL  string  `gorm:"type:varchar(500);not null" json:"shareUrl"`
	ShareCode *string `gorm:"type:varchar(50)" json:"shareCode"`
	// 为空表示永不过期；过期只作为 UI 提示，不阻断访问
	ExpiredAt *time.Time `json:"expiredAt"`
	Status    string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	// 提交用户，管理员直接添加时可为空
	UserID    *string    `gorm:"type:varchar(36);index" json:"userId"`
	CreatedAt time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `gorm:"index" json:"deletedAt"`
}

// TableName 指定表名
func (PanShare) TableName() string {
	return "pan_shares"
}
