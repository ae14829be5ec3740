package panshare

import (
	"time"

	"gorm.io/gorm"

	model "github.com/sword-demon/pan-share/internal/model/panshare"
)

// PanShareRepository 网盘分享仓储层
// 业务校验（必填、trim）由调用方负责，仓储只做存取
type PanShareRepository struct {
	db *gorm.DB
}

func NewPanShareRepository(db *gorm.DB) *PanShareRepository {
	return &PanShareRepository{db: db}
}

// ListFilter 列表过滤条件
// 所有条件取 AND；零值字段不参与过滤
type ListFilter struct {
	IDs            []string
	UserID         string
	DiskType       string
	Status         string
	Search         string
	Page           int
	Limit          int
	IncludeDeleted bool
}

// apply 将过滤条件拼到查询上，与条件顺序无关
func (f ListFilter) apply(q *gorm.DB) *gorm.DB {
	if len(f.IDs) > 0 {
		q = q.Where("id IN ?", f.IDs)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.DiskType != "" {
		q = q.Where("disk_type = ?", f.DiskType)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if !f.IncludeDeleted {
		q = q.Where("deleted_at IS NULL")
	}
	return q
}

// updatableColumns 可更新字段白名单，id 和 created_at 永远不可改
var updatableColumns = map[string]bool{
	"title":       true,
	"description": true,
	"content":     true,
	"cover_image": true,
	"disk_type":   true,
	"share_url":   true,
	"share_code":  true,
	"expired_at":  true,
	"status":      true,
	"user_id":     true,
	"deleted_at":  true,
}

// Create 插入一条分享
func (r *PanShareRepository) Create(share *model.PanShare) error {
	return r.db.Create(share).Error
}

// Update 按白名单更新字段并返回更新后的行
// id 不存在（或字段全被过滤）返回 gorm.ErrRecordNotFound
func (r *PanShareRepository) Update(id string, updates map[string]any) (*model.PanShare, error) {
	filtered := make(map[string]any, len(updates))
	for col, val := range updates {
		if updatableColumns[col] {
			filtered[col] = val
		}
	}
	if len(filtered) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	result := r.db.Model(&model.PanShare{}).Where("id = ?", id).Updates(filtered)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.FindByIDIncludeDeleted(id)
}

// SoftDelete 软删除：归档状态 + 删除时间戳，一条 update 完成
func (r *PanShareRepository) SoftDelete(id string) (*model.PanShare, error) {
	return r.Update(id, map[string]any{
		"status":     string(model.StatusArchived),
		"deleted_at": time.Now(),
	})
}

// FindFilter 单条查询条件
type FindFilter struct {
	ID     string
	Status string
}

// Find 查询单条分享，排除软删除
func (r *PanShareRepository) Find(filter FindFilter) (*model.PanShare, error) {
	q := r.db.Model(&model.PanShare{}).Where("deleted_at IS NULL")
	if filter.ID != "" {
		q = q.Where("id = ?", filter.ID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var share model.PanShare
	err := q.First(&share).Error
	if err != nil {
		return nil, err
	}
	return &share, nil
}

// FindByID 按 ID 查询，排除软删除
func (r *PanShareRepository) FindByID(id string) (*model.PanShare, error) {
	return r.Find(FindFilter{ID: id})
}

// FindByIDIncludeDeleted 按 ID 查询，包含软删除的行
func (r *PanShareRepository) FindByIDIncludeDeleted(id string) (*model.PanShare, error) {
	var share model.PanShare
	err := r.db.Where("id = ?", id).First(&share).Error
	if err != nil {
		return nil, err
	}
	return &share, nil
}

// List 按条件分页查询，创建时间倒序
func (r *PanShareRepository) List(filter ListFilter) ([]model.PanShare, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	var shares []model.PanShare
	err := filter.apply(r.db.Model(&model.PanShare{})).
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&shares).Error
	return shares, err
}

// Count 按相同条件统计总数（忽略分页）
func (r *PanShareRepository) Count(filter ListFilter) (int64, error) {
	var total int64
	err := filter.apply(r.db.Model(&model.PanShare{})).Count(&total).Error
	return total, err
}

// Approve 审核通过
func (r *PanShareRepository) Approve(id string) (*model.PanShare, error) {
	return r.Update(id, map[string]any{"status": string(model.StatusPublished)})
}

// Reject 审核拒绝
func (r *PanShareRepository) Reject(id string) (*model.PanShare, error) {
	return r.Update(id, map[string]any{"status": string(model.StatusRejected)})
}

// ===== 场景化的便捷查询 =====

// ListPublished 公开目录：只看已发布
func (r *PanShareRepository) ListPublished(diskType, search string, page, limit int) ([]model.PanShare, error) {
	return r.List(ListFilter{
		DiskType: diskType,
		Search:   search,
		Status:   string(model.StatusPublished),
		Page:     page,
		Limit:    limit,
	})
}

// CountPublished 公开目录总数
func (r *PanShareRepository) CountPublished(diskType, search string) (int64, error) {
	return r.Count(ListFilter{
		DiskType: diskType,
		Search:   search,
		Status:   string(model.StatusPublished),
	})
}

// ListByUser 用户自己的分享，任意状态
func (r *PanShareRepository) ListByUser(userID, status string, page, limit int) ([]model.PanShare, error) {
	return r.List(ListFilter{
		UserID: userID,
		Status: status,
		Page:   page,
		Limit:  limit,
	})
}

// CountByUser 用户自己的分享总数
func (r *PanShareRepository) CountByUser(userID, status string) (int64, error) {
	return r.Count(ListFilter{
		UserID: userID,
		Status: status,
	})
}
