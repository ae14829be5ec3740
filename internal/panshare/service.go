package panshare

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "github.com/sword-demon/pan-share/internal/model/panshare"
	"github.com/sword-demon/pan-share/pkg/response"
)

// ErrNotFound 分享不存在（或对当前调用方不可见）
// 未发布和不存在刻意用同一个错误，避免被探测出未公开的分享
var ErrNotFound = errors.New("分享不存在")

// secretRevealDelay secret 接口的人为延迟，粗粒度防爬，不替代限流
const secretRevealDelay = 100 * time.Millisecond

type PanShareService struct {
	repo *PanShareRepository
}

func NewPanShareService(repo *PanShareRepository) *PanShareService {
	return &PanShareService{repo: repo}
}

func validationError(msg string) error {
	return response.NewBusinessError(
		response.WithErrorCode(response.InvalidParameter),
		response.WithErrorMessage(msg),
	)
}

// parseExpiredAt 解析过期时间，支持 YYYY-MM-DD 和 RFC3339
func parseExpiredAt(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, validationError("过期时间格式错误，应为 YYYY-MM-DD")
}

// optional 空串转 nil，供可选字段入库
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Submit 用户投稿：校验后入库，状态强制为待审核
func (s *PanShareService) Submit(req SubmitRequest, userID string) (*model.PanShare, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, validationError("标题不能为空")
	}
	shareURL := strings.TrimSpace(req.ShareURL)
	if shareURL == "" {
		return nil, validationError("分享链接不能为空")
	}
	if !model.ValidDiskType(req.DiskType) {
		return nil, validationError("无效的网盘类型")
	}
	expiredAt, err := parseExpiredAt(req.ExpiredAt)
	if err != nil {
		return nil, err
	}

	share := &model.PanShare{
		ID:          uuid.NewString(),
		Title:       title,
		Description: optional(req.Description),
		CoverImage:  optional(req.CoverImage),
		DiskType:    req.DiskType,
		ShareURL:    shareURL,
		ShareCode:   optional(req.ShareCode),
		ExpiredAt:   expiredAt,
		// 用户投稿一律进入审核队列
		Status: string(model.StatusPending),
		UserID: &userID,
	}

	if err := s.repo.Create(share); err != nil {
		return nil, err
	}
	return share, nil
}

// ListPublicParams 公开列表查询参数
type ListPublicParams struct {
	Page     int
	Limit    int
	Search   string
	DiskType string
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func totalPages(total int64, limit int) int64 {
	return (total + int64(limit) - 1) / int64(limit)
}

// ListPublic 公开目录：已发布、分页、可搜索可按网盘类型过滤
func (s *PanShareService) ListPublic(params ListPublicParams) (*ListResponse, error) {
	page, limit := clampPage(params.Page, params.Limit)

	if params.DiskType != "" && !model.ValidDiskType(params.DiskType) {
		return nil, validationError("无效的网盘类型")
	}

	shares, err := s.repo.ListPublished(params.DiskType, params.Search, page, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountPublished(params.DiskType, params.Search)
	if err != nil {
		return nil, err
	}

	resp := &ListResponse{
		Shares:     make([]PublicShare, 0, len(shares)),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}
	for i := range shares {
		resp.Shares = append(resp.Shares, toPublicShare(&shares[i]))
	}
	return resp, nil
}

// GetPublished 公开详情：只有已发布的分享可见
func (s *PanShareService) GetPublished(id string) (*PublicShare, error) {
	share, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if share.Status != string(model.StatusPublished) {
		return nil, ErrNotFound
	}

	public := toPublicShare(share)
	return &public, nil
}

// ListMine 我的分享：任意状态，只看自己的
func (s *PanShareService) ListMine(userID, status string, page, limit int) (*MineListResponse, error) {
	page, limit = clampPage(page, limit)

	if status != "" && !model.ValidStatus(status) {
		return nil, validationError("无效的分享状态")
	}

	shares, err := s.repo.ListByUser(userID, status, page, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountByUser(userID, status)
	if err != nil {
		return nil, err
	}

	resp := &MineListResponse{
		Shares:     make([]OwnerShare, 0, len(shares)),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}
	for i := range shares {
		resp.Shares = append(resp.Shares, toOwnerShare(&shares[i]))
	}
	return resp, nil
}

// Secret 敏感字段：仅已发布的分享可取
// 不存在和未发布返回同一个错误，响应不可区分
func (s *PanShareService) Secret(id string) (*SecretResponse, error) {
	share, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if share.Status != string(model.StatusPublished) {
		return nil, ErrNotFound
	}

	// 人为延迟，降低批量抓取速度
	time.Sleep(secretRevealDelay)

	return &SecretResponse{
		ShareURL:  share.ShareURL,
		ShareCode: share.ShareCode,
	}, nil
}

// ===== 管理端操作 =====

// AdminCreate 管理员创建：全字段，默认直接发布
func (s *PanShareService) AdminCreate(req AdminCreateRequest, userID string) (*model.PanShare, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, validationError("标题不能为空")
	}
	shareURL := strings.TrimSpace(req.ShareURL)
	if shareURL == "" {
		return nil, validationError("分享链接不能为空")
	}
	if !model.ValidDiskType(req.DiskType) {
		return nil, validationError("无效的网盘类型")
	}
	status := req.Status
	if status == "" {
		status = string(model.StatusPublished)
	}
	if !model.ValidStatus(status) {
		return nil, validationError("无效的分享状态")
	}
	expiredAt, err := parseExpiredAt(req.ExpiredAt)
	if err != nil {
		return nil, err
	}

	share := &model.PanShare{
		ID:          uuid.NewString(),
		Title:       title,
		Description: optional(req.Description),
		Content:     optional(req.Content),
		CoverImage:  optional(req.CoverImage),
		DiskType:    req.DiskType,
		ShareURL:    shareURL,
		ShareCode:   optional(req.ShareCode),
		ExpiredAt:   expiredAt,
		Status:      status,
		UserID:      optional(userID),
	}

	if err := s.repo.Create(share); err != nil {
		return nil, err
	}
	return share, nil
}

// AdminUpdate 管理员编辑：只更新提交的字段
func (s *PanShareService) AdminUpdate(id string, req AdminUpdateRequest) (*model.PanShare, error) {
	updates := map[string]any{}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, validationError("标题不能为空")
		}
		updates["title"] = title
	}
	if req.Description != nil {
		updates["description"] = optional(*req.Description)
	}
	if req.Content != nil {
		updates["content"] = optional(*req.Content)
	}
	if req.CoverImage != nil {
		updates["cover_image"] = optional(*req.CoverImage)
	}
	if req.DiskType != nil {
		if !model.ValidDiskType(*req.DiskType) {
			return nil, validationError("无效的网盘类型")
		}
		updates["disk_type"] = *req.DiskType
	}
	if req.ShareURL != nil {
		shareURL := strings.TrimSpace(*req.ShareURL)
		if shareURL == "" {
			return nil, validationError("分享链接不能为空")
		}
		updates["share_url"] = shareURL
	}
	if req.ShareCode != nil {
		updates["share_code"] = optional(*req.ShareCode)
	}
	if req.ExpiredAt != nil {
		expiredAt, err := parseExpiredAt(*req.ExpiredAt)
		if err != nil {
			return nil, err
		}
		updates["expired_at"] = expiredAt
	}
	if req.Status != nil {
		if !model.ValidStatus(*req.Status) {
			return nil, validationError("无效的分享状态")
		}
		updates["status"] = *req.Status
	}

	if len(updates) == 0 {
		return nil, validationError("没有需要更新的字段")
	}

	share, err := s.repo.Update(id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return share, nil
}

// AdminListParams 管理端列表参数
type AdminListParams struct {
	Page           int
	Limit          int
	Status         string
	Search         string
	DiskType       string
	IncludeDeleted bool
}

// AdminList 管理端列表：任意状态，完整行
func (s *PanShareService) AdminList(params AdminListParams) (*AdminListResponse, error) {
	page, limit := clampPage(params.Page, params.Limit)

	if params.Status != "" && !model.ValidStatus(params.Status) {
		return nil, validationError("无效的分享状态")
	}

	filter := ListFilter{
		Status:         params.Status,
		Search:         params.Search,
		DiskType:       params.DiskType,
		Page:           page,
		Limit:          limit,
		IncludeDeleted: params.IncludeDeleted,
	}

	shares, err := s.repo.List(filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(filter)
	if err != nil {
		return nil, err
	}

	return &AdminListResponse{
		Shares:     shares,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// AdminGet 管理端详情（编辑表单回填，含敏感字段）
func (s *PanShareService) AdminGet(id string) (*model.PanShare, error) {
	share, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return share, nil
}

// Approve 审核通过
func (s *PanShareService) Approve(id string) (*model.PanShare, error) {
	share, err := s.repo.Approve(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return share, nil
}

// Reject 审核拒绝
func (s *PanShareService) Reject(id string) (*model.PanShare, error) {
	share, err := s.repo.Reject(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return share, nil
}

// Delete 软删除
func (s *PanShareService) Delete(id string) error {
	_, err := s.repo.SoftDelete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
