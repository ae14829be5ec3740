package panshare

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/sword-demon/pan-share/internal/dto"
	"github.com/sword-demon/pan-share/internal/middleware"
	"github.com/sword-demon/pan-share/pkg/response"
)

type PanShareHandler struct {
	service *PanShareService
}

func NewPanShareHandler(db *gorm.DB) *PanShareHandler {
	repo := NewPanShareRepository(db)
	return &PanShareHandler{service: NewPanShareService(repo)}
}

// respondError 统一的服务层错误转换
func respondError(c *gin.Context, err error, fallback string) {
	var bizErr *response.BusinessError
	if errors.As(err, &bizErr) {
		dto.ErrorResponse(c, bizErr)
		return
	}
	if errors.Is(err, ErrNotFound) {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage(ErrNotFound.Error()),
		))
		return
	}

	logrus.WithError(err).Error(fallback)
	dto.ErrorResponse(c, response.NewBusinessError(
		response.WithErrorCode(response.Fail),
		response.WithErrorMessage(fallback),
	))
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

// ListPublished 获取公开分享列表
// @Summary 获取已发布的分享列表（分页）
// @Tags PanShare
// @Accept json
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Param search query string false "按标题/描述搜索"
// @Param diskType query string false "网盘类型" Enums(baidu, aliyun, quark, xunlei, 115, other)
// @Success 200 {object} response.Response{data=panshare.ListResponse}
// @Router /pan-shares [get]
func (h *PanShareHandler) ListPublished(c *gin.Context) {
	result, err := h.service.ListPublic(ListPublicParams{
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 20),
		Search:   c.Query("search"),
		DiskType: c.Query("diskType"),
	})
	if err != nil {
		respondError(c, err, "获取分享列表失败")
		return
	}

	dto.SuccessResponse(c, result)
}

// GetPublished 获取单条分享详情
// @Summary 获取分享详情（仅已发布，不含敏感字段）
// @Tags PanShare
// @Accept json
// @Produce json
// @Param id path string true "分享ID"
// @Success 200 {object} response.Response{data=panshare.PublicShare}
// @Router /pan-shares/{id} [get]
func (h *PanShareHandler) GetPublished(c *gin.Context) {
	share, err := h.service.GetPublished(c.Param("id"))
	if err != nil {
		respondError(c, err, "获取分享失败")
		return
	}

	dto.SuccessResponse(c, share)
}

// Submit 用户投稿
// @Summary 提交分享（需登录，进入审核队列）
// @Tags PanShare
// @Accept json
// @Produce json
// @Param request body panshare.SubmitRequest true "投稿请求"
// @Success 200 {object} response.Response
// @Router /pan-shares [post]
func (h *PanShareHandler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	userID := middleware.CurrentUserID(c)

	share, err := h.service.Submit(req, userID)
	if err != nil {
		respondError(c, err, "提交分享失败")
		return
	}

	dto.SuccessResponse(c, gin.H{
		"id":      share.ID,
		"message": "提交成功，等待审核",
	})
}

// ListMine 我的分享
// @Summary 获取当前用户的分享列表（任意状态）
// @Tags PanShare
// @Accept json
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Param status query string false "状态过滤" Enums(pending, published, rejected, archived)
// @Success 200 {object} response.Response{data=panshare.MineListResponse}
// @Router /pan-shares/mine [get]
func (h *PanShareHandler) ListMine(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	result, err := h.service.ListMine(userID, c.Query("status"),
		queryInt(c, "page", 1), queryInt(c, "limit", 20))
	if err != nil {
		respondError(c, err, "获取我的分享失败")
		return
	}

	dto.SuccessResponse(c, result)
}

// Secret 获取分享的敏感字段
// @Summary 获取分享链接和提取码（需登录，仅已发布）
// @Description 用 POST 而不是 GET，避免被简单抓取和缓存
// @Tags PanShare
// @Accept json
// @Produce json
// @Param id path string true "分享ID"
// @Success 200 {object} response.Response{data=panshare.SecretResponse}
// @Router /pan-shares/{id}/secret [post]
func (h *PanShareHandler) Secret(c *gin.Context) {
	secret, err := h.service.Secret(c.Param("id"))
	if err != nil {
		respondError(c, err, "获取分享信息失败")
		return
	}

	dto.SuccessResponse(c, secret)
}
