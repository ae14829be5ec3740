// Package admin 管理端接口：审核、编辑、下架
package admin

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sword-demon/pan-share/internal/dto"
	"github.com/sword-demon/pan-share/internal/middleware"
	"github.com/sword-demon/pan-share/internal/panshare"
)

type AdminHandler struct {
	service *panshare.PanShareService
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	repo := panshare.NewPanShareRepository(db)
	return &AdminHandler{service: panshare.NewPanShareService(repo)}
}

// List 管理端分享列表
// @Summary 管理端分享列表（任意状态，完整行）
// @Tags Admin
// @Accept json
// @Produce json
// @Param page query int false "页码" default(1)
// @Param pageSize query int false "每页数量" default(20)
// @Param status query string false "状态过滤" Enums(pending, published, rejected, archived)
// @Param search query string false "按标题/描述搜索"
// @Param includeDeleted query bool false "包含已删除"
// @Success 200 {object} response.Response{data=panshare.AdminListResponse}
// @Router /admin/pan-shares [get]
func (h *AdminHandler) List(c *gin.Context) {
	result, err := h.service.AdminList(panshare.AdminListParams{
		Page:           queryInt(c, "page", 1),
		Limit:          queryInt(c, "pageSize", 20),
		Status:         c.Query("status"),
		Search:         c.Query("search"),
		DiskType:       c.Query("diskType"),
		IncludeDeleted: c.Query("includeDeleted") == "true",
	})
	if err != nil {
		respondError(c, err, "获取分享列表失败")
		return
	}

	dto.SuccessResponse(c, result)
}

// Get 管理端分享详情
// @Summary 管理端分享详情（编辑表单回填）
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "分享ID"
// @Success 200 {object} response.Response
// @Router /admin/pan-shares/{id} [get]
func (h *AdminHandler) Get(c *gin.Context) {
	share, err := h.service.AdminGet(c.Param("id"))
	if err != nil {
		respondError(c, err, "获取分享失败")
		return
	}

	dto.SuccessResponse(c, share)
}

// Create 管理端创建分享
// @Summary 管理端创建分享（默认直接发布）
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body panshare.AdminCreateRequest true "创建请求"
// @Success 200 {object} response.Response
// @Router /admin/pan-shares [post]
func (h *AdminHandler) Create(c *gin.Context) {
	var req panshare.AdminCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	share, err := h.service.AdminCreate(req, middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err, "创建分享失败")
		return
	}

	// 前端凭 redirect_url 跳回列表页
	dto.SuccessResponse(c, gin.H{
		"id":           share.ID,
		"redirect_url": "/admin/pan-shares",
	})
}

// Update 管理端编辑分享
// @Summary 管理端编辑分享（只更新提交的字段）
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "分享ID"
// @Param request body panshare.AdminUpdateRequest true "编辑请求"
// @Success 200 {object} response.Response
// @Router /admin/pan-shares/{id} [put]
func (h *AdminHandler) Update(c *gin.Context) {
	var req panshare.AdminUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	share, err := h.service.AdminUpdate(c.Param("id"), req)
	if err != nil {
		respondError(c, err, "更新分享失败")
		return
	}

	dto.SuccessResponse(c, gin.H{
		"id":           share.ID,
		"redirect_url": "/admin/pan-shares",
	})
}

// Approve 审核通过
// @Summary 审核通过（pending -> published）
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "分享ID"
// @Success 200 {object} response.Response
// @Router /admin/pan-shares/{id}/approve [post]
func (h *AdminHandler) Approve(c *gin.Context) {
	share, err := h.service.Approve(c.Param("id"))
	if err != nil {
		respondError(c, err, "审核操作失败")
		return
	}

	dto.SuccessResponse(c, share)
}

// Reject 审核拒绝
// @Summary 审核拒绝（pending -> rejected）
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "分享ID"
// @Success 200 {object} response.Response
// @Router /admin/pan-shares/{id}/reject [post]
func (h *AdminHandler) Reject(c *gin.Context) {
	share, err := h.service.Reject(c.Param("id"))
	if err != nil {
		respondError(c, err, "审核操作失败")
		return
	}

	dto.SuccessResponse(c, share)
}

// Delete 软删除
// @Summary 下架分享（软删除，行保留）
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "分享ID"
// @Success 200 {object} response.Response
// @Router /admin/pan-shares/{id} [delete]
func (h *AdminHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		respondError(c, err, "删除分享失败")
		return
	}

	dto.SuccessResponse(c, nil)
}
