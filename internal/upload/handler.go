// Package upload 封面图上传
package upload

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sword-demon/pan-share/internal/dto"
	"github.com/sword-demon/pan-share/internal/storage"
	"github.com/sword-demon/pan-share/pkg/response"
)

// 封面图大小上限
const maxCoverSize = 5 << 20 // 5MB

type Handler struct {
	uploader storage.Uploader
}

func NewHandler(uploader storage.Uploader) *Handler {
	return &Handler{uploader: uploader}
}

// Cover 上传封面图
// @Summary 上传封面图（需登录），返回公开 URL
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "图片文件"
// @Success 200 {object} response.Response
// @Router /uploads/cover [post]
func (h *Handler) Cover(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("缺少图片文件"),
		))
		return
	}

	if fileHeader.Size > maxCoverSize {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("图片不能超过 5MB"),
		))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("只支持图片文件"),
		))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("读取文件失败"),
		))
		return
	}
	defer src.Close()

	key := uuid.NewString() + strings.ToLower(filepath.Ext(fileHeader.Filename))

	start := time.Now()
	url, err := h.uploader.Upload(c.Request.Context(), key, src, contentType)
	if err != nil {
		logrus.WithError(err).Error("封面上传失败")
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("上传失败，请稍后重试"),
		))
		return
	}

	logrus.WithFields(logrus.Fields{
		"key":     key,
		"size":    fileHeader.Size,
		"latency": time.Since(start),
	}).Info("封面上传成功")

	dto.SuccessResponse(c, gin.H{"url": url})
}
