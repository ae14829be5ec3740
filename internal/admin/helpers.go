package admin

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sword-demon/pan-share/internal/dto"
	"github.com/sword-demon/pan-share/internal/panshare"
	"github.com/sword-demon/pan-share/pkg/response"
)

func respondError(c *gin.Context, err error, fallback string) {
	var bizErr *response.BusinessError
	if errors.As(err, &bizErr) {
		dto.ErrorResponse(c, bizErr)
		return
	}
	if errors.Is(err, panshare.ErrNotFound) {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage(panshare.ErrNotFound.Error()),
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
