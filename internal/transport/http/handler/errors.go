package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-user-service/internal/domain"
	resp "go-user-service/internal/transport/http/response"
)

// writeError 域错误 → HTTP 状态码；未识别的错误一律 500，细节不出网
func writeError(c *gin.Context, l *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		resp.Fail(c, http.StatusBadRequest, domain.ErrDuplicateEmail.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		resp.Fail(c, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrForbidden):
		resp.Fail(c, http.StatusForbidden, domain.ErrForbidden.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		resp.Fail(c, http.StatusNotFound, domain.ErrUserNotFound.Error())
	default:
		l.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		resp.Fail(c, http.StatusInternalServerError, "internal error")
	}
}
