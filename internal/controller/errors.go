package controller

import (
	"errors"
	"linuxplus_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondError 将业务错误映射为 HTTP 状态码，未知错误记录日志后返回 500
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUnauthenticated):
		util.Unauthorized(ctx)
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Error(ctx, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, util.ErrEmailRegistered):
		util.BadRequest(ctx, "Email already registered")
	case errors.Is(err, util.ErrUnknownProvider),
		errors.Is(err, util.ErrInvalidLanguage),
		errors.Is(err, util.ErrInvalidWeek),
		errors.Is(err, util.ErrInvalidChapter),
		errors.Is(err, util.ErrInvalidExplainRequest):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
