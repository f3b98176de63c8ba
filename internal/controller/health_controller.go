package controller

import (
	"context"
	"linuxplus_backend/internal/util"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger 由 gorm 或 mongo 连接实现
type Pinger func(ctx context.Context) error

type HealthController struct {
	Ping   Pinger
	Driver string
}

func NewHealthController(ping Pinger, driver string) *HealthController {
	return &HealthController{Ping: ping, Driver: driver}
}

// Root godoc
// @Summary 服务信息
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/ [get]
func (c *HealthController) Root(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"message":  "Linux+ Learning App API",
		"version":  "2.0",
		"features": []string{"quiz", "flashcards", "ai-explanations"},
	})
}

// @Summary 健康检查
// @Description 检查服务与数据库状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	if err := c.Ping(pingCtx); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database": c.Driver,
		},
	})
}
