package controller

import (
	"linuxplus_backend/internal/service"
	"linuxplus_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

type UpdateWeekRequest struct {
	Week int `json:"week"`
}

// GetProgress godoc
// @Summary 学习进度
// @Description 进度记录、最近10次测验、连续学习天数
// @Tags 进度
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response{data=service.ProgressOverview}
// @Failure 401 {object} util.Response
// @Router /api/progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	overview, err := c.ProgressService.GetProgress(ctx.Request.Context(), util.UserIDFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// UpdateWeek godoc
// @Summary 设置当前学习周
// @Tags 进度
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param week query int false "1-20"
// @Param body body UpdateWeekRequest false "1-20"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/progress/week [put]
func (c *ProgressController) UpdateWeek(ctx *gin.Context) {
	userID := util.UserIDFromContext(ctx)
	if userID == "" {
		util.Unauthorized(ctx)
		return
	}

	var week int
	if q := ctx.Query("week"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			util.BadRequest(ctx, "week must be an integer")
			return
		}
		week = n
	} else {
		var req UpdateWeekRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
		week = req.Week
	}

	if err := c.ProgressService.UpdateWeek(ctx.Request.Context(), userID, week); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"current_week": week})
}

// MarkFlashcardReviewed godoc
// @Summary 记录一次闪卡复习
// @Tags 进度
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/flashcards/reviewed [post]
func (c *ProgressController) MarkFlashcardReviewed(ctx *gin.Context) {
	if err := c.ProgressService.MarkFlashcardReviewed(ctx.Request.Context(), util.UserIDFromContext(ctx)); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"success": true})
}
