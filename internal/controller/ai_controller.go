package controller

import (
	"linuxplus_backend/internal/service"
	"linuxplus_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AIController struct {
	AIService *service.AIService
}

func NewAIController(aiService *service.AIService) *AIController {
	return &AIController{AIService: aiService}
}

// GetProviders godoc
// @Summary AI 解析服务商列表
// @Tags AI
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Provider}
// @Router /api/ai/providers [get]
func (c *AIController) GetProviders(ctx *gin.Context) {
	util.Success(ctx, c.AIService.ListProviders())
}

// Explain godoc
// @Summary AI 题目解析
// @Description 使用调用方提供的 API Key 请求所选服务商。上游失败以 success=false 返回，HTTP 状态仍为 200。携带 token 时记录调用用户
// @Tags AI
// @Accept json
// @Produce json
// @Param body body service.ExplainRequest true "题目与服务商"
// @Success 200 {object} util.Response{data=service.ExplanationResult}
// @Failure 400 {object} util.Response "参数错误或未知服务商"
// @Failure 429 {object} util.Response
// @Router /api/ai/explain [post]
func (c *AIController) Explain(ctx *gin.Context) {
	var req service.ExplainRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	req.UserID = util.UserIDFromContext(ctx)

	result, err := c.AIService.Explain(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
