package controller

import (
	"bytes"
	"encoding/json"
	"linuxplus_backend/internal/service"
	"linuxplus_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// SubmitQuizRequest defines model for quiz submission
// swagger:model SubmitQuizRequest
type SubmitQuizRequest struct {
	Chapter *int                       `json:"chapter"`
	Answers []service.AnswerSubmission `json:"answers" binding:"dive"`
}

// bindSubmission 支持两种请求体：{chapter, answers} 或 答案数组 + ?chapter=
func bindSubmission(ctx *gin.Context) (*SubmitQuizRequest, error) {
	raw, err := ctx.GetRawData()
	if err != nil {
		return nil, err
	}

	var req SubmitQuizRequest
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &req.Answers)
	} else {
		err = json.Unmarshal(raw, &req)
	}
	if err != nil {
		return nil, err
	}

	if req.Chapter == nil {
		if q := ctx.Query("chapter"); q != "" {
			chapter, err := strconv.Atoi(q)
			if err != nil {
				return nil, util.ErrInvalidChapter
			}
			req.Chapter = &chapter
		}
	}
	if req.Chapter == nil {
		return nil, util.ErrInvalidChapter
	}

	if err := binding.Validator.ValidateStruct(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// Submit godoc
// @Summary 提交测验
// @Description 按章节评分，保存结果并更新学习进度
// @Tags 测验
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   chapter query int false "章节（请求体未提供时使用）"
// @Param   body body SubmitQuizRequest true "答案"
// @Success 200 {object} util.Response{data=service.QuizOutcome}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/quiz/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	userID := util.UserIDFromContext(ctx)
	if userID == "" {
		util.Unauthorized(ctx)
		return
	}

	req, err := bindSubmission(ctx)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	outcome, err := c.QuizService.Submit(ctx.Request.Context(), userID, *req.Chapter, req.Answers)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, outcome)
}
