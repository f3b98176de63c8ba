package controller

import (
	"linuxplus_backend/internal/service"
	"linuxplus_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

func chapterParam(ctx *gin.Context) (int, bool) {
	chapter, err := strconv.Atoi(ctx.Param("chapter"))
	if err != nil {
		util.BadRequest(ctx, "chapter must be an integer")
		return 0, false
	}
	return chapter, true
}

// GetChapters godoc
// @Summary 章节列表
// @Tags 学习内容
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Chapter}
// @Router /api/chapters [get]
func (c *ContentController) GetChapters(ctx *gin.Context) {
	util.Success(ctx, c.ContentService.Chapters())
}

// GetQuestions godoc
// @Summary 章节题目（随机顺序）
// @Tags 学习内容
// @Produce json
// @Param chapter path int true "章节"
// @Param limit query int false "数量，1-50，默认10"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Failure 400 {object} util.Response
// @Router /api/questions/{chapter} [get]
func (c *ContentController) GetQuestions(ctx *gin.Context) {
	chapter, ok := chapterParam(ctx)
	if !ok {
		return
	}
	limit := util.ParseIntDefault(ctx.Query("limit"), util.DefaultQuestionLimit)

	questions, err := c.ContentService.Questions(chapter, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// GetFlashcards godoc
// @Summary 全部闪卡
// @Tags 学习内容
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Flashcard}
// @Router /api/flashcards [get]
func (c *ContentController) GetFlashcards(ctx *gin.Context) {
	util.Success(ctx, c.ContentService.Flashcards())
}

// GetChapterFlashcards godoc
// @Summary 章节闪卡
// @Tags 学习内容
// @Produce json
// @Param chapter path int true "章节"
// @Success 200 {object} util.Response{data=[]model.Flashcard}
// @Failure 400 {object} util.Response "未知章节"
// @Router /api/flashcards/{chapter} [get]
func (c *ContentController) GetChapterFlashcards(ctx *gin.Context) {
	chapter, ok := chapterParam(ctx)
	if !ok {
		return
	}
	cards, err := c.ContentService.ChapterFlashcards(chapter)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, cards)
}

// GetStudyPlan godoc
// @Summary 20周学习计划
// @Tags 学习内容
// @Produce json
// @Success 200 {object} util.Response{data=[]model.StudyPlanWeek}
// @Router /api/studyplan [get]
func (c *ContentController) GetStudyPlan(ctx *gin.Context) {
	util.Success(ctx, c.ContentService.StudyPlan())
}
