package app

import (
	"linuxplus_backend/docs"
	"linuxplus_backend/internal/config"
	"linuxplus_backend/internal/middleware"
	"linuxplus_backend/pkg/monitoring"
	"linuxplus_backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c, cfg)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		a.registerStudentRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/", c.health.Root)
		public.GET("/health", c.health.HealthCheck)

		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		public.GET("/chapters", c.content.GetChapters)
		public.GET("/questions/:chapter", c.content.GetQuestions)
		public.GET("/flashcards", c.content.GetFlashcards)
		public.GET("/flashcards/:chapter", c.content.GetChapterFlashcards)
		public.GET("/studyplan", c.content.GetStudyPlan)

		public.GET("/ai/providers", c.ai.GetProviders)
		// 解析请求单独限流
		public.POST("/ai/explain",
			security.RateLimiter(a.ctx, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window()),
			middleware.TryAuthMiddleware(cfg.JWT.Secret),
			c.ai.Explain,
		)
	}
}

func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/auth/me", c.auth.Me)
	group.PUT("/auth/language", c.auth.UpdateLanguage)

	group.POST("/quiz/submit", c.quiz.Submit)
	group.POST("/flashcards/reviewed", c.progress.MarkFlashcardReviewed)

	group.GET("/progress", c.progress.GetProgress)
	group.PUT("/progress/week", c.progress.UpdateWeek)
}
