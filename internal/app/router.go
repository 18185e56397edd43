package app

import (
	"certquiz_backend/docs"
	"certquiz_backend/internal/config"
	"certquiz_backend/internal/middleware"
	"certquiz_backend/internal/model"
	"certquiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c, cfg)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerUserRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// 目录浏览：游客可访问，题目列表不含答案
		public.GET("/certifications", c.content.ListCertifications)
		public.GET("/certifications/:slug/topics", c.content.ListTopics)
		public.GET("/topics/:slug/questions", middleware.TryAuthMiddleware(cfg), c.content.ListTopicQuestions)
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/user/profile", c.user.UpdateProfile)
	rg.PUT("/user/password", c.user.ChangePassword)
	rg.POST("/user/avatar/upload", c.user.UploadAvatar)

	// 答题会话
	rg.POST("/quiz/start", c.quiz.StartQuiz)
	rg.POST("/quiz/answer", c.quiz.SubmitAnswer)
	rg.POST("/quiz/sessions/:sessionId/complete", c.quiz.CompleteSession)
	rg.GET("/quiz/sessions/:sessionId", c.quiz.GetSession)
	rg.GET("/quiz/history", c.quiz.GetHistory)

	// 进度与排行
	rg.GET("/progress/:certificationId", c.progress.GetProgress)
	rg.GET("/leaderboard/:certificationId", c.progress.GetLeaderboard)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.POST("/certifications", c.content.CreateCertification)
		admin.PUT("/certifications/:slug", c.content.UpdateCertification)
		admin.DELETE("/certifications/:slug", c.content.DeleteCertification)

		admin.POST("/topics", c.content.CreateTopic)
		admin.PUT("/topics/:slug", c.content.UpdateTopic)
		admin.DELETE("/topics/:slug", c.content.DeleteTopic)
		admin.GET("/topics/:slug/questions", c.content.ListQuestionsAdmin)

		admin.POST("/questions", c.content.CreateQuestion)
		admin.PUT("/questions/:id", c.content.UpdateQuestion)
		admin.DELETE("/questions/:id", c.content.DeleteQuestion)
	}
}
