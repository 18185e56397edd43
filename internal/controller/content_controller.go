package controller

import (
	"certquiz_backend/internal/model"
	"certquiz_backend/internal/service"
	"certquiz_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
	QuizService    *service.QuizService
}

func NewContentController(contentService *service.ContentService, quizService *service.QuizService) *ContentController {
	return &ContentController{
		ContentService: contentService,
		QuizService:    quizService,
	}
}

// ListCertifications godoc
// @Summary 认证目录
// @Description 启用中的认证及其主题列表
// @Tags 目录
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Certification}
// @Router /api/certifications [get]
func (c *ContentController) ListCertifications(ctx *gin.Context) {
	certs, err := c.ContentService.ListCertifications()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, certs)
}

// ListTopics godoc
// @Summary 认证下的主题列表
// @Tags 目录
// @Produce  json
// @Param   slug path string true "认证slug"
// @Success 200 {object} util.Response{data=[]model.Topic}
// @Failure 404 {object} util.Response "认证不存在"
// @Router /api/certifications/{slug}/topics [get]
func (c *ContentController) ListTopics(ctx *gin.Context) {
	slug := ctx.Param("slug")

	topics, err := c.ContentService.ListTopics(slug)
	if err != nil {
		if errors.Is(err, util.ErrCertificationNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, topics)
}

// ListTopicQuestions godoc
// @Summary 主题题目列表（答题端）
// @Description 题目列表不包含正确答案与解析，答案提交后才下发。已登录用户附带该主题的活跃会话，便于续答
// @Tags 目录
// @Produce  json
// @Param   slug path string true "主题slug"
// @Success 200 {object} util.Response{data=object} "questions + activeSession(可空)"
// @Failure 404 {object} util.Response "主题不存在"
// @Router /api/topics/{slug}/questions [get]
func (c *ContentController) ListTopicQuestions(ctx *gin.Context) {
	slug := ctx.Param("slug")

	questions, err := c.ContentService.ListTopicQuestions(slug)
	if err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	payload := gin.H{"questions": questions}

	// 游客拿纯题目列表，登录用户附带可续答的会话
	if claims := util.GetUserFromContext(ctx); claims != nil {
		if session, err := c.QuizService.ActiveSession(claims.UserID, slug); err == nil {
			payload["activeSession"] = session
		}
	}

	util.Success(ctx, payload)
}

// CertificationRequest 认证创建/更新请求
// swagger:model CertificationRequest
type CertificationRequest struct {
	ID          string `json:"id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Provider    string `json:"provider"`
	Level       string `json:"level"`
	Order       int    `json:"order"`
	IsActive    *bool  `json:"isActive"`
}

// CreateCertification godoc
// @Summary 创建认证
// @Tags 内容管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CertificationRequest true "认证信息"
// @Success 201 {object} util.Response{data=model.Certification}
// @Router /api/admin/certifications [post]
func (c *ContentController) CreateCertification(ctx *gin.Context) {
	var req CertificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	cert := &model.Certification{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Provider:    req.Provider,
		Level:       req.Level,
		Order:       req.Order,
		IsActive:    true,
	}
	if req.IsActive != nil {
		cert.IsActive = *req.IsActive
	}

	if err := c.ContentService.CreateCertification(cert); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, cert)
}

// UpdateCertification godoc
// @Summary 更新认证
// @Tags 内容管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   slug path string true "认证slug"
// @Param   body body CertificationRequest true "认证信息"
// @Success 200 {object} util.Response{data=model.Certification}
// @Router /api/admin/certifications/{slug} [put]
func (c *ContentController) UpdateCertification(ctx *gin.Context) {
	slug := ctx.Param("slug")

	cert, err := c.ContentService.GetCertification(slug)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	var req CertificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	cert.Name = req.Name
	cert.Description = req.Description
	cert.Provider = req.Provider
	cert.Level = req.Level
	cert.Order = req.Order
	if req.IsActive != nil {
		cert.IsActive = *req.IsActive
	}

	if err := c.ContentService.UpdateCertification(cert); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, cert)
}

// DeleteCertification godoc
// @Summary 删除认证及其主题、题目
// @Tags 内容管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   slug path string true "认证slug"
// @Success 200 {object} util.Response
// @Router /api/admin/certifications/{slug} [delete]
func (c *ContentController) DeleteCertification(ctx *gin.Context) {
	slug := ctx.Param("slug")

	if err := c.ContentService.DeleteCertification(slug); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": slug})
}

// TopicRequest 主题创建/更新请求
// swagger:model TopicRequest
type TopicRequest struct {
	ID              string `json:"id" binding:"required"`
	CertificationID string `json:"certificationId" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	Order           int    `json:"order"`
	IsActive        *bool  `json:"isActive"`
}

// CreateTopic godoc
// @Summary 创建主题
// @Tags 内容管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body TopicRequest true "主题信息"
// @Success 201 {object} util.Response{data=model.Topic}
// @Failure 404 {object} util.Response "认证不存在"
// @Router /api/admin/topics [post]
func (c *ContentController) CreateTopic(ctx *gin.Context) {
	var req TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	topic := &model.Topic{
		ID:              req.ID,
		CertificationID: req.CertificationID,
		Name:            req.Name,
		Description:     req.Description,
		Order:           req.Order,
		IsActive:        true,
	}
	if req.IsActive != nil {
		topic.IsActive = *req.IsActive
	}

	if err := c.ContentService.CreateTopic(topic); err != nil {
		if errors.Is(err, util.ErrCertificationNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, topic)
}

// UpdateTopic godoc
// @Summary 更新主题
// @Tags 内容管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   slug path string true "主题slug"
// @Param   body body TopicRequest true "主题信息"
// @Success 200 {object} util.Response{data=model.Topic}
// @Router /api/admin/topics/{slug} [put]
func (c *ContentController) UpdateTopic(ctx *gin.Context) {
	slug := ctx.Param("slug")

	topic, err := c.ContentService.GetTopic(slug)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	var req TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	topic.Name = req.Name
	topic.Description = req.Description
	topic.Order = req.Order
	if req.IsActive != nil {
		topic.IsActive = *req.IsActive
	}

	if err := c.ContentService.UpdateTopic(topic); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, topic)
}

// DeleteTopic godoc
// @Summary 删除主题及其题目
// @Tags 内容管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   slug path string true "主题slug"
// @Success 200 {object} util.Response
// @Router /api/admin/topics/{slug} [delete]
func (c *ContentController) DeleteTopic(ctx *gin.Context) {
	slug := ctx.Param("slug")

	if err := c.ContentService.DeleteTopic(slug); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": slug})
}

// QuestionRequest 题目创建/更新请求
// swagger:model QuestionRequest
type QuestionRequest struct {
	TopicID       string   `json:"topicId" binding:"required"`
	Content       string   `json:"content" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer int      `json:"correctAnswer" binding:"gte=0"`
	Explanation   string   `json:"explanation"`
	Order         int      `json:"order"`
	IsActive      *bool    `json:"isActive"`
}

// CreateQuestion godoc
// @Summary 创建题目
// @Tags 内容管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body QuestionRequest true "题目信息"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response "主题不存在"
// @Router /api/admin/questions [post]
func (c *ContentController) CreateQuestion(ctx *gin.Context) {
	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if req.CorrectAnswer >= len(req.Options) {
		util.BadRequest(ctx, "correctAnswer index out of option range")
		return
	}

	question := &model.Question{
		TopicID:       req.TopicID,
		Content:       req.Content,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
		Order:         req.Order,
		IsActive:      true,
	}
	if req.IsActive != nil {
		question.IsActive = *req.IsActive
	}

	if err := c.ContentService.CreateQuestion(question); err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, question)
}

// UpdateQuestion godoc
// @Summary 更新题目
// @Tags 内容管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "题目ID"
// @Param   body body QuestionRequest true "题目信息"
// @Success 200 {object} util.Response{data=model.Question}
// @Router /api/admin/questions/{id} [put]
func (c *ContentController) UpdateQuestion(ctx *gin.Context) {
	id := ctx.Param("id")

	question, err := c.ContentService.GetQuestion(id)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if req.CorrectAnswer >= len(req.Options) {
		util.BadRequest(ctx, "correctAnswer index out of option range")
		return
	}

	question.TopicID = req.TopicID
	question.Content = req.Content
	question.Options = req.Options
	question.CorrectAnswer = req.CorrectAnswer
	question.Explanation = req.Explanation
	question.Order = req.Order
	if req.IsActive != nil {
		question.IsActive = *req.IsActive
	}

	if err := c.ContentService.UpdateQuestion(question); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, question)
}

// ListQuestionsAdmin godoc
// @Summary 主题题目列表（管理端，含答案）
// @Tags 内容管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   slug path string true "主题slug"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /api/admin/topics/{slug}/questions [get]
func (c *ContentController) ListQuestionsAdmin(ctx *gin.Context) {
	slug := ctx.Param("slug")

	questions, err := c.ContentService.ListQuestionsAdmin(slug)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

// DeleteQuestion godoc
// @Summary 删除题目
// @Tags 内容管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id} [delete]
func (c *ContentController) DeleteQuestion(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.ContentService.DeleteQuestion(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}
