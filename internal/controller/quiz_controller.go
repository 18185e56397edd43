package controller

import (
	"certquiz_backend/internal/service"
	"certquiz_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// StartQuizRequest 开始答题请求
// swagger:model StartQuizRequest
type StartQuizRequest struct {
	TopicID string `json:"topicId" binding:"required"`
}

// StartQuiz godoc
// @Summary 开始或恢复主题答题会话
// @Description 已有活跃会话时返回该会话（200），否则新建（201）
// @Tags 答题
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body StartQuizRequest true "主题"
// @Success 200 {object} util.Response{data=object} "恢复已有会话"
// @Success 201 {object} util.Response{data=object} "新建会话"
// @Failure 404 {object} util.Response "主题不存在"
// @Router /api/quiz/start [post]
func (c *QuizController) StartQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, created, err := c.QuizService.StartSession(claims.UserID, req.TopicID)
	if err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	if created {
		util.Created(ctx, gin.H{"session": session})
		return
	}
	util.Success(ctx, gin.H{"session": session})
}

// SubmitAnswerRequest 提交答案请求
// swagger:model SubmitAnswerRequest
type SubmitAnswerRequest struct {
	SessionID      string `json:"sessionId" binding:"required"`
	QuestionID     string `json:"questionId" binding:"required"`
	SelectedAnswer *int   `json:"selectedAnswer" binding:"required,gte=0"`
	TimeSpent      int    `json:"timeSpent" binding:"gte=0"`
}

// SubmitAnswer godoc
// @Summary 提交一题答案
// @Description 返回判定结果、正确答案与解析；会话游标按作答条数推导
// @Tags 答题
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SubmitAnswerRequest true "答案"
// @Success 200 {object} util.Response{data=service.AnswerResult}
// @Failure 400 {object} util.Response "答案越界或题目不属于该主题"
// @Failure 404 {object} util.Response "会话或题目不存在"
// @Failure 409 {object} util.Response "会话已结算"
// @Router /api/quiz/answer [post]
func (c *QuizController) SubmitAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.SubmitAnswer(claims.UserID, req.SessionID, req.QuestionID, *req.SelectedAnswer, req.TimeSpent)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound), errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrQuestionTopicMismatch), errors.Is(err, util.ErrAnswerOutOfRange):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrSessionCompleted):
			util.Conflict(ctx, err.Error())
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// CompleteSession godoc
// @Summary 结算答题会话
// @Description 计算得分并折叠进 (用户, 主题) 进度；重复结算返回既有汇总
// @Tags 答题
// @Produce  json
// @Security ApiKeyAuth
// @Param   sessionId path string true "会话ID"
// @Success 200 {object} util.Response{data=service.CompletionResult}
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/quiz/sessions/{sessionId}/complete [post]
func (c *QuizController) CompleteSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID := ctx.Param("sessionId")

	result, err := c.QuizService.CompleteSession(claims.UserID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// GetSession godoc
// @Summary 查询答题会话
// @Tags 答题
// @Produce  json
// @Security ApiKeyAuth
// @Param   sessionId path string true "会话ID"
// @Success 200 {object} util.Response{data=model.QuizSession}
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/quiz/sessions/{sessionId} [get]
func (c *QuizController) GetSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.QuizService.GetSession(claims.UserID, ctx.Param("sessionId"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, session)
}

// GetHistory godoc
// @Summary 已完成会话历史（分页）
// @Tags 答题
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "页码" default(1)
// @Param   limit query int false "每页条数" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/quiz/history [get]
func (c *QuizController) GetHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	sessions, total, err := c.QuizService.History(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  sessions,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
