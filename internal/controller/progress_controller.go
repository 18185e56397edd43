package controller

import (
	"certquiz_backend/internal/service"
	"certquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// GetProgress godoc
// @Summary 认证下的主题进度
// @Description 当前用户在该认证下每个主题一行的累计进度
// @Tags 进度
// @Produce  json
// @Security ApiKeyAuth
// @Param   certificationId path string true "认证slug"
// @Success 200 {object} util.Response{data=[]model.UserProgress}
// @Router /api/progress/{certificationId} [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rows, err := c.ProgressService.GetProgress(claims.UserID, ctx.Param("certificationId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, rows)
}

// GetLeaderboard godoc
// @Summary 认证排行榜
// @Tags 进度
// @Produce  json
// @Security ApiKeyAuth
// @Param   certificationId path string true "认证slug"
// @Success 200 {object} util.Response{data=[]repository.LeaderboardEntry}
// @Router /api/leaderboard/{certificationId} [get]
func (c *ProgressController) GetLeaderboard(ctx *gin.Context) {
	entries, err := c.ProgressService.Leaderboard(ctx.Param("certificationId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}
