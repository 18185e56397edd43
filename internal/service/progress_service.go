package service

import (
	"certquiz_backend/internal/model"
	"certquiz_backend/internal/repository"
	"certquiz_backend/pkg/logger"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	leaderboardCacheTTL = time.Minute
	leaderboardLimit    = 20
)

// ProgressService 进度查询与认证排行榜
type ProgressService struct {
	Repo  *repository.ProgressRepository
	Redis *redis.Client
}

func NewProgressService(repo *repository.ProgressRepository, rdb *redis.Client) *ProgressService {
	return &ProgressService{Repo: repo, Redis: rdb}
}

// GetProgress 某用户在一个认证下的全部主题进度
func (s *ProgressService) GetProgress(userID uint, certificationID string) ([]model.UserProgress, error) {
	return s.Repo.ListByUserAndCertification(userID, certificationID)
}

// Leaderboard 认证排行榜，短 TTL 缓存
func (s *ProgressService) Leaderboard(certificationID string) ([]repository.LeaderboardEntry, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("leaderboard:%s", certificationID)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var entries []repository.LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		}
	}

	entries, err := s.Repo.Leaderboard(certificationID, leaderboardLimit)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, payload, leaderboardCacheTTL).Err(); err != nil {
				logger.Log.Warn("leaderboard cache write failed", zap.Error(err))
			}
		}
	}

	return entries, nil
}
