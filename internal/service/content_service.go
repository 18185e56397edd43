package service

import (
	"certquiz_backend/internal/model"
	"certquiz_backend/internal/repository"
	"certquiz_backend/internal/util"
	"certquiz_backend/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	catalogCacheKey = "catalog:certifications"
	catalogCacheTTL = 5 * time.Minute
)

// ContentService 认证/主题/题目目录。读路径面向答题端（题目剥敏），
// 写路径面向管理端，目录列表走 Redis 缓存
type ContentService struct {
	CertRepo     *repository.CertificationRepository
	QuestionRepo *repository.QuestionRepository
	Redis        *redis.Client
}

func NewContentService(certRepo *repository.CertificationRepository, questionRepo *repository.QuestionRepository, rdb *redis.Client) *ContentService {
	return &ContentService{
		CertRepo:     certRepo,
		QuestionRepo: questionRepo,
		Redis:        rdb,
	}
}

func (s *ContentService) ListCertifications() ([]model.Certification, error) {
	ctx := context.Background()

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, catalogCacheKey).Result(); err == nil {
			var certs []model.Certification
			if err := json.Unmarshal([]byte(cached), &certs); err == nil {
				return certs, nil
			}
		}
	}

	certs, err := s.CertRepo.ListActive()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(certs); err == nil {
			if err := s.Redis.Set(ctx, catalogCacheKey, payload, catalogCacheTTL).Err(); err != nil {
				logger.Log.Warn("catalog cache write failed", zap.Error(err))
			}
		}
	}

	return certs, nil
}

func (s *ContentService) ListTopics(certificationID string) ([]model.Topic, error) {
	cert, err := s.CertRepo.FindByID(certificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCertificationNotFound
		}
		return nil, err
	}
	if !cert.IsActive {
		return nil, util.ErrCertificationNotFound
	}
	return s.CertRepo.ListTopics(cert.ID)
}

// ListTopicQuestions 答题端题目列表，正确答案与解析一律不下发
func (s *ContentService) ListTopicQuestions(topicID string) ([]model.PublicQuestion, error) {
	topic, err := s.CertRepo.FindTopicByID(topicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTopicNotFound
		}
		return nil, err
	}
	if !topic.IsActive {
		return nil, util.ErrTopicNotFound
	}

	questions, err := s.QuestionRepo.ListByTopic(topic.ID)
	if err != nil {
		return nil, err
	}

	return model.PublicQuestions(questions), nil
}

// invalidateCatalogCache 管理端目录变更后失效缓存
func (s *ContentService) invalidateCatalogCache() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), catalogCacheKey).Err(); err != nil {
		logger.Log.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

func (s *ContentService) CreateCertification(cert *model.Certification) error {
	if err := s.CertRepo.Create(cert); err != nil {
		return err
	}
	s.invalidateCatalogCache()
	return nil
}

func (s *ContentService) UpdateCertification(cert *model.Certification) error {
	if err := s.CertRepo.Update(cert); err != nil {
		return err
	}
	s.invalidateCatalogCache()
	return nil
}

func (s *ContentService) DeleteCertification(id string) error {
	if err := s.CertRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateCatalogCache()
	return nil
}

func (s *ContentService) GetCertification(id string) (*model.Certification, error) {
	return s.CertRepo.FindByID(id)
}

func (s *ContentService) CreateTopic(topic *model.Topic) error {
	if _, err := s.CertRepo.FindByID(topic.CertificationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCertificationNotFound
		}
		return err
	}
	if err := s.CertRepo.CreateTopic(topic); err != nil {
		return err
	}
	s.invalidateCatalogCache()
	return nil
}

func (s *ContentService) UpdateTopic(topic *model.Topic) error {
	if err := s.CertRepo.UpdateTopic(topic); err != nil {
		return err
	}
	s.invalidateCatalogCache()
	return nil
}

func (s *ContentService) DeleteTopic(id string) error {
	if err := s.CertRepo.DeleteTopic(id); err != nil {
		return err
	}
	s.invalidateCatalogCache()
	return nil
}

func (s *ContentService) GetTopic(id string) (*model.Topic, error) {
	return s.CertRepo.FindTopicByID(id)
}

func (s *ContentService) CreateQuestion(question *model.Question) error {
	topic, err := s.CertRepo.FindTopicByID(question.TopicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrTopicNotFound
		}
		return err
	}
	question.TopicID = topic.ID
	return s.QuestionRepo.Create(question)
}

func (s *ContentService) GetQuestion(id string) (*model.Question, error) {
	return s.QuestionRepo.FindByID(id)
}

func (s *ContentService) UpdateQuestion(question *model.Question) error {
	return s.QuestionRepo.Update(question)
}

func (s *ContentService) DeleteQuestion(id string) error {
	return s.QuestionRepo.Delete(id)
}

// ListQuestionsAdmin 管理端题目列表，含正确答案与解析
func (s *ContentService) ListQuestionsAdmin(topicID string) ([]model.Question, error) {
	return s.QuestionRepo.ListByTopic(topicID)
}
