package repository

import (
	"certquiz_backend/internal/model"

	"gorm.io/gorm"
)

type QuizSessionRepository struct {
	DB *gorm.DB
}

func NewQuizSessionRepository(db *gorm.DB) *QuizSessionRepository {
	return &QuizSessionRepository{DB: db}
}

func (r *QuizSessionRepository) Create(session *model.QuizSession) error {
	return r.DB.Create(session).Error
}

func (r *QuizSessionRepository) FindByID(id string) (*model.QuizSession, error) {
	var s model.QuizSession
	err := r.DB.First(&s, "id = ?", id).Error
	return &s, err
}

// FindActiveByUserAndTopic 查找 (用户, 主题) 的活跃会话，最多一条
func (r *QuizSessionRepository) FindActiveByUserAndTopic(userID uint, topicID string) (*model.QuizSession, error) {
	var s model.QuizSession
	err := r.DB.Where("user_id = ? AND topic_id = ? AND is_active = ?", userID, topicID, true).
		Order("started_at desc").
		First(&s).Error
	return &s, err
}

func (r *QuizSessionRepository) Update(session *model.QuizSession) error {
	return r.DB.Save(session).Error
}

func (r *QuizSessionRepository) ListCompletedByUser(userID uint, offset, limit int) ([]model.QuizSession, error) {
	var sessions []model.QuizSession
	query := r.DB.Where("user_id = ? AND is_active = ?", userID, false).
		Order("completed_at desc")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&sessions).Error
	return sessions, err
}

func (r *QuizSessionRepository) CountCompletedByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizSession{}).
		Where("user_id = ? AND is_active = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *QuizSessionRepository) CreateAnswer(answer *model.UserAnswer) error {
	return r.DB.Create(answer).Error
}

// CountAnswers 会话作答条数，作为追加日志游标使用
func (r *QuizSessionRepository) CountAnswers(sessionID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserAnswer{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	return count, err
}

func (r *QuizSessionRepository) ListAnswers(sessionID string) ([]model.UserAnswer, error) {
	var answers []model.UserAnswer
	err := r.DB.Where("session_id = ?", sessionID).
		Order("answered_at asc").
		Find(&answers).Error
	return answers, err
}
