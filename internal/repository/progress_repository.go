package repository

import (
	"certquiz_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByUserAndTopic(userID uint, topicID string) (*model.UserProgress, error) {
	var p model.UserProgress
	err := r.DB.Where("user_id = ? AND topic_id = ?", userID, topicID).First(&p).Error
	return &p, err
}

func (r *ProgressRepository) Create(progress *model.UserProgress) error {
	return r.DB.Create(progress).Error
}

func (r *ProgressRepository) Update(progress *model.UserProgress) error {
	return r.DB.Save(progress).Error
}

func (r *ProgressRepository) ListByUserAndCertification(userID uint, certificationID string) ([]model.UserProgress, error) {
	var rows []model.UserProgress
	err := r.DB.Where("user_id = ? AND certification_id = ?", userID, certificationID).
		Find(&rows).Error
	return rows, err
}

// LeaderboardEntry 认证排行榜行：用户在该认证下所有主题 BestScore 的均值
type LeaderboardEntry struct {
	UserID       uint    `json:"userId"`
	UserName     string  `json:"userName"`
	AverageScore float64 `json:"averageScore"`
	TopicsDone   int     `json:"topicsDone"`
}

func (r *ProgressRepository) Leaderboard(certificationID string, limit int) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	err := r.DB.Table("user_progress p").
		Select("p.user_id, u.name as user_name, AVG(p.best_score) as average_score, COUNT(*) as topics_done").
		Joins("JOIN users u ON u.id = p.user_id AND u.deleted_at IS NULL").
		Where("p.certification_id = ? AND p.is_completed = ? AND p.deleted_at IS NULL", certificationID, true).
		Group("p.user_id, u.name").
		Order("average_score desc").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}
