package repository

import (
	"certquiz_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, "id = ?", id).Error
	return &q, err
}

// ListByTopic 按主题的自然顺序返回启用的题目，不做乱序
func (r *QuestionRepository) ListByTopic(topicID string) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("topic_id = ? AND is_active = ?", topicID, true).
		Order("`order` asc, created_at asc").
		Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) CountByTopic(topicID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).
		Where("topic_id = ? AND is_active = ?", topicID, true).
		Count(&count).Error
	return count, err
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *QuestionRepository) Delete(id string) error {
	return r.DB.Delete(&model.Question{}, "id = ?", id).Error
}
