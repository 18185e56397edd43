package repository

import (
	"certquiz_backend/internal/model"

	"gorm.io/gorm"
)

type CertificationRepository struct {
	DB *gorm.DB
}

func NewCertificationRepository(db *gorm.DB) *CertificationRepository {
	return &CertificationRepository{DB: db}
}

func (r *CertificationRepository) ListActive() ([]model.Certification, error) {
	var certs []model.Certification
	err := r.DB.Where("is_active = ?", true).
		Preload("Topics", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("`order` asc")
		}).
		Order("`order` asc").
		Find(&certs).Error
	return certs, err
}

func (r *CertificationRepository) List() ([]model.Certification, error) {
	var certs []model.Certification
	err := r.DB.Order("`order` asc").Find(&certs).Error
	return certs, err
}

func (r *CertificationRepository) FindByID(id string) (*model.Certification, error) {
	var cert model.Certification
	err := r.DB.First(&cert, "id = ?", id).Error
	return &cert, err
}

func (r *CertificationRepository) Create(cert *model.Certification) error {
	return r.DB.Create(cert).Error
}

func (r *CertificationRepository) Update(cert *model.Certification) error {
	return r.DB.Save(cert).Error
}

func (r *CertificationRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var topicIDs []string
		if err := tx.Model(&model.Topic{}).Where("certification_id = ?", id).Pluck("id", &topicIDs).Error; err != nil {
			return err
		}
		if len(topicIDs) > 0 {
			if err := tx.Where("topic_id IN ?", topicIDs).Delete(&model.Question{}).Error; err != nil {
				return err
			}
			if err := tx.Where("certification_id = ?", id).Delete(&model.Topic{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Certification{}, "id = ?", id).Error
	})
}

func (r *CertificationRepository) ListTopics(certificationID string) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Where("certification_id = ? AND is_active = ?", certificationID, true).
		Order("`order` asc").
		Find(&topics).Error
	return topics, err
}

func (r *CertificationRepository) FindTopicByID(id string) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.First(&topic, "id = ?", id).Error
	return &topic, err
}

func (r *CertificationRepository) CreateTopic(topic *model.Topic) error {
	return r.DB.Create(topic).Error
}

func (r *CertificationRepository) UpdateTopic(topic *model.Topic) error {
	return r.DB.Save(topic).Error
}

func (r *CertificationRepository) DeleteTopic(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("topic_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Topic{}, "id = ?", id).Error
	})
}
