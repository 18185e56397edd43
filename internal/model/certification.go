package model

import (
	"time"

	"gorm.io/gorm"
)

// Certification 认证考试目录项，主键为短 slug（如 "aws-saa"）
// swagger:model Certification
type Certification struct {
	ID          string         `gorm:"primaryKey;size:100" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Provider    string         `gorm:"size:100" json:"provider"`
	Level       string         `gorm:"size:50" json:"level"`
	Order       int            `gorm:"default:0" json:"order"`
	IsActive    bool           `gorm:"default:true" json:"isActive"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Topics []Topic `gorm:"foreignKey:CertificationID" json:"topics,omitempty"`
}

func (Certification) TableName() string {
	return "certifications"
}

// Topic 认证下的主题，主键为 slug（如 "iam"），按 Order 展示
// swagger:model Topic
type Topic struct {
	ID              string         `gorm:"primaryKey;size:100" json:"id"`
	CertificationID string         `gorm:"index;size:100;not null" json:"certificationId"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	Description     string         `gorm:"type:text" json:"description"`
	Order           int            `gorm:"default:0" json:"order"`
	IsActive        bool           `gorm:"default:true" json:"isActive"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Topic) TableName() string {
	return "topics"
}
