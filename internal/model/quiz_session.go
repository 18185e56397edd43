package model

import "time"

// QuizSession 一次主题答题会话。CurrentQuestion 不是自增指针，
// 而是按该会话已记录的答题条数推导（见 UserAnswer 的追加日志语义）
// swagger:model QuizSession
type QuizSession struct {
	UUIDBase
	UserID          uint           `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	TopicID         string         `gorm:"index;size:100;not null" json:"topicId"`
	CertificationID string         `gorm:"size:100;not null" json:"certificationId"`
	CurrentQuestion int            `gorm:"default:0" json:"currentQuestion"`
	Answers         map[string]int `gorm:"type:json;serializer:json" json:"answers"`
	StartedAt       time.Time      `json:"startedAt"`
	CompletedAt     *time.Time     `json:"completedAt,omitempty"`
	Score           *int           `json:"score,omitempty"`
	IsActive        bool           `gorm:"index;default:true" json:"isActive"`
}

func (QuizSession) TableName() string {
	return "quiz_sessions"
}
