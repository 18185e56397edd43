package model

import "time"

// UserAnswer 单次作答记录，创建后不可变。同一 (session, question) 重复提交
// 会追加新行而不是覆盖，会话进度以行数为准
// swagger:model UserAnswer
type UserAnswer struct {
	UUIDBase
	UserID         uint      `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	QuestionID     string    `gorm:"index;size:36;not null" json:"questionId"`
	SessionID      string    `gorm:"index;size:36;not null" json:"sessionId"`
	SelectedAnswer int       `gorm:"not null" json:"selectedAnswer"`
	IsCorrect      bool      `gorm:"default:false" json:"isCorrect"`
	TimeSpent      int       `gorm:"default:0" json:"timeSpent"` // 秒
	AnsweredAt     time.Time `json:"answeredAt"`
}

func (UserAnswer) TableName() string {
	return "user_answers"
}
