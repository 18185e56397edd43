package model

// UserProgress 每个 (用户, 主题) 一行的累计进度。BestScore 单调不减
// （取历史最大值），TimeSpent 跨会话累加
// swagger:model UserProgress
type UserProgress struct {
	BaseModel
	UserID             uint   `gorm:"uniqueIndex:idx_user_topic;type:bigint unsigned;not null" json:"userId"`
	TopicID            string `gorm:"uniqueIndex:idx_user_topic;size:100;not null" json:"topicId"`
	CertificationID    string `gorm:"index;size:100;not null" json:"certificationId"`
	TotalQuestions     int    `gorm:"default:0" json:"totalQuestions"`
	CompletedQuestions int    `gorm:"default:0" json:"completedQuestions"`
	CorrectAnswers     int    `gorm:"default:0" json:"correctAnswers"`
	BestScore          int    `gorm:"default:0" json:"bestScore"`
	LastQuestionIndex  int    `gorm:"default:0" json:"lastQuestionIndex"`
	IsCompleted        bool   `gorm:"default:false" json:"isCompleted"`
	TimeSpent          int    `gorm:"default:0" json:"timeSpent"` // 秒，跨会话累计
}

func (UserProgress) TableName() string {
	return "user_progress"
}
