package model

// Question 主题下的单选题。CorrectAnswer 为选项的零基下标，
// CorrectAnswer 与 Explanation 属敏感字段：答题前的题目列表不允许下发
// swagger:model Question
type Question struct {
	UUIDBase
	TopicID       string   `gorm:"index;size:100;not null" json:"topicId"`
	Content       string   `gorm:"type:text;not null" json:"content"`
	Options       []string `gorm:"type:json;serializer:json" json:"options"`
	CorrectAnswer int      `gorm:"not null" json:"correctAnswer"`
	Explanation   string   `gorm:"type:text" json:"explanation"`
	Order         int      `gorm:"default:0" json:"order"`
	IsActive      bool     `gorm:"default:true" json:"isActive"`
}

func (Question) TableName() string {
	return "questions"
}

// PublicQuestion 面向答题端的题目视图，剥离了正确答案与解析
// swagger:model PublicQuestion
type PublicQuestion struct {
	ID      string   `json:"id"`
	TopicID string   `json:"topicId"`
	Content string   `json:"content"`
	Options []string `json:"options"`
	Order   int      `json:"order"`
}

// PublicQuestions 批量剥敏
func PublicQuestions(qs []Question) []PublicQuestion {
	out := make([]PublicQuestion, 0, len(qs))
	for i := range qs {
		out = append(out, qs[i].Public())
	}
	return out
}

// Public 返回剥离敏感字段后的视图
func (q *Question) Public() PublicQuestion {
	return PublicQuestion{
		ID:      q.ID,
		TopicID: q.TopicID,
		Content: q.Content,
		Options: q.Options,
		Order:   q.Order,
	}
}
