package model

import (
	"encoding/json"
	"strings"
	"testing"
)

// 答题前下发的题目不允许带出正确答案与解析
func TestPublicQuestionHidesAnswer(t *testing.T) {
	q := Question{
		UUIDBase:      UUIDBase{ID: "q1"},
		TopicID:       "iam",
		Content:       "Which IAM entity should EC2 use?",
		Options:       []string{"A", "B", "C", "D"},
		CorrectAnswer: 1,
		Explanation:   "Roles provide temporary credentials.",
		Order:         3,
	}

	pub := q.Public()
	if pub.ID != "q1" || pub.TopicID != "iam" || pub.Content != q.Content || pub.Order != 3 {
		t.Errorf("public view lost fields: %+v", pub)
	}
	if len(pub.Options) != 4 {
		t.Errorf("options must survive, got %d", len(pub.Options))
	}

	raw, err := json.Marshal(pub)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)
	for _, leaked := range []string{"correctAnswer", "explanation", "Roles provide"} {
		if strings.Contains(body, leaked) {
			t.Errorf("public question JSON leaks %q: %s", leaked, body)
		}
	}
}

func TestPublicQuestionsBatch(t *testing.T) {
	qs := []Question{
		{UUIDBase: UUIDBase{ID: "a"}, CorrectAnswer: 2, Explanation: "secret"},
		{UUIDBase: UUIDBase{ID: "b"}, CorrectAnswer: 0, Explanation: "secret"},
	}

	pubs := PublicQuestions(qs)
	if len(pubs) != 2 {
		t.Fatalf("expected 2 public questions, got %d", len(pubs))
	}
	if pubs[0].ID != "a" || pubs[1].ID != "b" {
		t.Errorf("order must be preserved: %+v", pubs)
	}

	if got := PublicQuestions(nil); len(got) != 0 {
		t.Errorf("nil input should yield an empty slice, got %d", len(got))
	}
}
