package service

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"testing"
	"time"

	"certquiz_backend/internal/model"
	"certquiz_backend/internal/util"
	"certquiz_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// 内存版存储实现，行为对齐 repository 层：未命中返回 gorm.ErrRecordNotFound

type fakeTopicStore struct {
	topics map[string]*model.Topic
}

func (f *fakeTopicStore) FindTopicByID(id string) (*model.Topic, error) {
	if t, ok := f.topics[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeQuestionStore struct {
	questions map[string]*model.Question
}

func (f *fakeQuestionStore) FindByID(id string) (*model.Question, error) {
	if q, ok := f.questions[id]; ok {
		return q, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeSessionStore struct {
	sessions map[string]*model.QuizSession
	answers  []model.UserAnswer
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*model.QuizSession{}}
}

func (f *fakeSessionStore) Create(session *model.QuizSession) error {
	if session.ID == "" {
		session.ID = model.GenerateUUID()
	}
	cp := *session
	f.sessions[session.ID] = &cp
	return nil
}

func (f *fakeSessionStore) FindByID(id string) (*model.QuizSession, error) {
	if s, ok := f.sessions[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSessionStore) FindActiveByUserAndTopic(userID uint, topicID string) (*model.QuizSession, error) {
	for _, s := range f.sessions {
		if s.UserID == userID && s.TopicID == topicID && s.IsActive {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSessionStore) Update(session *model.QuizSession) error {
	if _, ok := f.sessions[session.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *session
	f.sessions[session.ID] = &cp
	return nil
}

func (f *fakeSessionStore) ListCompletedByUser(userID uint, offset, limit int) ([]model.QuizSession, error) {
	var out []model.QuizSession
	for _, s := range f.sessions {
		if s.UserID == userID && !s.IsActive {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CompletedAt.After(*out[j].CompletedAt)
	})
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeSessionStore) CountCompletedByUser(userID uint) (int64, error) {
	var n int64
	for _, s := range f.sessions {
		if s.UserID == userID && !s.IsActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeSessionStore) CreateAnswer(answer *model.UserAnswer) error {
	if answer.ID == "" {
		answer.ID = model.GenerateUUID()
	}
	f.answers = append(f.answers, *answer)
	return nil
}

func (f *fakeSessionStore) CountAnswers(sessionID string) (int64, error) {
	var n int64
	for _, a := range f.answers {
		if a.SessionID == sessionID {
			n++
		}
	}
	return n, nil
}

func (f *fakeSessionStore) ListAnswers(sessionID string) ([]model.UserAnswer, error) {
	var out []model.UserAnswer
	for _, a := range f.answers {
		if a.SessionID == sessionID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeProgressStore struct {
	rows map[string]*model.UserProgress
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{rows: map[string]*model.UserProgress{}}
}

func progressKey(userID uint, topicID string) string {
	return fmt.Sprintf("%d/%s", userID, topicID)
}

func (f *fakeProgressStore) FindByUserAndTopic(userID uint, topicID string) (*model.UserProgress, error) {
	if p, ok := f.rows[progressKey(userID, topicID)]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProgressStore) Create(progress *model.UserProgress) error {
	cp := *progress
	f.rows[progressKey(progress.UserID, progress.TopicID)] = &cp
	return nil
}

func (f *fakeProgressStore) Update(progress *model.UserProgress) error {
	key := progressKey(progress.UserID, progress.TopicID)
	if _, ok := f.rows[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *progress
	f.rows[key] = &cp
	return nil
}

// 固定的测试题库：iam 主题下 4 道题，正确答案依次为 1,2,1,0
func newQuizFixture() (*QuizService, *fakeSessionStore, *fakeProgressStore, []string) {
	topics := &fakeTopicStore{topics: map[string]*model.Topic{
		"iam": {ID: "iam", CertificationID: "aws-saa", Name: "Identity and Access Management", IsActive: true},
		"s3":  {ID: "s3", CertificationID: "aws-saa", Name: "Simple Storage Service", IsActive: true},
		"old": {ID: "old", CertificationID: "aws-saa", Name: "Retired", IsActive: false},
	}}

	questionIDs := []string{"q1", "q2", "q3", "q4"}
	correct := []int{1, 2, 1, 0}
	questions := &fakeQuestionStore{questions: map[string]*model.Question{}}
	for i, id := range questionIDs {
		questions.questions[id] = &model.Question{
			UUIDBase:      model.UUIDBase{ID: id},
			TopicID:       "iam",
			Content:       "question " + id,
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: correct[i],
			Explanation:   "explanation " + id,
			IsActive:      true,
		}
	}
	questions.questions["s3q1"] = &model.Question{
		UUIDBase:      model.UUIDBase{ID: "s3q1"},
		TopicID:       "s3",
		Options:       []string{"A", "B"},
		CorrectAnswer: 0,
		IsActive:      true,
	}
	questions.questions["retired"] = &model.Question{
		UUIDBase:      model.UUIDBase{ID: "retired"},
		TopicID:       "iam",
		Options:       []string{"A", "B"},
		CorrectAnswer: 0,
		IsActive:      false,
	}

	sessions := newFakeSessionStore()
	progress := newFakeProgressStore()
	return NewQuizService(topics, questions, sessions, progress), sessions, progress, questionIDs
}

func TestStartSession(t *testing.T) {
	svc, _, _, _ := newQuizFixture()

	t.Run("创建新会话", func(t *testing.T) {
		session, created, err := svc.StartSession(1, "iam")
		if err != nil {
			t.Fatalf("StartSession: %v", err)
		}
		if !created {
			t.Error("expected created=true for first start")
		}
		if session.ID == "" {
			t.Error("expected session ID to be assigned")
		}
		if session.CurrentQuestion != 0 {
			t.Errorf("expected cursor 0, got %d", session.CurrentQuestion)
		}
		if session.CertificationID != "aws-saa" {
			t.Errorf("expected certification aws-saa, got %s", session.CertificationID)
		}
		if !session.IsActive {
			t.Error("new session should be active")
		}
	})

	t.Run("重复开始返回同一会话", func(t *testing.T) {
		first, _, err := svc.StartSession(2, "iam")
		if err != nil {
			t.Fatalf("StartSession: %v", err)
		}
		second, created, err := svc.StartSession(2, "iam")
		if err != nil {
			t.Fatalf("StartSession again: %v", err)
		}
		if created {
			t.Error("expected created=false when an active session exists")
		}
		if second.ID != first.ID {
			t.Errorf("expected same session %s, got %s", first.ID, second.ID)
		}
	})

	t.Run("不同用户互不影响", func(t *testing.T) {
		a, _, _ := svc.StartSession(3, "iam")
		b, created, _ := svc.StartSession(4, "iam")
		if !created {
			t.Error("expected a fresh session for the second user")
		}
		if a.ID == b.ID {
			t.Error("sessions of different users must not collide")
		}
	})

	t.Run("主题不存在或已下线", func(t *testing.T) {
		if _, _, err := svc.StartSession(1, "nope"); !errors.Is(err, util.ErrTopicNotFound) {
			t.Errorf("expected ErrTopicNotFound, got %v", err)
		}
		if _, _, err := svc.StartSession(1, "old"); !errors.Is(err, util.ErrTopicNotFound) {
			t.Errorf("expected ErrTopicNotFound for inactive topic, got %v", err)
		}
	})
}

func TestSubmitAnswer(t *testing.T) {
	t.Run("正误判定与即时反馈", func(t *testing.T) {
		svc, _, _, _ := newQuizFixture()
		session, _, _ := svc.StartSession(1, "iam")

		res, err := svc.SubmitAnswer(1, session.ID, "q1", 1, 12)
		if err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
		if !res.IsCorrect {
			t.Error("option 1 is the correct answer for q1")
		}
		if res.CorrectAnswer != 1 {
			t.Errorf("expected correctAnswer 1, got %d", res.CorrectAnswer)
		}
		if res.Explanation != "explanation q1" {
			t.Errorf("unexpected explanation %q", res.Explanation)
		}

		res, err = svc.SubmitAnswer(1, session.ID, "q2", 0, 8)
		if err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
		if res.IsCorrect {
			t.Error("option 0 is wrong for q2")
		}
	})

	t.Run("游标等于已作答条数", func(t *testing.T) {
		svc, _, _, _ := newQuizFixture()
		session, _, _ := svc.StartSession(1, "iam")

		res, _ := svc.SubmitAnswer(1, session.ID, "q1", 1, 5)
		if res.Session.CurrentQuestion != 1 {
			t.Errorf("expected cursor 1, got %d", res.Session.CurrentQuestion)
		}
		res, _ = svc.SubmitAnswer(1, session.ID, "q2", 2, 5)
		if res.Session.CurrentQuestion != 2 {
			t.Errorf("expected cursor 2, got %d", res.Session.CurrentQuestion)
		}
		// 重复作答同一题：追加记录，游标继续反映总条数
		res, _ = svc.SubmitAnswer(1, session.ID, "q1", 0, 5)
		if res.Session.CurrentQuestion != 3 {
			t.Errorf("expected cursor 3 after re-answer, got %d", res.Session.CurrentQuestion)
		}
		if res.Session.Answers["q1"] != 0 {
			t.Errorf("latest selection should win in the answers map, got %d", res.Session.Answers["q1"])
		}
	})

	t.Run("负耗时按 0 记录", func(t *testing.T) {
		svc, sessions, _, _ := newQuizFixture()
		session, _, _ := svc.StartSession(1, "iam")

		if _, err := svc.SubmitAnswer(1, session.ID, "q1", 1, -30); err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
		answers, _ := sessions.ListAnswers(session.ID)
		if len(answers) != 1 || answers[0].TimeSpent != 0 {
			t.Errorf("negative timeSpent should be stored as 0, got %+v", answers)
		}
	})

	t.Run("参数与归属校验", func(t *testing.T) {
		svc, _, _, _ := newQuizFixture()
		session, _, _ := svc.StartSession(1, "iam")

		if _, err := svc.SubmitAnswer(2, session.ID, "q1", 1, 5); !errors.Is(err, util.ErrPermissionDenied) {
			t.Errorf("expected ErrPermissionDenied for foreign session, got %v", err)
		}
		if _, err := svc.SubmitAnswer(1, "missing", "q1", 1, 5); !errors.Is(err, util.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
		if _, err := svc.SubmitAnswer(1, session.ID, "missing", 1, 5); !errors.Is(err, util.ErrQuestionNotFound) {
			t.Errorf("expected ErrQuestionNotFound, got %v", err)
		}
		if _, err := svc.SubmitAnswer(1, session.ID, "retired", 0, 5); !errors.Is(err, util.ErrQuestionNotFound) {
			t.Errorf("expected ErrQuestionNotFound for inactive question, got %v", err)
		}
		if _, err := svc.SubmitAnswer(1, session.ID, "s3q1", 0, 5); !errors.Is(err, util.ErrQuestionTopicMismatch) {
			t.Errorf("expected ErrQuestionTopicMismatch, got %v", err)
		}
		if _, err := svc.SubmitAnswer(1, session.ID, "q1", 4, 5); !errors.Is(err, util.ErrAnswerOutOfRange) {
			t.Errorf("expected ErrAnswerOutOfRange for index 4, got %v", err)
		}
		if _, err := svc.SubmitAnswer(1, session.ID, "q1", -1, 5); !errors.Is(err, util.ErrAnswerOutOfRange) {
			t.Errorf("expected ErrAnswerOutOfRange for index -1, got %v", err)
		}
	})
}

func TestCompleteSession(t *testing.T) {
	t.Run("四题对三得 75 分", func(t *testing.T) {
		svc, _, _, qids := newQuizFixture()
		session, _, _ := svc.StartSession(1, "iam")

		// q1..q3 答对，q4 答错
		svc.SubmitAnswer(1, session.ID, qids[0], 1, 10)
		svc.SubmitAnswer(1, session.ID, qids[1], 2, 10)
		svc.SubmitAnswer(1, session.ID, qids[2], 1, 10)
		svc.SubmitAnswer(1, session.ID, qids[3], 3, 10)

		result, err := svc.CompleteSession(1, session.ID)
		if err != nil {
			t.Fatalf("CompleteSession: %v", err)
		}
		if result.Score != 75 {
			t.Errorf("expected score 75, got %d", result.Score)
		}
		if result.CorrectCount != 3 || result.TotalQuestions != 4 {
			t.Errorf("expected 3/4 correct, got %d/%d", result.CorrectCount, result.TotalQuestions)
		}
		if result.Session.IsActive {
			t.Error("completed session must be inactive")
		}
		if result.Session.CompletedAt == nil || result.Session.Score == nil {
			t.Fatal("completedAt and score must be set")
		}
		if *result.Session.Score != 75 {
			t.Errorf("persisted score mismatch: %d", *result.Session.Score)
		}
	})

	t.Run("零作答得 0 分不报错", func(t *testing.T) {
		svc, _, _, _ := newQuizFixture()
		session, _, _ := svc.StartSession(1, "iam")

		result, err := svc.CompleteSession(1, session.ID)
		if err != nil {
			t.Fatalf("CompleteSession: %v", err)
		}
		if result.Score != 0 || result.TotalQuestions != 0 {
			t.Errorf("expected empty summary, got score=%d total=%d", result.Score, result.TotalQuestions)
		}
	})

	t.Run("重复结算幂等", func(t *testing.T) {
		svc, _, progress, qids := newQuizFixture()
		session, _, _ := svc.StartSession(1, "iam")
		svc.SubmitAnswer(1, session.ID, qids[0], 1, 30)

		first, err := svc.CompleteSession(1, session.ID)
		if err != nil {
			t.Fatalf("CompleteSession: %v", err)
		}
		second, err := svc.CompleteSession(1, session.ID)
		if err != nil {
			t.Fatalf("second CompleteSession: %v", err)
		}
		if second.Score != first.Score {
			t.Errorf("idempotent completion should return stored score %d, got %d", first.Score, second.Score)
		}
		// 汇总各字段必须出自同一份作答快照
		if second.CorrectCount != first.CorrectCount || second.TotalQuestions != first.TotalQuestions {
			t.Errorf("repeated completion drifted: first %d/%d, second %d/%d",
				first.CorrectCount, first.TotalQuestions, second.CorrectCount, second.TotalQuestions)
		}
		// 进度只折叠一次：耗时不翻倍
		p, err := progress.FindByUserAndTopic(1, "iam")
		if err != nil {
			t.Fatalf("progress row missing: %v", err)
		}
		if p.TimeSpent != 30 {
			t.Errorf("progress folded twice, timeSpent=%d", p.TimeSpent)
		}
	})

	t.Run("结算后不再接收作答", func(t *testing.T) {
		svc, sessions, _, qids := newQuizFixture()
		session, _, _ := svc.StartSession(1, "iam")
		svc.SubmitAnswer(1, session.ID, qids[0], 1, 10)

		if _, err := svc.CompleteSession(1, session.ID); err != nil {
			t.Fatalf("CompleteSession: %v", err)
		}
		if _, err := svc.SubmitAnswer(1, session.ID, qids[1], 2, 10); !errors.Is(err, util.ErrSessionCompleted) {
			t.Errorf("expected ErrSessionCompleted, got %v", err)
		}
		// 作答日志保持结算时的快照
		answers, _ := sessions.ListAnswers(session.ID)
		if len(answers) != 1 {
			t.Errorf("answer log must not grow after completion, got %d rows", len(answers))
		}
	})

	t.Run("越权结算被拒", func(t *testing.T) {
		svc, _, _, _ := newQuizFixture()
		session, _, _ := svc.StartSession(1, "iam")
		if _, err := svc.CompleteSession(9, session.ID); !errors.Is(err, util.ErrPermissionDenied) {
			t.Errorf("expected ErrPermissionDenied, got %v", err)
		}
	})
}

func TestProgressFolding(t *testing.T) {
	svc, _, progress, qids := newQuizFixture()

	// 第一轮：两题对一，得 50 分
	session, _, _ := svc.StartSession(1, "iam")
	svc.SubmitAnswer(1, session.ID, qids[0], 1, 20)
	svc.SubmitAnswer(1, session.ID, qids[1], 0, 25)
	result, err := svc.CompleteSession(1, session.ID)
	if err != nil {
		t.Fatalf("CompleteSession: %v", err)
	}
	if result.Score != 50 {
		t.Fatalf("expected score 50, got %d", result.Score)
	}

	p, err := progress.FindByUserAndTopic(1, "iam")
	if err != nil {
		t.Fatalf("expected progress row after first completion: %v", err)
	}
	if p.BestScore != 50 || p.CorrectAnswers != 1 || p.TimeSpent != 45 || !p.IsCompleted {
		t.Errorf("unexpected first fold: %+v", p)
	}
	if p.CertificationID != "aws-saa" {
		t.Errorf("progress must carry the certification, got %s", p.CertificationID)
	}

	// 第二轮：全错，BestScore 保持 50，耗时继续累加
	session2, created, _ := svc.StartSession(1, "iam")
	if !created || session2.ID == session.ID {
		t.Fatal("expected a fresh session after completion")
	}
	svc.SubmitAnswer(1, session2.ID, qids[0], 0, 15)
	if _, err := svc.CompleteSession(1, session2.ID); err != nil {
		t.Fatalf("CompleteSession: %v", err)
	}

	p, _ = progress.FindByUserAndTopic(1, "iam")
	if p.BestScore != 50 {
		t.Errorf("bestScore must keep the historical max, got %d", p.BestScore)
	}
	if p.TimeSpent != 60 {
		t.Errorf("timeSpent must accumulate across sessions, got %d", p.TimeSpent)
	}

	// 第三轮：全对，BestScore 提升到 100
	session3, _, _ := svc.StartSession(1, "iam")
	for i, qid := range qids {
		correct := []int{1, 2, 1, 0}[i]
		svc.SubmitAnswer(1, session3.ID, qid, correct, 5)
	}
	res3, _ := svc.CompleteSession(1, session3.ID)
	if res3.Score != 100 {
		t.Fatalf("expected perfect score, got %d", res3.Score)
	}
	p, _ = progress.FindByUserAndTopic(1, "iam")
	if p.BestScore != 100 || p.CorrectAnswers != 4 {
		t.Errorf("unexpected final fold: %+v", p)
	}
}

func TestGetSessionAndHistory(t *testing.T) {
	svc, _, _, qids := newQuizFixture()
	session, _, _ := svc.StartSession(1, "iam")

	got, err := svc.GetSession(1, session.ID)
	if err != nil || got.ID != session.ID {
		t.Fatalf("GetSession: %v", err)
	}
	if _, err := svc.GetSession(2, session.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
	if _, err := svc.GetSession(1, "missing"); !errors.Is(err, util.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}

	history, total, _ := svc.History(1, 1, 10)
	if len(history) != 0 || total != 0 {
		t.Fatalf("active session must not appear in history, got %d (total %d)", len(history), total)
	}

	svc.SubmitAnswer(1, session.ID, qids[0], 1, 5)
	if _, err := svc.CompleteSession(1, session.ID); err != nil {
		t.Fatalf("CompleteSession: %v", err)
	}

	history, total, _ = svc.History(1, 1, 10)
	if len(history) != 1 || total != 1 {
		t.Fatalf("expected 1 completed session in history, got %d (total %d)", len(history), total)
	}
	if history[0].CompletedAt == nil {
		t.Error("history entries must carry completedAt")
	}
	if time.Since(*history[0].CompletedAt) > time.Minute {
		t.Error("completedAt should be recent")
	}
}

func TestHistoryPagination(t *testing.T) {
	svc, _, _, qids := newQuizFixture()

	// 连续完成 3 个会话
	for i := 0; i < 3; i++ {
		session, _, err := svc.StartSession(1, "iam")
		if err != nil {
			t.Fatalf("StartSession %d: %v", i, err)
		}
		svc.SubmitAnswer(1, session.ID, qids[0], 1, 5)
		if _, err := svc.CompleteSession(1, session.ID); err != nil {
			t.Fatalf("CompleteSession %d: %v", i, err)
		}
		time.Sleep(time.Millisecond)
	}

	first, total, err := svc.History(1, 1, 2)
	if err != nil {
		t.Fatalf("History page 1: %v", err)
	}
	if total != 3 || len(first) != 2 {
		t.Fatalf("expected total 3 with 2 rows on page 1, got total=%d rows=%d", total, len(first))
	}

	second, total, err := svc.History(1, 2, 2)
	if err != nil {
		t.Fatalf("History page 2: %v", err)
	}
	if total != 3 || len(second) != 1 {
		t.Fatalf("expected total 3 with 1 row on page 2, got total=%d rows=%d", total, len(second))
	}

	// 倒序且不重复
	if !first[0].CompletedAt.After(*second[0].CompletedAt) {
		t.Error("history must be ordered newest first")
	}
	seen := map[string]bool{first[0].ID: true, first[1].ID: true}
	if seen[second[0].ID] {
		t.Error("pages must not overlap")
	}

	// 非法分页参数回退默认值
	all, total, err := svc.History(1, 0, -5)
	if err != nil {
		t.Fatalf("History with bad params: %v", err)
	}
	if total != 3 || len(all) != 3 {
		t.Errorf("expected defaults to return all 3 rows, got total=%d rows=%d", total, len(all))
	}
}

func TestActiveSession(t *testing.T) {
	svc, _, _, qids := newQuizFixture()

	if _, err := svc.ActiveSession(1, "iam"); !errors.Is(err, util.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound before start, got %v", err)
	}

	session, _, _ := svc.StartSession(1, "iam")
	got, err := svc.ActiveSession(1, "iam")
	if err != nil {
		t.Fatalf("ActiveSession: %v", err)
	}
	if got.ID != session.ID {
		t.Errorf("expected active session %s, got %s", session.ID, got.ID)
	}

	// 别的用户看不到
	if _, err := svc.ActiveSession(2, "iam"); !errors.Is(err, util.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound for another user, got %v", err)
	}

	// 结算后不再是活跃会话
	svc.SubmitAnswer(1, session.ID, qids[0], 1, 5)
	if _, err := svc.CompleteSession(1, session.ID); err != nil {
		t.Fatalf("CompleteSession: %v", err)
	}
	if _, err := svc.ActiveSession(1, "iam"); !errors.Is(err, util.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after completion, got %v", err)
	}
}
