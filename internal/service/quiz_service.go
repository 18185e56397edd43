package service

import (
	"certquiz_backend/internal/model"
	"certquiz_backend/internal/util"
	"certquiz_backend/pkg/logger"
	"certquiz_backend/pkg/monitoring"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TopicStore / QuestionStore / SessionStore / ProgressStore 是答题引擎依赖的
// 存储接口，由 repository 层实现，测试中可替换为内存实现
type TopicStore interface {
	FindTopicByID(id string) (*model.Topic, error)
}

type QuestionStore interface {
	FindByID(id string) (*model.Question, error)
}

type SessionStore interface {
	Create(session *model.QuizSession) error
	FindByID(id string) (*model.QuizSession, error)
	FindActiveByUserAndTopic(userID uint, topicID string) (*model.QuizSession, error)
	Update(session *model.QuizSession) error
	ListCompletedByUser(userID uint, offset, limit int) ([]model.QuizSession, error)
	CountCompletedByUser(userID uint) (int64, error)
	CreateAnswer(answer *model.UserAnswer) error
	CountAnswers(sessionID string) (int64, error)
	ListAnswers(sessionID string) ([]model.UserAnswer, error)
}

type ProgressStore interface {
	FindByUserAndTopic(userID uint, topicID string) (*model.UserProgress, error)
	Create(progress *model.UserProgress) error
	Update(progress *model.UserProgress) error
}

// QuizService 驱动一次主题答题会话：开始、逐题作答、完成并把成绩
// 折叠进 (用户, 主题) 的累计进度
type QuizService struct {
	Topics    TopicStore
	Questions QuestionStore
	Sessions  SessionStore
	Progress  ProgressStore
}

func NewQuizService(topics TopicStore, questions QuestionStore, sessions SessionStore, progress ProgressStore) *QuizService {
	return &QuizService{
		Topics:    topics,
		Questions: questions,
		Sessions:  sessions,
		Progress:  progress,
	}
}

// AnswerResult 提交答案后的即时反馈，提交后无条件下发正确答案与解析
type AnswerResult struct {
	IsCorrect     bool               `json:"isCorrect"`
	CorrectAnswer int                `json:"correctAnswer"`
	Explanation   string             `json:"explanation"`
	Session       *model.QuizSession `json:"session"`
}

// CompletionResult 会话完成汇总
type CompletionResult struct {
	Session        *model.QuizSession `json:"session"`
	Score          int                `json:"score"`
	CorrectCount   int                `json:"correctCount"`
	TotalQuestions int                `json:"totalQuestions"`
	Answers        []model.UserAnswer `json:"answers"`
}

// StartSession 开始或恢复 (用户, 主题) 的答题会话。
// 已有活跃会话时原样返回（created=false），不产生新写入
func (s *QuizService) StartSession(userID uint, topicID string) (*model.QuizSession, bool, error) {
	topic, err := s.Topics.FindTopicByID(topicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, util.ErrTopicNotFound
		}
		return nil, false, err
	}
	if !topic.IsActive {
		return nil, false, util.ErrTopicNotFound
	}

	existing, err := s.Sessions.FindActiveByUserAndTopic(userID, topicID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	session := &model.QuizSession{
		UserID:          userID,
		TopicID:         topic.ID,
		CertificationID: topic.CertificationID,
		CurrentQuestion: 0,
		Answers:         map[string]int{},
		StartedAt:       time.Now(),
		IsActive:        true,
	}
	if err := s.Sessions.Create(session); err != nil {
		return nil, false, err
	}

	monitoring.SessionsStarted.Inc()
	return session, true, nil
}

// SubmitAnswer 记录一次作答。游标取该会话已记录的作答条数，
// 而不是自增，因此重复或乱序提交下游标始终反映总条数
func (s *QuizService) SubmitAnswer(userID uint, sessionID, questionID string, selectedAnswer, timeSpent int) (*AnswerResult, error) {
	session, err := s.Sessions.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	// 已结算的会话不再接收作答，否则既有汇总与作答日志会分叉
	if !session.IsActive {
		return nil, util.ErrSessionCompleted
	}

	question, err := s.Questions.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if !question.IsActive {
		return nil, util.ErrQuestionNotFound
	}
	if question.TopicID != session.TopicID {
		return nil, util.ErrQuestionTopicMismatch
	}
	if selectedAnswer < 0 || selectedAnswer >= len(question.Options) {
		return nil, util.ErrAnswerOutOfRange
	}
	if timeSpent < 0 {
		timeSpent = 0
	}

	isCorrect := selectedAnswer == question.CorrectAnswer

	answer := &model.UserAnswer{
		UserID:         userID,
		QuestionID:     question.ID,
		SessionID:      session.ID,
		SelectedAnswer: selectedAnswer,
		IsCorrect:      isCorrect,
		TimeSpent:      timeSpent,
		AnsweredAt:     time.Now(),
	}
	if err := s.Sessions.CreateAnswer(answer); err != nil {
		return nil, err
	}

	count, err := s.Sessions.CountAnswers(session.ID)
	if err != nil {
		return nil, err
	}

	if session.Answers == nil {
		session.Answers = map[string]int{}
	}
	session.Answers[question.ID] = selectedAnswer
	session.CurrentQuestion = int(count)
	if err := s.Sessions.Update(session); err != nil {
		return nil, err
	}

	if isCorrect {
		monitoring.AnswersSubmitted.WithLabelValues("true").Inc()
	} else {
		monitoring.AnswersSubmitted.WithLabelValues("false").Inc()
	}

	return &AnswerResult{
		IsCorrect:     isCorrect,
		CorrectAnswer: question.CorrectAnswer,
		Explanation:   question.Explanation,
		Session:       session,
	}, nil
}

// CompleteSession 结算会话并更新进度。对已完成的会话返回既有汇总，
// 不重跑聚合，避免 BestScore/TimeSpent 被重复折叠
func (s *QuizService) CompleteSession(userID uint, sessionID string) (*CompletionResult, error) {
	session, err := s.Sessions.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	answers, err := s.Sessions.ListAnswers(session.ID)
	if err != nil {
		return nil, err
	}

	correctCount := 0
	timeSpent := 0
	for _, a := range answers {
		if a.IsCorrect {
			correctCount++
		}
		timeSpent += a.TimeSpent
	}
	totalQuestions := len(answers)

	if !session.IsActive {
		score := 0
		if session.Score != nil {
			score = *session.Score
		}
		return &CompletionResult{
			Session:        session,
			Score:          score,
			CorrectCount:   correctCount,
			TotalQuestions: totalQuestions,
			Answers:        answers,
		}, nil
	}

	// 空会话定义为 0 分，不报错
	score := 0
	if totalQuestions > 0 {
		score = int(math.Round(float64(correctCount) / float64(totalQuestions) * 100))
	}

	now := time.Now()
	session.CompletedAt = &now
	session.Score = &score
	session.IsActive = false
	if err := s.Sessions.Update(session); err != nil {
		return nil, err
	}

	monitoring.SessionsCompleted.Inc()

	// 会话已落库完成，进度折叠失败不回滚，只向上抛内部错误
	if err := s.foldProgress(session, totalQuestions, correctCount, score, timeSpent); err != nil {
		logger.Log.Error("progress upsert failed after session completion",
			zap.String("session_id", session.ID),
			zap.Uint("user_id", session.UserID),
			zap.Error(err))
		return nil, err
	}

	return &CompletionResult{
		Session:        session,
		Score:          score,
		CorrectCount:   correctCount,
		TotalQuestions: totalQuestions,
		Answers:        answers,
	}, nil
}

// foldProgress 把一次已完成会话折叠进 (用户, 主题) 的进度行。
// BestScore 取历史最大值，TimeSpent 跨会话累加
func (s *QuizService) foldProgress(session *model.QuizSession, totalQuestions, correctCount, score, timeSpent int) error {
	progress, err := s.Progress.FindByUserAndTopic(session.UserID, session.TopicID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		progress = &model.UserProgress{
			UserID:             session.UserID,
			TopicID:            session.TopicID,
			CertificationID:    session.CertificationID,
			TotalQuestions:     totalQuestions,
			CompletedQuestions: totalQuestions,
			CorrectAnswers:     correctCount,
			BestScore:          score,
			LastQuestionIndex:  totalQuestions,
			IsCompleted:        true,
			TimeSpent:          timeSpent,
		}
		return s.Progress.Create(progress)
	}

	progress.TotalQuestions = totalQuestions
	progress.CompletedQuestions = totalQuestions
	progress.CorrectAnswers = correctCount
	if score > progress.BestScore {
		progress.BestScore = score
	}
	progress.LastQuestionIndex = totalQuestions
	progress.IsCompleted = true
	progress.TimeSpent += timeSpent
	return s.Progress.Update(progress)
}

// ActiveSession 查询 (用户, 主题) 当前的活跃会话，没有时返回 ErrSessionNotFound
func (s *QuizService) ActiveSession(userID uint, topicID string) (*model.QuizSession, error) {
	session, err := s.Sessions.FindActiveByUserAndTopic(userID, topicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// GetSession 查询会话，仅限本人
func (s *QuizService) GetSession(userID uint, sessionID string) (*model.QuizSession, error) {
	session, err := s.Sessions.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return session, nil
}

// History 已完成会话，按完成时间倒序分页
func (s *QuizService) History(userID uint, page, limit int) ([]model.QuizSession, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	total, err := s.Sessions.CountCompletedByUser(userID)
	if err != nil {
		return nil, 0, err
	}

	sessions, err := s.Sessions.ListCompletedByUser(userID, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}
