package util

import "errors"

var (
	ErrUserNotFound          = errors.New("用户不存在")
	ErrEmailRegistered       = errors.New("该邮箱已被注册")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrCertificationNotFound = errors.New("certification not found")
	ErrTopicNotFound         = errors.New("topic not found or inactive")
	ErrQuestionNotFound      = errors.New("question not found or inactive")
	ErrSessionNotFound       = errors.New("quiz session not found")
	ErrSessionCompleted      = errors.New("quiz session already completed")
	ErrQuestionTopicMismatch = errors.New("question does not belong to the session topic")
	ErrAnswerOutOfRange      = errors.New("selected answer index out of range")
)
