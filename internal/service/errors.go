package service

import "errors"

var (
	ErrUsernameTaken      = errors.New("이미 등록된 아이디입니다.")
	ErrEmailTaken         = errors.New("이미 등록된 이메일입니다.")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInactiveUser       = errors.New("inactive user")
	ErrUserNotFound       = errors.New("user not found")

	ErrSessionNotFound          = errors.New("conversation session not found")
	ErrSessionForbidden         = errors.New("conversation belongs to another user")
	ErrConversationNotCompleted = errors.New("conversation is not completed yet")

	ErrFestivalNotFound = errors.New("festival not found")
)
