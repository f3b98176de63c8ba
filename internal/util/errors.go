package util

import "errors"

var (
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidLanguage    = errors.New("unsupported language")
	ErrInvalidWeek        = errors.New("week out of range")
	ErrInvalidChapter     = errors.New("unknown chapter")
	ErrUnknownProvider    = errors.New("unknown provider")

	ErrInvalidExplainRequest = errors.New("invalid explain request")
)
