package auth

import (
	internaljwt "avatar-widget-backend/internal/jwt"
	"avatar-widget-backend/internal/model"
)

type ErrorCode string

const (
	ErrorCodeValidation   ErrorCode = "validation_error"
	ErrorCodeUnauthorized ErrorCode = "unauthorized"
	ErrorCodeConflict     ErrorCode = "conflict"
	ErrorCodeNotFound     ErrorCode = "not_found"
	ErrorCodeInternal     ErrorCode = "internal_error"
)

type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

type RegisterParams struct {
	SiteID   string
	Email    string
	Name     string
	Password string
}

type LoginParams struct {
	Email    string
	Password string
}

type Identity struct {
	AdminID string
	SiteID  string
	Email   string
}

type AuthResult struct {
	Admin  model.AdminItem
	Tokens internaljwt.TokenResponse
}
