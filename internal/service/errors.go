package service

import "errors"

// Request-level failures. Handlers map these onto HTTP status codes; anything
// not wrapping one of them is a storage failure.
var (
	ErrValidation         = errors.New("invalid request")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("invalid or expired token")
	ErrAdminRequired      = errors.New("admin access required")
	ErrForbidden          = errors.New("forbidden: you do not have permission for this action")
	ErrUserAlreadyExists  = errors.New("phone number already exists")
	ErrAdminAlreadyExists = errors.New("admin login already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoticeNotFound     = errors.New("notice not found")
	ErrInvalidTransition  = errors.New("only notices in process can be completed")
)
