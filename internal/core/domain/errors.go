package domain

import "errors"

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrInvalidPriority    = errors.New("invalid task priority")
	ErrInvalidStatus      = errors.New("invalid task status")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidLogin       = errors.New("invalid login")
	ErrInvalidSession     = errors.New("invalid session")
	ErrMailNotConfigured  = errors.New("mail account is not configured")
	ErrMissingCredentials = errors.New("missing credentials")
)
