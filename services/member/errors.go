package member

import "errors"

var (
	ErrMissingFields      = errors.New("name, email and password are required")
	ErrInvalidEmail       = errors.New("email address is not valid")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrEmailTaken         = errors.New("a member with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMemberNotFound     = errors.New("member not found")
)
