package service

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrSelfFollow         = errors.New("users cannot follow themselves")
	ErrAlreadyFollowing   = errors.New("already following this user")
	ErrNotFollowing       = errors.New("not following this user")
	ErrInvalidDifficulty  = errors.New("difficulty must be one of easy, medium, hard")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidImage       = errors.New("invalid image")
	ErrImageTooLarge      = errors.New("image exceeds the size limit")
	ErrStorageDisabled    = errors.New("image storage is not configured")
)
