package tiktok

import "errors"

var (
	ErrRateLimited     = errors.New("tiktok: rate limited")
	ErrAuthExpired     = errors.New("tiktok: authentication expired")
	ErrNotFound        = errors.New("tiktok: not found")
	ErrTransient       = errors.New("tiktok: transient network error")
	ErrInvalidResponse = errors.New("tiktok: invalid response")
)
