package database

import "errors"

var (
	ErrPhotoLimit       = errors.New("photo limit reached")
	ErrSelfSwipe        = errors.New("cannot swipe on yourself")
	ErrInvalidDirection = errors.New("direction must be left or right")
)
