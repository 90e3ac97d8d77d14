package domain

import "errors"

// Domain errors
var (
	ErrNoFile      = errors.New("no file provided")
	ErrInvalidFile = errors.New("invalid file")
	ErrJobNotFound = errors.New("job not found")
)
