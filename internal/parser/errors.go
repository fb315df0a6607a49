package parser

import "errors"

var (
	ErrUnsupportedFormat = errors.New("parser: unsupported file format")
	ErrInvalidFile       = errors.New("parser: invalid locale file")
)
