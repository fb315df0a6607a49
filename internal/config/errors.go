package config

import "errors"

var (
	ErrConfigNotFound = errors.New("config: project root not found")
	ErrInvalidConfig  = errors.New("config: invalid configuration")
)
