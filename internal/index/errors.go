package index

import "errors"

var (
	ErrKeyNotFound  = errors.New("index: key not found")
	ErrNoDefinition = errors.New("index: definition not found in file")
)
