package loader

import (
	"errors"
	"fmt"
)

var (
	ErrNoLocaleDirs     = errors.New("loader: no locale directories configured")
	ErrUnknownStructure = errors.New("loader: unknown directory structure")
)

// FileError is a locale file that could not be read or parsed. It is
// reported and skipped; the rest of the files still merge.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }
