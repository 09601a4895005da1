package domain

import "errors"

var (
	// ErrSelect is returned when the target directory cannot be listed.
	ErrSelect = errors.New("cannot select files")
	// ErrDecode is returned when a file is not valid UTF-8.
	ErrDecode = errors.New("cannot decode file as UTF-8")
	// ErrWrite is returned when a normalized file cannot be written back.
	ErrWrite = errors.New("cannot write file")
	// ErrInvalidConfig is returned by configuration validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)
