package repository

import "errors"

// Sentinel errors shared by every repository implementation so callers never
// have to inspect driver-specific errors.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)
