package models

import "errors"

// Custom errors
var (
	ErrMatchIDRequired     = errors.New("match id is required")
	ErrNotFound            = errors.New("record not found")
	ErrInsufficientBooks   = errors.New("insufficient sportsbook data")
	ErrUnknownAlgorithm    = errors.New("unknown algorithm id")
	ErrStoreFormatMismatch = errors.New("store blob format mismatch")
)
