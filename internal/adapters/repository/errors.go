package repository

import "errors"

// Sentinel kinds for roster errors.
var (
	ErrNotFound    = errors.New("not found")
	ErrStaleRating = errors.New("rating changed since the change was computed")
	ErrRosterFile  = errors.New("invalid roster file")
)
