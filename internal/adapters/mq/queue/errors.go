package queue

import "errors"

// Sentinel kinds for queue errors.
var (
	ErrQueueFull   = errors.New("rating job queue full")
	ErrQueueClosed = errors.New("rating job queue closed")
)
