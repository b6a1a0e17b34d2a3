package service

import "errors"

// ErrNotStarted is returned by operations that need the worker pool.
var ErrNotStarted = errors.New("service not started")
