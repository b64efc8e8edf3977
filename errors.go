package yumlog

import "errors"

// Server errors
var (
	ErrServerAlreadyActive = errors.New("yumlog: server already active")
	ErrServerStartFailed   = errors.New("yumlog: server start failed")
	ErrNegativeDeadline    = errors.New("yumlog: Deadline cannot be negative")
	ErrInvalidStats        = errors.New("yumlog: Stats cannot be negative")
)

// REST/HTTP errors
var (
	ErrNotAuthorized = errors.New("yumlog: request is not authorized")
	ErrEmptyBody     = errors.New("yumlog: empty request body")
)
