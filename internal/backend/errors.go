package backend

import "errors"

// Sentinel errors for daemon responses. Wrapped errors carry the
// response body; match with errors.Is.
var (
	ErrUnavailable = errors.New("daemon unreachable")
	ErrBadRequest  = errors.New("daemon rejected request")
	ErrNotFound    = errors.New("not found")
)
