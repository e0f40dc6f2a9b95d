package services

import "github.com/pkg/errors"

// Taksonomi error service. Controller memetakan ini ke status HTTP:
// InvalidInput/SessionInvalid -> 400, NotFound -> 404, Conflict -> 409.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrSessionInvalid = errors.New("session invalid")
	ErrConflict       = errors.New("conflict")
)
