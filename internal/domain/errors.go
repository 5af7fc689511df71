package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrStoreNotFound  = errors.New("store not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidPayload = errors.New("invalid payload")
	ErrNotReady       = errors.New("job not ready")
	ErrUnknownJobKind = errors.New("unknown job kind")
)
