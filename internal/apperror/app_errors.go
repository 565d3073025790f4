package apperror

import "errors"

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrInvalidCell     = errors.New("invalid cell index")
	ErrSessionRequired = errors.New("session id is required")
	ErrStorageDisabled = errors.New("storage is disabled")
)
