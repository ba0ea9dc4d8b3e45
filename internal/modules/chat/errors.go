package chat

import "errors"

var (
	ErrEmptyBody      = errors.New("message body cannot be empty")
	ErrNotParticipant = errors.New("you are not a participant of this scope")
	ErrScopeNotFound  = errors.New("scope not found")
	ErrValidation     = errors.New("validation error")
)
