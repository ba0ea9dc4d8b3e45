package booking

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrForbidden               = errors.New("actor is not allowed to act on this booking")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrInvalidCode             = errors.New("walk code does not match")
	ErrNotFound                = errors.New("booking not found")
)
