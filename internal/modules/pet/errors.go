package pet

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("pet not found")
	ErrForbidden  = errors.New("pet belongs to another owner")
)
