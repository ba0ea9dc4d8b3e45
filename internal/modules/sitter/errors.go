package sitter

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("sitter not found")
	ErrProfileExists = errors.New("sitter profile already exists")
)
