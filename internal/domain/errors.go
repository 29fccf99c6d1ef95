package domain

import "errors"

// Error taxonomy shared by services and adapters. Adapters map these to
// transport status codes; services wrap them with context via fmt.Errorf.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrPermission   = errors.New("permission denied")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("already exists")
)
