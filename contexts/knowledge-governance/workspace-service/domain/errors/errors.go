package errors

import "errors"

var (
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrInvalidRequest    = errors.New("invalid workspace request")
)
