package errors

import "errors"

var (
	ErrRuleNotFound   = errors.New("governance rule not found for category")
	ErrInvalidRequest = errors.New("invalid governance rule request")
)
