package service

import "errors"

var (
	ErrInvalidOrder   = errors.New("invalid order")
	ErrEmptyUpdate    = errors.New("update body must contain at least one field")
	ErrImmutableField = errors.New("field cannot be updated")
	ErrInvalidField   = errors.New("invalid field value")
)
