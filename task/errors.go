package task

import "errors"

var (
	// ErrInvalidTag is returned when a tag is not "+name" or "-name".
	ErrInvalidTag = errors.New("invalid tag")

	// ErrInvalidRecurrence is returned when a recurrence rule cannot be parsed.
	ErrInvalidRecurrence = errors.New("invalid recurrence")
)
