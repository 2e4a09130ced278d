package models

import "errors"

var (
	// ErrNotFound is returned when a requested user, content item or plan
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidLevel is returned when a plan level cannot be parsed.
	ErrInvalidLevel = errors.New("invalid plan level")

	// ErrInvalidArgument is returned on malformed caller input, e.g. an
	// empty user id.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInsufficientContent is returned when the catalog cannot supply
	// the full entry count a plan level requires. Plans are never created
	// short.
	ErrInsufficientContent = errors.New("not enough content for plan level")
)
