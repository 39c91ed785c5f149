package service

import "errors"

var (
	// ErrInvalidAPINum indicates a request naming a malformed API number.
	ErrInvalidAPINum = errors.New("invalid api number")
	// ErrUnsupportedState indicates no collector is configured for the
	// state encoded in the API number.
	ErrUnsupportedState = errors.New("no collector configured for state")
)
