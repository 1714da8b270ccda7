package core

import "errors"

var (
	// ErrSessionNotFound is returned when a session id is unknown
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionTerminal is returned when resuming a session that already completed
	ErrSessionTerminal = errors.New("session already completed")

	// ErrNotSuspended is returned when resuming a session that is not awaiting input
	ErrNotSuspended = errors.New("session is not awaiting input")
)
