package command

import "errors"

// Registry errors.
var (
	// ErrNilEntry is returned when a nil entry is registered.
	ErrNilEntry = errors.New("command entry is nil")

	// ErrEmptyName is returned when an entry has an empty name.
	ErrEmptyName = errors.New("command name is empty")

	// ErrNilProc is returned when an entry has no procedure.
	ErrNilProc = errors.New("command procedure is nil")
)
