package model

import "fmt"

// ExitCode is the process exit status of the flashcfg command.
type ExitCode int

func (e ExitCode) String() string {
	return fmt.Sprintf("Exit code %d", e)
}

func (e ExitCode) Error() string {
	return e.String()
}

const (
	NoError ExitCode = iota
	UnknownError
	// KeyNotFound is returned when a requested key or path is absent.
	KeyNotFound
	// MountFailed is returned when the backing filesystem cannot be mounted.
	MountFailed
	// InvalidInput covers unparsable JSON and values that do not match --type.
	InvalidInput
)
