package fluor

import "errors"

var (
	// ErrUnknownKind indicates an unsupported fluorescence model kind.
	ErrUnknownKind = errors.New("fluor: unknown model kind")

	// ErrLineMismatch indicates a line whose inner shell is not the model's subshell.
	ErrLineMismatch = errors.New("fluor: line does not originate from the model subshell")
)
