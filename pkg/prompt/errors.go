package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNilForm is returned when Run is called without a form.
	ErrNilForm = errors.New("prompt: form is nil")
	// ErrTooManyAttempts is returned when a field is still invalid after the
	// configured number of attempts.
	ErrTooManyAttempts = errors.New("prompt: too many invalid attempts")
)
