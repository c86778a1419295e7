package entities

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrElementNotVisible matches every *ElementNotVisibleError
	ErrElementNotVisible = errors.New("element not visible")

	// ErrElementNotFound is returned by sessions when a locator matches nothing
	ErrElementNotFound = errors.New("element not found")

	// ErrUnsupportedOperation is returned when an element kind lacks the capability
	ErrUnsupportedOperation = errors.New("operation not supported by element")

	// ErrNoAlert is returned by sessions when no dialog is open
	ErrNoAlert = errors.New("no alert present")
)

// ElementNotVisibleError reports a visibility gate that ran out of time.
// Absent and hidden elements end up here alike.
type ElementNotVisibleError struct {
	Locator  Locator
	Timeout  time.Duration
	Attempts int
}

func (e *ElementNotVisibleError) Error() string {
	return fmt.Sprintf("element has not appeared on the page within %s (%d checks): %s",
		e.Timeout, e.Attempts, e.Locator)
}

func (e *ElementNotVisibleError) Is(target error) bool {
	return target == ErrElementNotVisible
}
