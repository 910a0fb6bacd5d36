package flow

import (
	"fmt"

	"github.com/elishacook/microfun/internal/errors"
)

// Sentinel errors. Errors returned by this package carry the same codes, so
// compare them with errors.Is.
var (
	// ErrInvalidCommandResult is raised when a command returns a thenable
	// that cannot be awaited.
	ErrInvalidCommandResult = errors.New("E001")

	// ErrRenderTarget wraps errors returned by a Target while drawing.
	ErrRenderTarget = errors.New("E002")

	// ErrLoopClosed is returned by Loop.Post after the loop has stopped.
	ErrLoopClosed = errors.New("E003")

	// ErrQueueFull is returned by Loop.Post when the queue has no room.
	ErrQueueFull = errors.New("E004")
)

func invalidCommandResult(result any) error {
	return errors.New("E001").
		WithDetail(fmt.Sprintf("The command returned a nil %T.", result)).
		WithSuggestion("Return nil from the command and call done, or return a non-nil future.")
}

func renderTargetError(err error) error {
	return errors.New("E002").Wrap(err)
}
