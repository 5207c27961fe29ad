package render

import (
	"errors"
	"fmt"
)

// ErrTemplateNotFound indicates the receipt template does not exist.
var ErrTemplateNotFound = errors.New("template not found")

// RenderError represents a failure producing one user's receipt.
type RenderError struct {
	Username string
	Stage    string // "load", "write", "save"
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("receipt for %q failed at %s: %v", e.Username, e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
