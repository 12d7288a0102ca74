package script

import (
	"errors"
	"fmt"
)

// ErrEngineClosed is returned when a closed engine is used.
var ErrEngineClosed = errors.New("script engine is closed")

// ScriptError wraps a failure raised while running a script.
type ScriptError struct {
	Path string
	Err  error
}

func (e *ScriptError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("script error: %v", e.Err)
	}
	return fmt.Sprintf("script error in %s: %v", e.Path, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}
