package gpu

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned for missing asset files and unknown uniform names.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is returned for out-of-range configuration values.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrCompile is wrapped by every CompileError.
	ErrCompile = errors.New("shader compilation failed")
	// ErrLink is wrapped by every LinkError.
	ErrLink = errors.New("program link failed")
	// ErrNotInitialized is returned when an object is used outside its live state.
	ErrNotInitialized = errors.New("not initialized")
)

// CompileError carries the driver's compiler log for one stage.
type CompileError struct {
	Stage Stage
	Path  string
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader %s: %v: %s", e.Stage, e.Path, ErrCompile, e.Log)
}

func (e *CompileError) Unwrap() error { return ErrCompile }

// LinkError carries the driver's linker log.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("%v: %s", ErrLink, e.Log)
}

func (e *LinkError) Unwrap() error { return ErrLink }
