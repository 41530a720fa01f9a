// Package rasterr defines the closed set of fatal error kinds the asset
// pipeline can raise (spec §7). Every kind halts rendering of the current
// frame; none are recoverable inside the pipeline itself.
package rasterr

import "fmt"

// Kind identifies which of the fatal error categories occurred.
type Kind int

const (
	// AtlasOutOfSpace is raised when the BSP bin packer can't fit a new rasterization.
	AtlasOutOfSpace Kind = iota
	// InvalidStateTransition is raised by an illegal asset status-machine operation.
	InvalidStateTransition
	// WorkerChannelClosed is raised when a job server response channel is disconnected.
	WorkerChannelClosed
	// FontLoadError is raised when a font face fails to open or a glyph fails to load.
	FontLoadError
	// ShaderCompileOrLinkError is raised when GLSL compilation or program linking fails.
	ShaderCompileOrLinkError
)

func (k Kind) String() string {
	switch k {
	case AtlasOutOfSpace:
		return "AtlasOutOfSpace"
	case InvalidStateTransition:
		return "InvalidStateTransition"
	case WorkerChannelClosed:
		return "WorkerChannelClosed"
	case FontLoadError:
		return "FontLoadError"
	case ShaderCompileOrLinkError:
		return "ShaderCompileOrLinkError"
	default:
		return "UnknownKind"
	}
}

// Error is a fatal pipeline error: a kind, the operation that raised it, and
// an optional wrapped cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Op)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error with no wrapped cause.
func New(kind Kind, op string) *Error {
	return &Error{Kind: kind, Op: op}
}

// Wrap builds an Error wrapping an existing cause.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}
