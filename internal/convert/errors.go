// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "fmt"

// FailureKind classifies why a conversion failed.
type FailureKind string

const (
	// FailUnsupported marks a format pair with no registered converter.
	FailUnsupported FailureKind = "unsupported"

	// FailExternalTool marks a subprocess error or missing executable.
	FailExternalTool FailureKind = "external-tool"

	// FailIO marks an unreadable input or unwritable output.
	FailIO FailureKind = "io"
)

// Error is a classified per-file conversion failure. Dispatch converts
// every converter error into one of these; failures are data, never
// control flow past the dispatch boundary.
type Error struct {
	Kind FailureKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func ioErr(path string, err error) *Error {
	return &Error{Kind: FailIO, Path: path, Err: err}
}

func toolErr(path string, err error) *Error {
	return &Error{Kind: FailExternalTool, Path: path, Err: err}
}
