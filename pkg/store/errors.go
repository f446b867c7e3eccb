package store

import "fmt"

// ParseError reports a script file that is missing, unreadable or not a
// valid script document.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse script %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WriteError reports a script file that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write script %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Result is the outcome of a mutating operation. Only Applied changes the
// document; every other result leaves it and the file untouched.
type Result int

const (
	Applied Result = iota
	SceneExists
	SceneNotFound
	IndexOutOfRange
)

// OK reports whether the operation was applied.
func (r Result) OK() bool {
	return r == Applied
}

func (r Result) String() string {
	switch r {
	case Applied:
		return "applied"
	case SceneExists:
		return "scene already exists"
	case SceneNotFound:
		return "scene not found"
	case IndexOutOfRange:
		return "index out of range"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}
