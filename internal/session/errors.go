package session

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// ErrorKind classifies navigation failures.
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindNotFound
	KindNotADirectory
	KindPermissionDenied
)

// Sentinels matched by errors.Is against *Error.
var (
	ErrNotFound         = errors.New("path does not exist")
	ErrNotADirectory    = errors.New("not a directory")
	ErrPermissionDenied = errors.New("permission denied")
	ErrOther            = errors.New("filesystem error")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindNotADirectory:
		return ErrNotADirectory
	case KindPermissionDenied:
		return ErrPermissionDenied
	default:
		return ErrOther
	}
}

func (k ErrorKind) String() string {
	return k.sentinel().Error()
}

// Error is the only error type returned by Session operations. Accessor
// errors are wrapped in Err.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Kind == KindOther && e.Err != nil {
		return fmt.Sprintf("cannot open %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Path)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// IsNotADirectory reports whether err routes a file path to the detail
// view and returns that path.
func IsNotADirectory(err error) (string, bool) {
	var serr *Error
	if errors.As(err, &serr) && serr.Kind == KindNotADirectory {
		return serr.Path, true
	}
	return "", false
}

func classify(path string, err error) *Error {
	if err == nil {
		return nil
	}
	kind := KindOther
	switch {
	case errors.Is(err, os.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		// "/dir/file.txt/x" runs through a file; nothing exists there.
		kind = KindNotFound
	case errors.Is(err, os.ErrPermission):
		kind = KindPermissionDenied
	}
	return &Error{Kind: kind, Path: path, Err: err}
}
