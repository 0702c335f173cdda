// Package ferrors names the error taxonomy of spec §7. These are kinds,
// not concrete types: callers compare with errors.Is against the sentinel
// values below, after wrapping a concrete cause with one of the
// constructor helpers.
package ferrors

import (
	"errors"
	"fmt"
)

var (
	ErrUsage               = errors.New("usage error")
	ErrIO                  = errors.New("io error")
	ErrParse               = errors.New("parse error")
	ErrAlloc               = errors.New("alloc error")
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

type wrapped struct {
	kind error
	msg  string
	err  error
}

func (w *wrapped) Error() string {
	if w.err != nil {
		return fmt.Sprintf("%s: %v", w.msg, w.err)
	}
	return w.msg
}

func (w *wrapped) Unwrap() error {
	if w.err != nil {
		return errors.Join(w.kind, w.err)
	}
	return w.kind
}

func Usagef(format string, args ...any) error {
	return &wrapped{kind: ErrUsage, msg: fmt.Sprintf(format, args...)}
}

func IOf(format string, args ...any) error {
	return &wrapped{kind: ErrIO, msg: fmt.Sprintf(format, args...)}
}

func Parsef(format string, args ...any) error {
	return &wrapped{kind: ErrParse, msg: fmt.Sprintf(format, args...)}
}

func Allocf(format string, args ...any) error {
	return &wrapped{kind: ErrAlloc, msg: fmt.Sprintf(format, args...)}
}

func InvalidConfigf(format string, args ...any) error {
	return &wrapped{kind: ErrInvalidConfiguration, msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a phase name (e.g. "open", "read", "parse rendering
// file") to an underlying cause, for the one-line diagnostics spec §7
// requires on the standard error stream.
func Wrap(kind error, phase string, err error) error {
	return &wrapped{kind: kind, msg: phase, err: err}
}
