package f28004x

import (
	"errors"
	"fmt"

	"github.com/OpenTraceLab/c2000flash/pkg/flash"
)

// Kind classifies driver errors.
type Kind uint8

const (
	KindSyntax       Kind = iota + 1 // malformed or missing command arguments
	KindValidation                   // COM port pattern mismatch
	KindIO                           // file not readable
	KindResource                     // configuration could not be built
	KindUnsupported                  // direct erase/write
	KindBuild                        // command line exceeds MaxCommandLine
	KindExternalTool                 // programmer exited with nonzero status
)

var kindNames = map[Kind]string{
	KindSyntax:       "syntax error",
	KindValidation:   "validation error",
	KindIO:           "I/O error",
	KindResource:     "resource error",
	KindUnsupported:  "operation unsupported",
	KindBuild:        "build error",
	KindExternalTool: "external tool failure",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// class maps the kind onto the framework's error convention.
func (k Kind) class() error {
	switch k {
	case KindSyntax, KindValidation:
		return flash.ErrSyntax
	case KindUnsupported:
		return flash.ErrOperUnsupported
	case KindExternalTool:
		return flash.ErrOperationFailed
	default:
		return flash.ErrFail
	}
}

// Error is returned by every operation of this package.
type Error struct {
	Kind   Kind
	Msg    string
	Status int   // exit status, KindExternalTool only
	Err    error // underlying cause, if any
}

func (e *Error) Error() string {
	s := DriverName + ": " + e.Msg
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match the framework classes in package flash.
func (e *Error) Is(target error) bool {
	return target == e.Kind.class()
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

func errorf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}
