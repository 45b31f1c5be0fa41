package flash

import "errors"

// Framework error classes. Driver errors match one of these with errors.Is.
var (
	ErrSyntax          = errors.New("flash: command syntax error")
	ErrFail            = errors.New("flash: failed")
	ErrOperUnsupported = errors.New("flash: operation not supported")
	ErrOperationFailed = errors.New("flash: operation failed")
	ErrNoTarget        = errors.New("flash: no target memory access")
)

// Numeric codes of the framework's error convention.
const (
	CodeOK              = 0
	CodeFail            = -4
	CodeCommandSyntax   = -601
	CodeOperationFailed = -902
	CodeOperUnsupported = -907
)

// Code classifies err into the framework's numeric error code.
func Code(err error) int {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrSyntax):
		return CodeCommandSyntax
	case errors.Is(err, ErrOperUnsupported):
		return CodeOperUnsupported
	case errors.Is(err, ErrOperationFailed):
		return CodeOperationFailed
	default:
		return CodeFail
	}
}

// ExitStatus maps err onto a process exit status.
func ExitStatus(err error) int {
	switch Code(err) {
	case CodeOK:
		return 0
	case CodeCommandSyntax:
		return 2
	case CodeOperUnsupported:
		return 3
	case CodeOperationFailed:
		return 4
	default:
		return 1
	}
}
