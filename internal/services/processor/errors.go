package processor

import "errors"

// Every error returned by the crop API wraps exactly one of these.
var (
	ErrNotFound     = errors.New("file not found")
	ErrDecode       = errors.New("decode error")
	ErrEmptyContent = errors.New("image is fully transparent")
	ErrEncode       = errors.New("encode error")
)

// Exit codes used by the command line.
const (
	ExitOK = iota
	ExitFailure
	ExitNotFound
	ExitDecode
	ExitEmptyContent
	ExitEncode
)

// Kind returns a stable name for the error kind wrapped by err, or "error"
// when err does not carry one.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrDecode):
		return "decode_error"
	case errors.Is(err, ErrEmptyContent):
		return "empty_content"
	case errors.Is(err, ErrEncode):
		return "encode_error"
	}
	return "error"
}

// ExitCode maps err to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrDecode):
		return ExitDecode
	case errors.Is(err, ErrEmptyContent):
		return ExitEmptyContent
	case errors.Is(err, ErrEncode):
		return ExitEncode
	}
	return ExitFailure
}
