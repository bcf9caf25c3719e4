package toon

import "fmt"

// ConfigError reports an invalid Config field. It is returned before
// any encoding or decoding work begins.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("toon: invalid config: %s %s", e.Field, e.Reason)
}

// EncodeErrorCode classifies encoding failures.
type EncodeErrorCode uint8

const (
	EncodeDepthExceeded EncodeErrorCode = iota + 1
	EncodeUnsupportedNumber
)

// String returns the code name.
func (c EncodeErrorCode) String() string {
	switch c {
	case EncodeDepthExceeded:
		return "depth exceeded"
	case EncodeUnsupportedNumber:
		return "unsupported number"
	default:
		return "unknown"
	}
}

// EncodeError is a typed encoding failure.
type EncodeError struct {
	Code EncodeErrorCode
	Msg  string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("toon: encode: %s: %s", e.Code, e.Msg)
}

// DecodeErrorCode classifies decoding failures.
type DecodeErrorCode uint8

const (
	DecodeUnexpectedIndentation DecodeErrorCode = iota + 1
	DecodeColumnMismatch
	DecodeUnterminatedQuote
	DecodeUnterminatedBracket
	DecodeUnknownLineForm
	DecodeDepthExceeded
)

// String returns the code name.
func (c DecodeErrorCode) String() string {
	switch c {
	case DecodeUnexpectedIndentation:
		return "unexpected indentation"
	case DecodeColumnMismatch:
		return "column mismatch"
	case DecodeUnterminatedQuote:
		return "unterminated quote"
	case DecodeUnterminatedBracket:
		return "unterminated bracket"
	case DecodeUnknownLineForm:
		return "unknown line form"
	case DecodeDepthExceeded:
		return "depth exceeded"
	default:
		return "unknown"
	}
}

// DecodeError is a typed decoding failure with the 1-based source line.
type DecodeError struct {
	Code DecodeErrorCode
	Line int
	Msg  string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("toon: decode: line %d: %s: %s", e.Line, e.Code, e.Msg)
}

func decodeErrf(code DecodeErrorCode, line int, format string, args ...interface{}) *DecodeError {
	return &DecodeError{Code: code, Line: line, Msg: fmt.Sprintf(format, args...)}
}
