package errors

import stderrors "errors"

// Error carries a Code alongside a log-oriented message. Fields hold the
// offending input so callers can echo it back.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches another *Error with the same code, so a bare New(code, "")
// works as a sentinel for errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

// New returns an error with code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithFields returns an error that records the input which caused it.
func WithFields(code Code, message string, fields map[string]string) *Error {
	return &Error{Code: code, Message: message, Fields: fields}
}

// Wrap tags cause with code.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf returns the code of the first *Error in err's chain. Nil yields
// the empty code and untagged errors yield CodeUnknown.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// HasCode reports whether err's chain carries code.
func HasCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// FieldOf returns the named field from the first *Error in err's chain.
func FieldOf(err error, name string) string {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Fields[name]
	}
	return ""
}
