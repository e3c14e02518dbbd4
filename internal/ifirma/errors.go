package ifirma

import (
	"errors"
	"fmt"
)

// Vendor response codes
const (
	CodeSuccess              = 0
	CodeBadRequestParameters = 201
	CodeBadRequestStructure  = 400
	// CodeUnknown marks failures that carried no vendor code at all
	CodeUnknown = -1
)

// ErrorKind classifies a failed API call
type ErrorKind string

const (
	KindBadRequestParameters ErrorKind = "BAD_REQUEST_PARAMETERS"
	KindBadRequestStructure  ErrorKind = "BAD_REQUEST_STRUCTURE"
	KindUnknown              ErrorKind = "UNKNOWN"
)

// Sentinels for errors.Is; any APIError of the same kind matches
var (
	ErrBadRequestParameters = &APIError{Kind: KindBadRequestParameters, Code: CodeBadRequestParameters}
	ErrBadRequestStructure  = &APIError{Kind: KindBadRequestStructure, Code: CodeBadRequestStructure}
	ErrUnknown              = &APIError{Kind: KindUnknown, Code: CodeUnknown}
)

// ErrMissingUserKey is returned by subscriber-scoped calls when the client
// was built without a user key
var ErrMissingUserKey = errors.New("ifirma: user key not configured")

// APIError is a failed vendor call with the vendor's code and message
type APIError struct {
	Kind    ErrorKind
	Code    int
	Message string
	Cause   error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request failed"
	}
	if e.Cause != nil {
		return fmt.Sprintf("ifirma [%s/%d]: %s (%v)", e.Kind, e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("ifirma [%s/%d]: %s", e.Kind, e.Code, msg)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// Is matches by kind so callers can test against the package sentinels
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// ErrorFromCode maps a non-zero vendor code to its taxonomy kind
func ErrorFromCode(code int, message string) *APIError {
	kind := KindUnknown
	switch code {
	case CodeBadRequestParameters:
		kind = KindBadRequestParameters
	case CodeBadRequestStructure:
		kind = KindBadRequestStructure
	}
	return &APIError{Kind: kind, Code: code, Message: message}
}

// unknownError wraps transport and decoding failures
func unknownError(message string, cause error) *APIError {
	return &APIError{Kind: KindUnknown, Code: CodeUnknown, Message: message, Cause: cause}
}
