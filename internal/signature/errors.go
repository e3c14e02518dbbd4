package signature

import (
	"errors"
	"fmt"
)

// Error codes for key material handling
const (
	ErrCodeInvalidKeyFormat = "INVALID_KEY_FORMAT"
	ErrCodeMissingKey       = "MISSING_KEY"
)

// ErrInvalidKeyFormat is matched by every KeyError raised for malformed hex input
var ErrInvalidKeyFormat = errors.New("invalid key format")

// ErrMissingKey is matched when a signing operation needs a key that was never configured
var ErrMissingKey = errors.New("missing key")

// KeyError represents a failure to decode or use signing key material
type KeyError struct {
	Code    string
	Field   string
	Message string
	Cause   error
}

func (e *KeyError) Error() string {
	if e.Field != "" && e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Code, e.Field, e.Message, e.Cause)
	}
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *KeyError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is match a KeyError against the package sentinels by code
func (e *KeyError) Is(target error) bool {
	switch target {
	case ErrInvalidKeyFormat:
		return e.Code == ErrCodeInvalidKeyFormat
	case ErrMissingKey:
		return e.Code == ErrCodeMissingKey
	}
	return false
}

// NewKeyError creates a new key error
func NewKeyError(code, field, message string, cause error) *KeyError {
	return &KeyError{
		Code:    code,
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}

// ErrBadKeyFormat returns error when a key is not valid hexadecimal text
func ErrBadKeyFormat(field string, cause error) *KeyError {
	return NewKeyError(ErrCodeInvalidKeyFormat, field, "key must be an even-length hexadecimal string", cause)
}

// ErrKeyNotConfigured returns error when a key required for signing is absent
func ErrKeyNotConfigured(keyName string) *KeyError {
	return NewKeyError(ErrCodeMissingKey, keyName, fmt.Sprintf("no %q key configured", keyName), nil)
}
