package domain

import (
	"errors"
	"fmt"
)

// Error kinds every failure on the print path resolves to. The API layer maps
// each kind to exactly one HTTP status.
var (
	// ErrValidation is returned when a request is missing a required field
	// or carries a value the printer cannot encode.
	// It is usually reached through a *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidImage is returned when image payload bytes cannot be decoded.
	ErrInvalidImage = errors.New("invalid image data")

	// ErrPrinterUnavailable is returned when no connection to the printer
	// could be established.
	ErrPrinterUnavailable = errors.New("printer not available")

	// ErrTransmission is returned when a command could not be delivered to
	// an already connected printer.
	ErrTransmission = errors.New("printer transmission failed")
)

// ValidationError describes a client-side problem with one request field.
// Message is complete and safe to return to the caller as is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for field. err is an optional
// more specific cause.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// MissingFieldError is the ValidationError returned for an absent or empty
// required field.
func MissingFieldError(field string) *ValidationError {
	return NewValidationError(field, fmt.Sprintf("Missing '%s' parameter", field), nil)
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap exposes both ErrValidation and the optional cause.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Err}
}

// DecodeError reports that an image payload failed at one decoding stage.
type DecodeError struct {
	// Stage is "base64" or "image".
	Stage string
	Err   error
}

// NewDecodeError wraps err as a failure of the named decoding stage.
func NewDecodeError(stage string, err error) *DecodeError {
	return &DecodeError{Stage: stage, Err: err}
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Stage, e.Err)
}

// Unwrap exposes ErrInvalidImage and the decoder's error.
func (e *DecodeError) Unwrap() []error {
	return []error{ErrInvalidImage, e.Err}
}

// TransmissionError reports a failed write to a connected printer. Its
// message is the message of the underlying I/O error.
type TransmissionError struct {
	Op  string
	Err error
}

// NewTransmissionError wraps err as a failure of printer operation op.
func NewTransmissionError(op string, err error) *TransmissionError {
	return &TransmissionError{Op: op, Err: err}
}

func (e *TransmissionError) Error() string {
	return e.Err.Error()
}

// Unwrap exposes ErrTransmission and the I/O error.
func (e *TransmissionError) Unwrap() []error {
	return []error{ErrTransmission, e.Err}
}

// UnavailableError reports that the printer at Address could not be reached.
type UnavailableError struct {
	Address string
	Err     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("connect to printer %s: %v", e.Address, e.Err)
}

// Unwrap exposes ErrPrinterUnavailable and the dial error.
func (e *UnavailableError) Unwrap() []error {
	return []error{ErrPrinterUnavailable, e.Err}
}
