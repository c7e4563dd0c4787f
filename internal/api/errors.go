package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/star-print/internal/api/shared"
	"github.com/phrazzld/star-print/internal/domain"
)

// Messages returned for failures that carry no message of their own.
const (
	msgPrinterUnavailable = "Printer not available"
	msgInvalidRequest     = "Invalid request format"
	msgBodyTooLarge       = "Request body too large"
	msgUnexpected         = "An unexpected error occurred"
	msgInvalidImagePrefix = "Invalid image data: "
)

// MapErrorToStatusCode maps a print error to its HTTP status code. Every
// error kind maps to exactly one status.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidImage):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrPrinterUnavailable),
		errors.Is(err, domain.ErrTransmission):
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the message sent to the client for err.
//
// Validation messages are written for clients. Decode errors are prefixed
// with "Invalid image data: ". Transmission failures return the I/O error's
// own text, which tells the caller what went wrong at the printer.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	var (
		validationErr *domain.ValidationError
		decodeErr     *domain.DecodeError
		transmitErr   *domain.TransmissionError
	)

	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message

	case errors.As(err, &decodeErr):
		return msgInvalidImagePrefix + decodeErr.Err.Error()

	case errors.Is(err, domain.ErrPrinterUnavailable):
		return msgPrinterUnavailable

	case errors.As(err, &transmitErr):
		return transmitErr.Error()

	default:
		return msgUnexpected
	}
}

// HandleAPIError writes the error response for err and logs it.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
