package service

import (
	"errors"

	"github.com/phrazzld/star-print/internal/domain"
)

// ErrNilConnector is returned by NewPrintService when no connector is given.
var ErrNilConnector = errors.New("connector cannot be nil")

// classifyPrintError makes sure every failure leaving a print operation
// carries one of the domain error kinds. Errors that already do are returned
// unchanged; anything else happened while talking to the printer.
func classifyPrintError(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidImage),
		errors.Is(err, domain.ErrPrinterUnavailable),
		errors.Is(err, domain.ErrTransmission):
		return err
	default:
		return domain.NewTransmissionError(op, err)
	}
}
