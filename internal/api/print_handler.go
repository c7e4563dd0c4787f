package api

import (
	"net/http"

	"github.com/phrazzld/star-print/internal/api/shared"
	"github.com/phrazzld/star-print/internal/config"
	"github.com/phrazzld/star-print/internal/domain"
	"github.com/phrazzld/star-print/internal/imaging"
	"github.com/phrazzld/star-print/internal/platform/logger"
	"github.com/phrazzld/star-print/internal/service"
)

// PrintHandler handles the print endpoints.
type PrintHandler struct {
	printService   service.PrintService
	maxImagePixels int
}

// Option configures a PrintHandler.
type Option func(*PrintHandler)

// WithMaxImagePixels sets the largest width*height accepted for an image
// payload. Larger images are rejected before their pixels are decoded.
func WithMaxImagePixels(n int) Option {
	return func(h *PrintHandler) {
		h.maxImagePixels = n
	}
}

// NewPrintHandler creates a new PrintHandler.
func NewPrintHandler(printService service.PrintService, opts ...Option) *PrintHandler {
	h := &PrintHandler{
		printService:   printService,
		maxImagePixels: config.DefaultMaxImagePixels,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// PrintText handles POST /print/text requests.
func (h *PrintHandler) PrintText(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	job, err := domain.NewTextJob(req.Text)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.printService.PrintText(r.Context(), job); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithStatus(w, r, "Printed text successfully")
}

// PrintImage handles POST /print/image requests. The image is decoded before
// the printer is contacted.
func (h *PrintHandler) PrintImage(w http.ResponseWriter, r *http.Request) {
	var req ImageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	img, format, err := imaging.DecodeBase64(req.Image, h.maxImagePixels)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Debug("decoded image",
		"format", format,
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy())

	job, err := domain.NewImageJob(img)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.printService.PrintImage(r.Context(), job); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithStatus(w, r, "Printed image successfully")
}

// PrintBarcode handles POST /print/barcode requests.
func (h *PrintHandler) PrintBarcode(w http.ResponseWriter, r *http.Request) {
	var req BarcodeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	job, err := domain.NewBarcodeJob(req.Barcode, req.BarcodeType)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.printService.PrintBarcode(r.Context(), job); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithStatus(w, r, "Printed barcode successfully")
}

// PrinterHealth handles GET /health/printer requests.
func (h *PrintHandler) PrinterHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.printService.CheckPrinter(r.Context()); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, msgPrinterUnavailable, err)
		return
	}
	shared.RespondWithStatus(w, r, "Printer available")
}

// decodeAndValidate decodes the body into req and checks its required
// fields. It writes the error response and returns false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		if shared.IsBodyTooLarge(err) {
			shared.RespondWithErrorAndLog(w, r, http.StatusRequestEntityTooLarge, msgBodyTooLarge, err)
			return false
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidRequest, err)
		return false
	}

	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, missingFieldError(shared.FirstInvalidField(err)))
		return false
	}
	return true
}

func missingFieldError(field string) *domain.ValidationError {
	if field == "image" {
		return domain.MissingImageError()
	}
	return domain.MissingFieldError(field)
}
