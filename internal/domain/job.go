package domain

import (
	"image"
	"strings"
)

// JobKind names the capability a print job exercises.
type JobKind string

// Supported job kinds.
const (
	JobKindText    JobKind = "text"
	JobKindImage   JobKind = "image"
	JobKindBarcode JobKind = "barcode"
)

// DefaultBarcodeType is the symbology used when a barcode request names none.
const DefaultBarcodeType = "CODE39"

// MissingImageMessage is returned when an image request carries no payload.
const MissingImageMessage = "Missing 'image' parameter (base64 encoded)"

// MissingImageError is the ValidationError for an absent image payload.
func MissingImageError() *ValidationError {
	return NewValidationError("image", MissingImageMessage, nil)
}

// TextJob prints a block of text followed by a line terminator.
type TextJob struct {
	Text string
}

// NewTextJob creates a TextJob. The text must be non-empty.
func NewTextJob(text string) (*TextJob, error) {
	job := &TextJob{Text: text}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return job, nil
}

// Validate checks the job invariants.
func (j *TextJob) Validate() error {
	if j.Text == "" {
		return MissingFieldError("text")
	}
	return nil
}

// Line returns the exact string sent to the printer: the text plus "\n".
func (j *TextJob) Line() string {
	return j.Text + "\n"
}

// ImageJob prints a decoded raster image.
type ImageJob struct {
	Image image.Image
}

// NewImageJob creates an ImageJob from an already decoded image.
func NewImageJob(img image.Image) (*ImageJob, error) {
	if img == nil {
		return nil, MissingImageError()
	}
	return &ImageJob{Image: img}, nil
}

// BarcodeJob prints Data in the given Symbology.
type BarcodeJob struct {
	Data      string
	Symbology string
}

// NewBarcodeJob creates a BarcodeJob. An empty symbology selects
// DefaultBarcodeType; any other value is kept exactly as given.
func NewBarcodeJob(data, symbology string) (*BarcodeJob, error) {
	if data == "" {
		return nil, MissingFieldError("barcode")
	}
	if strings.TrimSpace(symbology) == "" {
		symbology = DefaultBarcodeType
	}
	return &BarcodeJob{Data: data, Symbology: symbology}, nil
}
