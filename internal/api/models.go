package api

// TextRequest is the body of POST /print/text.
type TextRequest struct {
	Text string `json:"text" validate:"required"`
}

// ImageRequest is the body of POST /print/image. Image is base64 encoded.
type ImageRequest struct {
	Image string `json:"image" validate:"required"`
}

// BarcodeRequest is the body of POST /print/barcode. BarcodeType defaults to
// CODE39 when empty.
type BarcodeRequest struct {
	Barcode     string `json:"barcode" validate:"required"`
	BarcodeType string `json:"barcode_type,omitempty"`
}
