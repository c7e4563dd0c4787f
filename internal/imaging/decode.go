// Package imaging turns base64 request payloads into images ready for a
// thermal print head.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	// Registered raster formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/phrazzld/star-print/internal/domain"
)

// ErrTooManyPixels is returned for images whose header declares more pixels
// than the caller allows.
var ErrTooManyPixels = errors.New("image too large")

// Decode stages reported in domain.DecodeError.
const (
	StageBase64 = "base64"
	StageImage  = "image"
)

// DecodeBase64 decodes a base64 string into an image. A leading data URL
// header ("data:image/png;base64,") and embedded whitespace are ignored.
// Unpadded input is accepted.
//
// The image header is read first and images with more than maxPixels pixels
// are rejected with ErrTooManyPixels before any pixel data is decoded. A
// maxPixels of zero or less disables the check.
//
// Errors are *domain.DecodeError values and match domain.ErrInvalidImage.
func DecodeBase64(s string, maxPixels int) (image.Image, string, error) {
	raw, err := decodeBase64(s)
	if err != nil {
		return nil, "", domain.NewDecodeError(StageBase64, err)
	}

	if maxPixels > 0 {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
		if err != nil {
			return nil, "", domain.NewDecodeError(StageImage, err)
		}
		if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > int64(maxPixels) {
			return nil, "", domain.NewDecodeError(StageImage, fmt.Errorf("%w: %dx%d exceeds the limit of %d pixels",
				ErrTooManyPixels, cfg.Width, cfg.Height, maxPixels))
		}
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, "", domain.NewDecodeError(StageImage, err)
	}
	return img, format, nil
}

func decodeBase64(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)

	raw, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return raw, nil
	}
	if !strings.HasSuffix(s, "=") {
		if unpadded, rawErr := base64.RawStdEncoding.DecodeString(s); rawErr == nil {
			return unpadded, nil
		}
	}
	return nil, err
}
