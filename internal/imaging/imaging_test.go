package imaging

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/phrazzld/star-print/internal/config"
	"github.com/phrazzld/star-print/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDecodeBase64(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	payload := encodePNG(t, src)

	tests := []struct {
		name  string
		input string
	}{
		{name: "plain", input: payload},
		{name: "data url", input: "data:image/png;base64," + payload},
		{name: "wrapped lines", input: payload[:10] + "\n" + payload[10:]},
		{name: "unpadded", input: strings.TrimRight(payload, "=")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			img, format, err := DecodeBase64(tc.input, config.DefaultMaxImagePixels)
			require.NoError(t, err)
			assert.Equal(t, "png", format)
			assert.Equal(t, 4, img.Bounds().Dx())
			assert.Equal(t, 3, img.Bounds().Dy())
		})
	}
}

func TestDecodeBase64Errors(t *testing.T) {
	t.Run("invalid base64", func(t *testing.T) {
		_, _, err := DecodeBase64("not base64!!", config.DefaultMaxImagePixels)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidImage)

		var de *domain.DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, StageBase64, de.Stage)
	})

	t.Run("not an image", func(t *testing.T) {
		_, _, err := DecodeBase64(base64.StdEncoding.EncodeToString([]byte("hello world")), config.DefaultMaxImagePixels)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidImage)
		assert.ErrorIs(t, err, image.ErrFormat)

		var de *domain.DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, StageImage, de.Stage)
	})
}

// pngHeader returns a PNG that stops after its IHDR chunk. It declares an
// 8-bit grayscale image of the given size without carrying any pixel data.
func pngHeader(width, height uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], width)
	binary.BigEndian.PutUint32(ihdr[4:8], height)
	ihdr[8] = 8 // bit depth; color type, compression, filter and interlace stay 0

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestDecodeBase64RejectsTooManyPixels(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString(pngHeader(20000, 20000))

	img, _, err := DecodeBase64(payload, config.DefaultMaxImagePixels)

	require.Error(t, err)
	assert.Nil(t, img)
	assert.ErrorIs(t, err, domain.ErrInvalidImage)
	assert.ErrorIs(t, err, ErrTooManyPixels)

	var de *domain.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, StageImage, de.Stage)
	assert.Equal(t, "image too large: 20000x20000 exceeds the limit of 178956970 pixels", de.Err.Error())
}

func TestDecodeBase64PixelLimitBoundary(t *testing.T) {
	payload := encodePNG(t, image.NewGray(image.Rect(0, 0, 4, 3)))

	_, _, err := DecodeBase64(payload, 12)
	assert.NoError(t, err, "an image exactly at the limit is accepted")

	_, _, err = DecodeBase64(payload, 11)
	assert.ErrorIs(t, err, ErrTooManyPixels)

	_, _, err = DecodeBase64(payload, 0)
	assert.NoError(t, err, "a zero limit disables the check")
}

func TestToGrayFlattensTransparency(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{A: 0})
	src.SetNRGBA(1, 0, color.NRGBA{A: 255})

	gray := ToGray(src)

	assert.Equal(t, uint8(255), gray.GrayAt(0, 0).Y, "transparent pixel should become white")
	assert.Equal(t, uint8(0), gray.GrayAt(1, 0).Y, "opaque black should stay black")
}

func TestToGrayNonZeroOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 8, 7))
	gray := ToGray(src)
	assert.Equal(t, image.Rect(0, 0, 3, 2), gray.Bounds())
}

func TestFitWidth(t *testing.T) {
	wide := image.NewGray(image.Rect(0, 0, 1200, 300))

	scaled := FitWidth(wide, 576)
	assert.Equal(t, 576, scaled.Bounds().Dx())
	assert.Equal(t, 144, scaled.Bounds().Dy())

	narrow := image.NewGray(image.Rect(0, 0, 100, 50))
	assert.Same(t, narrow, FitWidth(narrow, 576))
	assert.Same(t, wide, FitWidth(wide, 0))
}

func TestPrepare(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1000, 10))
	out := Prepare(src, 500)
	assert.Equal(t, image.Rect(0, 0, 500, 5), out.Bounds())
}
