package domain

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextJob(t *testing.T) {
	t.Parallel()

	job, err := NewTextJob("Hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello", job.Text)
	assert.Equal(t, "Hello\n", job.Line())

	_, err = NewTextJob("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "text", vErr.Field)
	assert.Equal(t, "Missing 'text' parameter", vErr.Message)
}

func TestNewImageJob(t *testing.T) {
	t.Parallel()

	img := image.NewGray(image.Rect(0, 0, 8, 8))
	job, err := NewImageJob(img)
	require.NoError(t, err)
	assert.Same(t, img, job.Image)

	_, err = NewImageJob(nil)
	assert.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "Missing 'image' parameter (base64 encoded)")
}

func TestNewBarcodeJob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		data          string
		symbology     string
		wantSymbology string
		wantErr       bool
	}{
		{name: "default symbology", data: "ABC123", symbology: "", wantSymbology: "CODE39"},
		{name: "blank symbology", data: "ABC123", symbology: "  ", wantSymbology: "CODE39"},
		{name: "explicit symbology kept as given", data: "4006381333931", symbology: "ean13", wantSymbology: "ean13"},
		{name: "missing data", data: "", symbology: "EAN13", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			job, err := NewBarcodeJob(tc.data, tc.symbology)
			if tc.wantErr {
				require.Error(t, err)
				assert.Equal(t, "Missing 'barcode' parameter", err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.data, job.Data)
			assert.Equal(t, tc.wantSymbology, job.Symbology)
		})
	}
}
