package escpos

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// DefaultBandHeight is the number of rows sent per GS v 0 block. Larger
// images are split so that printers with small receive buffers keep up.
const DefaultBandHeight = 960

const blackIndex = 0

var monochrome = color.Palette{color.Black, color.White}

// Raster converts img to a dithered 1-bit image and frames it as GS v 0
// raster blocks of at most DefaultBandHeight rows.
func Raster(img image.Image) []byte {
	return RasterBands(img, DefaultBandHeight)
}

// RasterBands is Raster with an explicit band height. Rows are padded with
// white dots to a whole number of bytes.
func RasterBands(img image.Image, bandHeight int) []byte {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil
	}
	if bandHeight <= 0 {
		bandHeight = DefaultBandHeight
	}

	bw := image.NewPaletted(image.Rect(0, 0, width, height), monochrome)
	xdraw.FloydSteinberg.Draw(bw, bw.Bounds(), img, bounds.Min)

	rowBytes := (width + 7) / 8
	bands := (height + bandHeight - 1) / bandHeight
	out := make([]byte, 0, bands*8+rowBytes*height)

	for top := 0; top < height; top += bandHeight {
		rows := min(bandHeight, height-top)
		out = append(out,
			GS, 'v', '0', 0,
			byte(rowBytes), byte(rowBytes>>8),
			byte(rows), byte(rows>>8),
		)
		for y := top; y < top+rows; y++ {
			line := make([]byte, rowBytes)
			for x := 0; x < width; x++ {
				if bw.ColorIndexAt(x, y) == blackIndex {
					line[x/8] |= 0x80 >> uint(x%8)
				}
			}
			out = append(out, line...)
		}
	}
	return out
}
