package imaging

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Prepare converts img to grayscale and scales it down to at most maxWidth
// pixels wide. A maxWidth of zero or less disables scaling.
func Prepare(img image.Image, maxWidth int) *image.Gray {
	return FitWidth(ToGray(img), maxWidth)
}

// ToGray flattens img onto a white background and converts it to a single
// channel. Transparent regions print as paper, not as black.
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}

	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Over)
	return dst
}

// FitWidth scales img down proportionally when it is wider than maxWidth.
// Narrower images are returned unchanged.
func FitWidth(img *image.Gray, maxWidth int) *image.Gray {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}

	height := b.Dy() * maxWidth / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewGray(image.Rect(0, 0, maxWidth, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
