package gdisp

import (
	"image"
	"image/color"
	_ "image/png" // register PNG decoding
	"os"

	_ "golang.org/x/image/bmp" // register BMP decoding

	apperrors "github.com/agbru/gwinbar/internal/errors"
)

// LoadImage opens and fully decodes the image at path. The result is ready
// to be handed to a drawing strategy.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.WrapError(err, "open image %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, apperrors.WrapError(err, "decode image %s", path)
	}
	return img, nil
}

// CheckerImage builds a width x height checkerboard with square cells of the
// given size alternating between a and b.
func CheckerImage(width, height, size int, a, b color.RGBA) *image.RGBA {
	if size <= 0 {
		size = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := a
			if (x/size+y/size)%2 == 1 {
				c = b
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
