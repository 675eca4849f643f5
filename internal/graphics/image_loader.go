package graphics

import (
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageLoader decodes an image file into tightly packed RGBA rows.
type ImageLoader interface {
	Decode(path string, flipVertically bool) (width, height int, rgba []byte, err error)
}

// FileImageLoader decodes PNG, JPEG, BMP, TIFF and WebP files from disk.
type FileImageLoader struct{}

// Decode reads the file at path. With flipVertically the bottom row comes
// first, matching GL's bottom-left texture origin.
func (FileImageLoader) Decode(path string, flipVertically bool) (int, int, []byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, errors.Wrap(err, "failed to open texture file")
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return 0, 0, nil, errors.Wrapf(err, "failed to decode image %s", path)
	}

	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	if flipVertically {
		flipRows(rgba.Pix, rgba.Stride, b.Dy())
	}
	return b.Dx(), b.Dy(), rgba.Pix, nil
}

func flipRows(pix []byte, stride, rows int) {
	tmp := make([]byte, stride)
	for top, bottom := 0, rows-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := pix[top*stride : (top+1)*stride]
		u := pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, t)
		copy(t, u)
		copy(u, tmp)
	}
}
