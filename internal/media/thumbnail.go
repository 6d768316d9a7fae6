// Package media generates WebP thumbnails for uploaded photos.
package media

import (
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/chai2010/webp"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const webpQuality = 80

// Thumbnail decodes the image at srcPath, scales it to fit within
// maxSize pixels on its longest side (never upscaling), and writes a
// WebP thumbnail to dstPath.
func Thumbnail(srcPath, dstPath string, maxSize int) error {
	src, err := loadImage(srcPath)
	if err != nil {
		return err
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	tw, th := fit(w, h, maxSize)

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	out, err := os.Create(dstPath)
	if err != nil {
		return err
	}

	if err := webp.Encode(out, dst, &webp.Options{Quality: webpQuality}); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	return img, err
}

// fit scales (w, h) proportionally so the longest side is at most max.
func fit(w, h, max int) (int, int) {
	if w <= max && h <= max {
		return w, h
	}
	if w >= h {
		return max, h * max / w
	}
	return w * max / h, max
}
