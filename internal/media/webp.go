package media

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
)

const (
	MaxPhotoSide  = 800
	MaxPhotoBytes = 8 << 20
	photoQuality  = 82
)

// Fit returns the size that keeps the aspect ratio and has no side longer
// than max. Smaller images keep their size.
func Fit(w, h, max int) (int, int) {
	if w <= max && h <= max {
		return w, h
	}
	if w >= h {
		nh := h * max / w
		if nh < 1 {
			nh = 1
		}
		return max, nh
	}
	nw := w * max / h
	if nw < 1 {
		nw = 1
	}
	return nw, max
}

// Resize scales src down so it fits MaxPhotoSide.
func Resize(src image.Image) image.Image {
	b := src.Bounds()
	w, h := Fit(b.Dx(), b.Dy(), MaxPhotoSide)
	if w == b.Dx() && h == b.Dy() {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// ToWebP decodes a JPEG, PNG or WebP upload, downsizes it and re-encodes it
// as lossy WebP.
func ToWebP(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(io.LimitReader(r, MaxPhotoBytes))
	if err != nil {
		return nil, httperr.ErrBusinessf("invalid_image", "%v", err)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, Resize(src), &webp.Options{Quality: photoQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
