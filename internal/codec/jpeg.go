// Package codec holds the JPEG frame codec shared by recording and
// remote preview.
package codec

import (
	"bytes"
	"image"
	"image/jpeg"

	"golang.org/x/image/draw"
)

// Encoder encodes frames as JPEG.
type Encoder struct {
	quality int
}

// NewEncoder creates a JPEG encoder with the given quality (1-100).
func NewEncoder(quality int) *Encoder {
	if quality < 1 {
		quality = 1
	}
	if quality > 100 {
		quality = 100
	}
	return &Encoder{quality: quality}
}

// Quality returns the configured JPEG quality.
func (e *Encoder) Quality() int {
	return e.quality
}

func (e *Encoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(128 * 1024)
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: e.quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeScaled downscales img by the given integer factor before
// encoding. A factor of 1 or less encodes at full size.
func (e *Encoder) EncodeScaled(img image.Image, factor int) ([]byte, error) {
	if factor <= 1 {
		return e.Encode(img)
	}
	b := img.Bounds()
	w := b.Dx() / factor
	h := b.Dy() / factor
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	small := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(small, small.Bounds(), img, b, draw.Src, nil)
	return e.Encode(small)
}

// Decoder decodes JPEG bytes into *image.RGBA.
type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

func (d *Decoder) Decode(data []byte) (*image.RGBA, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return ToRGBA(img), nil
}

// ToRGBA returns img as *image.RGBA, copying only when necessary.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	return rgba
}
