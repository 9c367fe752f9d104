package media

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"

	"golang.org/x/image/bmp"

	"stegano/carrier"
	"stegano/stegerr"
)

func decodePNG(data []byte) (*Media, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, stegerr.Wrap(stegerr.CarrierFormat, err)
	}
	return imageMedia(img, PNG)
}

func decodeBMP(data []byte) (*Media, error) {
	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, stegerr.Wrap(stegerr.CarrierFormat, err)
	}
	return imageMedia(img, BMP)
}

// imageMedia flattens any decoded color model into the RGBA8 buffer
// the cursor operates on.
func imageMedia(img image.Image, f Format) (*Media, error) {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	c, err := carrier.NewImage(bounds.Dx(), bounds.Dy(), rgba.Pix)
	if err != nil {
		return nil, err
	}
	return &Media{Format: f, Carrier: c}, nil
}

func rgbaOf(m *Media) *image.RGBA {
	w, h := m.Carrier.Bounds()
	return &image.RGBA{
		Pix:    m.Carrier.Pix(),
		Stride: 4 * w,
		Rect:   image.Rect(0, 0, w, h),
	}
}

func encodePNG(m *Media) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, rgbaOf(m)); err != nil {
		return nil, stegerr.Wrap(stegerr.Io, err)
	}
	return buf.Bytes(), nil
}

func encodeBMP(m *Media) ([]byte, error) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, rgbaOf(m)); err != nil {
		return nil, stegerr.Wrap(stegerr.Io, err)
	}
	return buf.Bytes(), nil
}
