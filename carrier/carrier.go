package carrier

import (
	"stegano/stegerr"
)

/*
 * a carrier is the cover media the payload gets embedded into.
 * images carry one bit per color byte (alpha is never touched),
 * audio carries one bit per 16-bit sample.
 */

type Kind int

const (
	Image Kind = iota + 1
	Audio
)

type Carrier struct {
	kind Kind

	// image fields: W*H pixels, RGBA8, row-major
	width  int
	height int
	pix    []byte

	// audio fields: interleaved signed 16-bit PCM
	samples []int16
}

// NewImage wraps an RGBA8 pixel buffer. The buffer is borrowed, not copied.
func NewImage(width, height int, pix []byte) (*Carrier, error) {
	if width <= 0 || height <= 0 {
		return nil, stegerr.New(stegerr.CarrierFormat)
	}
	if len(pix) != 4*width*height {
		return nil, stegerr.New(stegerr.CarrierFormat)
	}
	return &Carrier{
		kind:   Image,
		width:  width,
		height: height,
		pix:    pix,
	}, nil
}

// NewAudio wraps a sample buffer. The buffer is borrowed, not copied.
func NewAudio(samples []int16) (*Carrier, error) {
	if len(samples) == 0 {
		return nil, stegerr.New(stegerr.CarrierFormat)
	}
	return &Carrier{
		kind:    Audio,
		samples: samples,
	}, nil
}

func (c *Carrier) Kind() Kind { return c.kind }

func (c *Carrier) Bounds() (width, height int) { return c.width, c.height }

// Pix exposes the RGBA8 buffer of an image carrier (nil for audio).
func (c *Carrier) Pix() []byte { return c.pix }

// Samples exposes the PCM buffer of an audio carrier (nil for images).
func (c *Carrier) Samples() []int16 { return c.samples }

// Capacity is the number of participating bytes, which equals the
// number of hideable bits.
func (c *Carrier) Capacity() int {
	if c.kind == Image {
		return 3 * c.width * c.height
	}
	return len(c.samples)
}

// CapacityBytes is the byte-level capacity available to the framing layer.
func (c *Carrier) CapacityBytes() int {
	return c.Capacity() / 8
}
