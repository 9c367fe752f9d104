package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stegano/carrier"
	"stegano/stegerr"
)

func pngBytes(t *testing.T, w, h int, fill color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodePNG(t *testing.T) {
	data := pngBytes(t, 6, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	m, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, PNG, m.Format)

	w, h := m.Carrier.Bounds()
	assert.Equal(t, 6, w)
	assert.Equal(t, 4, h)
	assert.Equal(t, 3*6*4, m.Carrier.Capacity())

	pix := m.Carrier.Pix()
	assert.Equal(t, byte(10), pix[0])
	assert.Equal(t, byte(20), pix[1])
	assert.Equal(t, byte(30), pix[2])
	assert.Equal(t, byte(255), pix[3])
}

func TestPNGRoundTripPreservesPixels(t *testing.T) {
	data := pngBytes(t, 5, 5, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	m, err := Decode(data)
	require.NoError(t, err)

	orig := append([]byte(nil), m.Carrier.Pix()...)
	encoded, err := m.Encode()
	require.NoError(t, err)

	m2, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, PNG, m2.Format)
	assert.Equal(t, orig, m2.Carrier.Pix())
}

func TestWAVRoundTrip(t *testing.T) {
	samples := make([]int16, 256)
	for i := range samples {
		samples[i] = int16(i*101 - 7000)
	}
	c, err := carrier.NewAudio(samples)
	require.NoError(t, err)
	m := &Media{Format: WAV, Carrier: c, SampleRate: 44100, Channels: 1}

	encoded, err := m.Encode()
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(encoded[:4]))
	assert.Equal(t, "WAVE", string(encoded[8:12]))

	m2, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, WAV, m2.Format)
	assert.Equal(t, 44100, m2.SampleRate)
	assert.Equal(t, 1, m2.Channels)
	assert.Equal(t, samples, m2.Carrier.Samples())
}

func TestBMPRoundTrip(t *testing.T) {
	pix := make([]byte, 4*3*2)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = byte(i), byte(i+1), byte(i+2), 255
	}
	c, err := carrier.NewImage(3, 2, pix)
	require.NoError(t, err)
	m := &Media{Format: BMP, Carrier: c}

	encoded, err := m.Encode()
	require.NoError(t, err)
	assert.Equal(t, byte('B'), encoded[0])
	assert.Equal(t, byte('M'), encoded[1])

	m2, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, BMP, m2.Format)
	assert.Equal(t, pix, m2.Carrier.Pix())
}

func TestDecodeUnknownFormat(t *testing.T) {
	_, err := Decode([]byte("this is not a media file at all"))
	assert.Equal(t, stegerr.CarrierFormat, stegerr.KindOf(err))
}

func TestDecodeCorruptPNG(t *testing.T) {
	data := pngBytes(t, 4, 4, color.NRGBA{A: 255})
	_, err := Decode(data[:20])
	assert.Equal(t, stegerr.CarrierFormat, stegerr.KindOf(err))
}
