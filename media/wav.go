package media

import (
	"bytes"
	"io"

	"github.com/aler9/writerseeker"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"stegano/carrier"
	"stegano/stegerr"
)

func decodeWAV(data []byte) (*Media, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, stegerr.Wrap(stegerr.CarrierFormat, err)
	}
	if dec.BitDepth != 16 {
		return nil, stegerr.New(stegerr.CarrierFormat)
	}

	samples := make([]int16, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = int16(s)
	}
	c, err := carrier.NewAudio(samples)
	if err != nil {
		return nil, err
	}
	return &Media{
		Format:     WAV,
		Carrier:    c,
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
	}, nil
}

func encodeWAV(m *Media) ([]byte, error) {
	samples := m.Carrier.Samples()
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: m.Channels,
			SampleRate:  m.SampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}

	// the wav encoder needs a WriteSeeker to patch chunk sizes
	ws := &writerseeker.WriterSeeker{}
	enc := wav.NewEncoder(ws, m.SampleRate, 16, m.Channels, 1)
	if err := enc.Write(buf); err != nil {
		return nil, stegerr.Wrap(stegerr.Io, err)
	}
	if err := enc.Close(); err != nil {
		return nil, stegerr.Wrap(stegerr.Io, err)
	}

	out, err := io.ReadAll(ws.Reader())
	if err != nil {
		return nil, stegerr.Wrap(stegerr.Io, err)
	}
	return out, nil
}
