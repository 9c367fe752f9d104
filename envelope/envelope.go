// Package envelope implements the three on-wire content framings that
// may sit at the head of an LSB byte stream.
//
//	V1:  01 | utf-8 text | FF
//	V2:  02 | deflate zip | FF FF
//	V4:  04 | u32 big-endian length | payload
//
// V2 is byte-compatible with the old Windows tool. V4 is the default
// for new media.
package envelope

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"

	"stegano/stegerr"
)

type Version byte

const (
	V1 Version = 0x01
	V2 Version = 0x02
	V4 Version = 0x04
)

func (v Version) String() string {
	switch v {
	case V1:
		return "v1"
	case V2:
		return "v2"
	case V4:
		return "v4"
	}
	return "unknown"
}

const terminator = 0xff

// Overhead is the framing cost in bytes beyond the version byte.
func Overhead(v Version) int {
	switch v {
	case V1:
		return 1
	case V2:
		return 2
	default:
		return 4
	}
}

// Write frames payload for version v onto w. For V1 the payload must
// be utf-8 text; utf-8 never contains 0xff so the terminator cannot
// collide, but the invariant is still checked.
func Write(w io.Writer, v Version, payload []byte) error {
	switch v {
	case V1:
		if bytes.IndexByte(payload, terminator) >= 0 {
			return stegerr.New(stegerr.PayloadMalformed)
		}
		if _, err := w.Write([]byte{byte(V1)}); err != nil {
			return err
		}
		if _, err := w.Write(payload); err != nil {
			return err
		}
		_, err := w.Write([]byte{terminator})
		return err

	case V2:
		if _, err := w.Write([]byte{byte(V2)}); err != nil {
			return err
		}
		if _, err := w.Write(payload); err != nil {
			return err
		}
		_, err := w.Write([]byte{terminator, terminator})
		return err

	case V4:
		hdr := make([]byte, 5)
		hdr[0] = byte(V4)
		binary.BigEndian.PutUint32(hdr[1:], uint32(len(payload)))
		if _, err := w.Write(hdr); err != nil {
			return err
		}
		_, err := w.Write(payload)
		return err
	}
	return stegerr.BadVersion(byte(v))
}

// Decode consumes a whole framed stream from r and returns the version
// together with the enclosed payload bytes.
func Decode(r io.Reader) (Version, []byte, error) {
	br := bufio.NewReader(r)

	vb, err := br.ReadByte()
	if err != nil {
		return 0, nil, stegerr.TruncatedIn("header")
	}

	switch Version(vb) {
	case V1:
		payload, err := readUntilTerminator(br)
		return V1, payload, err
	case V2:
		payload, err := readUntilDoubleTerminator(br)
		return V2, payload, err
	case V4:
		payload, err := readLengthPrefixed(br)
		return V4, payload, err
	}
	return 0, nil, stegerr.BadVersion(vb)
}

func readUntilTerminator(br *bufio.Reader) ([]byte, error) {
	var buf bytes.Buffer
	for {
		b, err := br.ReadByte()
		if err != nil {
			return nil, stegerr.TruncatedIn("v1")
		}
		if b == terminator {
			return buf.Bytes(), nil
		}
		buf.WriteByte(b)
	}
}

func readUntilDoubleTerminator(br *bufio.Reader) ([]byte, error) {
	// start from a non-nil slice so an empty payload decodes as []byte{}
	buf := bytes.NewBuffer([]byte{})
	for {
		b, err := br.ReadByte()
		if err != nil {
			return nil, stegerr.TruncatedIn("v2")
		}
		if b != terminator {
			buf.WriteByte(b)
			continue
		}
		next, err := br.ReadByte()
		if err != nil {
			// a lone trailing FF is truncation, not a terminator
			return nil, stegerr.TruncatedIn("v2")
		}
		if next == terminator {
			return buf.Bytes(), nil
		}
		// interior FF followed by something else is payload
		buf.WriteByte(b)
		buf.WriteByte(next)
	}
}

func readLengthPrefixed(br *bufio.Reader) ([]byte, error) {
	hdr := make([]byte, 4)
	if _, err := io.ReadFull(br, hdr); err != nil {
		return nil, stegerr.TruncatedIn("v4")
	}
	length := binary.BigEndian.Uint32(hdr)
	payload := make([]byte, length)
	if _, err := io.ReadFull(br, payload); err != nil {
		return nil, stegerr.TruncatedIn("v4")
	}
	return payload, nil
}
