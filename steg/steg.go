// Package steg ties the cursor, the bit codec, the envelope framing
// and the payload container together into the two top level
// operations: Hide and Unveil.
package steg

import (
	"io"
	"unicode/utf8"

	"stegano/carrier"
	"stegano/cryptography"
	"stegano/envelope"
	"stegano/lsb"
	"stegano/payload"
	"stegano/stegerr"
)

type FramingChoice int

const (
	// Auto picks V1 for a plain text message without encryption,
	// V4 for everything else.
	Auto FramingChoice = iota
	ForceV2
	ForceV4
)

type Policy struct {
	Framing FramingChoice

	// Password enables the passphrase transformer. Empty means the
	// payload goes onto the wire in the clear.
	Password string
}

// Result is what Unveil recovered from a carrier.
type Result struct {
	Version envelope.Version
	Entries []payload.Entry
	Text    string
}

// Hide embeds the entries and the optional text message into the
// carrier buffer in place. The caller re-encodes the carrier
// afterwards; on error the buffer must be discarded.
func Hide(c *carrier.Carrier, entries []payload.Entry, text string, pol Policy) error {
	version := chooseVersion(entries, text, pol)

	var blob []byte
	var err error
	if version == envelope.V1 {
		blob = []byte(text)
	} else {
		blob, err = payload.Pack(entries, text)
		if err != nil {
			return err
		}
	}

	if pol.Password != "" {
		blob, err = cryptography.Seal(blob, pol.Password)
		if err != nil {
			return err
		}
	}

	needed := 1 + envelope.Overhead(version) + len(blob)
	if available := c.CapacityBytes(); needed > available {
		return stegerr.TooSmall(needed, available)
	}

	w := lsb.NewWriter(carrier.NewCursor(c))
	return envelope.Write(w, version, blob)
}

// Unveil reads the embedded envelope back out of a carrier and
// returns the recovered entries.
func Unveil(c *carrier.Carrier, pol Policy) (*Result, error) {
	r := lsb.NewReader(carrier.NewCursor(c))
	version, blob, err := envelope.Decode(r)
	if err != nil {
		return nil, err
	}

	if pol.Password != "" {
		blob, err = cryptography.Open(blob, pol.Password)
		if err != nil {
			return nil, err
		}
	}

	if version == envelope.V1 {
		if !utf8.Valid(blob) {
			return nil, stegerr.New(stegerr.PayloadMalformed)
		}
		text := string(blob)
		return &Result{
			Version: version,
			Entries: []payload.Entry{{Name: payload.TextEntryName, Data: blob}},
			Text:    text,
		}, nil
	}

	entries, text, err := payload.Unpack(blob)
	if err != nil {
		return nil, err
	}
	return &Result{Version: version, Entries: entries, Text: text}, nil
}

// UnveilRaw drains the whole LSB byte stream without interpreting any
// framing. Useful for inspecting foreign or damaged stego media.
func UnveilRaw(c *carrier.Carrier) ([]byte, error) {
	r := lsb.NewReader(carrier.NewCursor(c))
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, stegerr.Wrap(stegerr.Io, err)
	}
	return data, nil
}

// Capacity reports how many payload bytes a carrier can hold for a
// given framing choice, after the version byte and framing overhead.
func Capacity(c *carrier.Carrier, version envelope.Version) int {
	n := c.CapacityBytes() - 1 - envelope.Overhead(version)
	if n < 0 {
		return 0
	}
	return n
}

func chooseVersion(entries []payload.Entry, text string, pol Policy) envelope.Version {
	if pol.Password != "" {
		// ciphertext can legitimately contain FF FF, so encrypted
		// payloads always get the length-prefixed envelope
		return envelope.V4
	}
	switch pol.Framing {
	case ForceV2:
		return envelope.V2
	case ForceV4:
		return envelope.V4
	}
	if len(entries) == 0 && text != "" {
		return envelope.V1
	}
	return envelope.V4
}
