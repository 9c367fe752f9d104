// Package payload maps a set of named entries plus an optional text
// message to and from a deflate-compressed zip blob. The blob is what
// V2 and V4 envelopes carry.
package payload

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/flate"
	"golang.org/x/text/unicode/norm"

	"stegano/stegerr"
)

// TextEntryName is the reserved entry that carries the text message.
const TextEntryName = "content.txt"

type Entry struct {
	Name string
	Data []byte
}

// ValidateName rejects empty names, names with path separators and
// names that are not valid utf-8. Valid names come back NFC-normalized.
func ValidateName(name string) (string, error) {
	if name == "" {
		return "", stegerr.BadName(name)
	}
	if strings.ContainsAny(name, `/\`) {
		return "", stegerr.BadName(name)
	}
	if !utf8.ValidString(name) {
		return "", stegerr.BadName(name)
	}
	return norm.NFC.String(name), nil
}

// Pack serializes the entries, plus the text message if non-empty,
// into a zip archive. Every entry is deflate-compressed. Names must be
// bare basenames; duplicates are rejected, including a file literally
// named like the reserved text entry when a text message is also given.
func Pack(entries []Entry, text string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})

	seen := map[string]bool{}
	add := func(name string, data []byte) error {
		name, err := ValidateName(name)
		if err != nil {
			return err
		}
		if seen[name] {
			return stegerr.DupName(name)
		}
		seen[name] = true
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   name,
			Method: zip.Deflate,
		})
		if err != nil {
			return stegerr.Wrap(stegerr.PayloadMalformed, err)
		}
		if _, err := w.Write(data); err != nil {
			return stegerr.Wrap(stegerr.PayloadMalformed, err)
		}
		return nil
	}

	for _, e := range entries {
		if err := add(e.Name, e.Data); err != nil {
			zw.Close()
			return nil, err
		}
	}
	if text != "" {
		if err := add(TextEntryName, []byte(text)); err != nil {
			zw.Close()
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, stegerr.Wrap(stegerr.PayloadMalformed, err)
	}
	return buf.Bytes(), nil
}

// Unpack opens a zip blob and reads every entry fully into memory, in
// central directory order. If an entry named like the reserved text
// entry exists, its bytes are also surfaced as the text message; the
// entry itself stays in the returned list, the caller decides which
// representation it wants.
//
// Only stored and deflated entries are accepted; any other compression
// method in a foreign archive is treated as a malformed payload.
func Unpack(blob []byte) ([]Entry, string, error) {
	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return nil, "", stegerr.Wrap(stegerr.PayloadMalformed, err)
	}
	zr.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
		return flate.NewReader(r)
	})

	var entries []Entry
	var text string
	for _, f := range zr.File {
		if f.Method != zip.Store && f.Method != zip.Deflate {
			return nil, "", stegerr.New(stegerr.PayloadMalformed)
		}
		rc, err := f.Open()
		if err != nil {
			return nil, "", stegerr.Wrap(stegerr.PayloadMalformed, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, "", stegerr.Wrap(stegerr.PayloadMalformed, err)
		}
		entries = append(entries, Entry{Name: f.Name, Data: data})
		if f.Name == TextEntryName {
			if !utf8.Valid(data) {
				return nil, "", stegerr.New(stegerr.PayloadMalformed)
			}
			text = string(data)
		}
	}
	return entries, text, nil
}
