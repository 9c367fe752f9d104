// Package cryptography is the passphrase transformer applied to
// payload bytes before framing. Key derivation is Argon2id, the AEAD
// is XChaCha20-Poly1305. The envelope byte and framing around the
// ciphertext are never encrypted.
package cryptography

import (
	"crypto/rand"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"stegano/stegerr"
)

const (
	SaltSize  = 32
	KeySize   = 32
	NonceSize = chacha20poly1305.NonceSizeX
	TagSize   = chacha20poly1305.Overhead

	// argon2id cost parameters
	argonTime    = 10
	argonMemory  = 19 * 1024 // KiB
	argonThreads = 1
)

// Overhead is the size the ciphertext grows beyond the plaintext.
const Overhead = TagSize + NonceSize + SaltSize

// DeriveKey stretches a passphrase into a symmetric key.
func DeriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, KeySize)
}

// Seal encrypts data under the passphrase. Layout of the result:
//
//	ciphertext+tag | nonce (24) | salt (32)
//
// so that Open can recover the salt and nonce without side channels.
func Seal(data []byte, password string) ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, stegerr.Wrap(stegerr.Io, err)
	}
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, stegerr.Wrap(stegerr.Io, err)
	}

	aead, err := chacha20poly1305.NewX(DeriveKey([]byte(password), salt))
	if err != nil {
		return nil, stegerr.Wrap(stegerr.Io, err)
	}
	out := aead.Seal(nil, nonce, data, nil)
	out = append(out, nonce...)
	out = append(out, salt...)
	return out, nil
}

// Open decrypts data produced by Seal. A passphrase mismatch or a
// flipped bit surfaces as AuthenticationFailed; input too short to
// even hold the trailer is a malformed payload instead.
func Open(data []byte, password string) ([]byte, error) {
	if len(data) < Overhead {
		return nil, stegerr.New(stegerr.PayloadMalformed)
	}
	salt := data[len(data)-SaltSize:]
	nonce := data[len(data)-SaltSize-NonceSize : len(data)-SaltSize]
	ct := data[:len(data)-SaltSize-NonceSize]

	aead, err := chacha20poly1305.NewX(DeriveKey([]byte(password), salt))
	if err != nil {
		return nil, stegerr.Wrap(stegerr.Io, err)
	}
	pt, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return nil, stegerr.Wrap(stegerr.AuthenticationFailed, err)
	}
	return pt, nil
}
