package cryptography

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stegano/stegerr"
)

func TestSealOpenRoundTrip(t *testing.T) {
	tests := [][]byte{
		[]byte("short"),
		bytes.Repeat([]byte("lorem ipsum "), 512),
		{},
	}
	for _, data := range tests {
		ct, err := Seal(data, "resistance is futile")
		require.NoError(t, err)
		assert.Len(t, ct, len(data)+Overhead)
		assert.NotEqual(t, data, ct)

		pt, err := Open(ct, "resistance is futile")
		require.NoError(t, err)
		assert.Equal(t, len(data), len(pt))
		assert.True(t, bytes.Equal(data, pt))
	}
}

func TestWrongPassword(t *testing.T) {
	ct, err := Seal([]byte("secret"), "alpha")
	require.NoError(t, err)

	_, err = Open(ct, "beta")
	assert.Equal(t, stegerr.AuthenticationFailed, stegerr.KindOf(err))
}

func TestTamperedCiphertext(t *testing.T) {
	ct, err := Seal([]byte("secret"), "alpha")
	require.NoError(t, err)
	ct[0] ^= 0x01

	_, err = Open(ct, "alpha")
	assert.Equal(t, stegerr.AuthenticationFailed, stegerr.KindOf(err))
}

func TestTooShortIsMalformedNotAuthFailure(t *testing.T) {
	_, err := Open(make([]byte, Overhead-1), "alpha")
	assert.Equal(t, stegerr.PayloadMalformed, stegerr.KindOf(err))
}

func TestSealIsSelfDescribing(t *testing.T) {
	// two seals of the same plaintext differ (fresh salt and nonce)
	// yet both open with the same passphrase
	a, err := Seal([]byte("data"), "pw")
	require.NoError(t, err)
	b, err := Seal([]byte("data"), "pw")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	for _, ct := range [][]byte{a, b} {
		pt, err := Open(ct, "pw")
		require.NoError(t, err)
		assert.Equal(t, "data", string(pt))
	}
}

func TestDeriveKeyIsDeterministic(t *testing.T) {
	salt := bytes.Repeat([]byte{0x42}, SaltSize)
	k1 := DeriveKey([]byte("pw"), salt)
	k2 := DeriveKey([]byte("pw"), salt)
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, KeySize)

	k3 := DeriveKey([]byte("other"), salt)
	assert.NotEqual(t, k1, k3)
}
