package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey(t *testing.T) {
	key, err := DeriveKey("correct horse battery staple")
	require.NoError(t, err)
	assert.Len(t, key, 32)

	same, err := DeriveKey("correct horse battery staple")
	require.NoError(t, err)
	assert.Equal(t, key, same)

	other, err := DeriveKey("different passphrase")
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestDeriveKeyEmptyPassphrase(t *testing.T) {
	_, err := DeriveKey("")
	assert.Error(t, err)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key, err := DeriveKey("test passphrase")
	require.NoError(t, err)

	plaintext := []byte("sensitive analysis payload")
	encrypted, err := Encrypt(plaintext, key)
	require.NoError(t, err)
	assert.NotContains(t, encrypted, "sensitive")

	decrypted, err := Decrypt(encrypted, key)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestEncryptProducesDistinctCiphertexts(t *testing.T) {
	key, err := DeriveKey("test passphrase")
	require.NoError(t, err)

	a, err := Encrypt([]byte("same input"), key)
	require.NoError(t, err)
	b, err := Encrypt([]byte("same input"), key)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "nonce must randomize ciphertexts")
}

func TestDecryptWithWrongKey(t *testing.T) {
	key, err := DeriveKey("right key")
	require.NoError(t, err)
	wrongKey, err := DeriveKey("wrong key")
	require.NoError(t, err)

	encrypted, err := Encrypt([]byte("secret"), key)
	require.NoError(t, err)

	_, err = Decrypt(encrypted, wrongKey)
	assert.Error(t, err)
}

func TestDecryptGarbage(t *testing.T) {
	key, err := DeriveKey("key")
	require.NoError(t, err)

	_, err = Decrypt("not base64!!!", key)
	assert.Error(t, err)

	_, err = Decrypt("YWJj", key) // valid base64, too short for a nonce
	assert.Error(t, err)
}
