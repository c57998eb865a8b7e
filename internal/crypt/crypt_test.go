package crypt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func initTestKeys(t *testing.T) {
	t.Helper()
	require.NoError(t, Init("test-encryption-secret", "test-lookup-secret"))
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	initTestKeys(t)

	plain := "alice@example.com"
	cipher, err := Encrypt(plain)
	require.NoError(t, err)
	require.NotEqual(t, plain, cipher)

	decrypted, err := Decrypt(cipher)
	require.NoError(t, err)
	require.Equal(t, plain, decrypted)
}

func TestEncryptIsNonDeterministic(t *testing.T) {
	initTestKeys(t)

	first, err := Encrypt("same input")
	require.NoError(t, err)
	second, err := Encrypt("same input")
	require.NoError(t, err)

	// Random nonce: identical plaintexts must not produce identical rows.
	require.NotEqual(t, first, second)
}

func TestDecryptRejectsGarbage(t *testing.T) {
	initTestKeys(t)

	_, err := Decrypt("not-a-ciphertext")
	require.Error(t, err)
}

func TestLookupKeyIsDeterministic(t *testing.T) {
	initTestKeys(t)

	require.Equal(t, LookupKey("alice@example.com"), LookupKey("alice@example.com"))
	require.NotEqual(t, LookupKey("alice@example.com"), LookupKey("bob@example.com"))
}

func TestLookupKeyNormalizesCaseAndSpace(t *testing.T) {
	initTestKeys(t)

	require.Equal(t, LookupKey("alice@example.com"), LookupKey("  Alice@Example.COM "))
}

func TestEncryptedStringValueAndScan(t *testing.T) {
	initTestKeys(t)

	original := EncryptedString("sensitive value")
	stored, err := original.Value()
	require.NoError(t, err)

	storedStr, ok := stored.(string)
	require.True(t, ok)
	require.NotContains(t, storedStr, "sensitive")

	var loaded EncryptedString
	require.NoError(t, loaded.Scan(storedStr))
	require.Equal(t, original, loaded)
}

func TestEncryptedStringEmptyPassthrough(t *testing.T) {
	initTestKeys(t)

	stored, err := EncryptedString("").Value()
	require.NoError(t, err)
	require.Equal(t, "", stored)

	var loaded EncryptedString
	require.NoError(t, loaded.Scan(""))
	require.Equal(t, EncryptedString(""), loaded)
}

func TestEncryptedStringScanNil(t *testing.T) {
	initTestKeys(t)

	var loaded EncryptedString
	require.NoError(t, loaded.Scan(nil))
	require.Equal(t, EncryptedString(""), loaded)
}
