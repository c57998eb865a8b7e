// Package crypt provides field-level encryption for personally-identifying
// columns. Values are sealed with AES-GCM under a process-wide key and stored
// base64-encoded; because the nonce is random, ciphertexts are not comparable,
// so deterministic HMAC lookup keys back the unique indexes instead.
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"database/sql/driver"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotInitialized = errors.New("crypt: not initialized")
	ErrInvalidCipher  = errors.New("crypt: invalid ciphertext")
)

var (
	aead      cipher.AEAD
	lookupKey []byte
)

// Init derives the AES-GCM key from secret and stores the lookup HMAC key.
// Must be called once at startup before any repository use.
func Init(secret, lookupSecret string) error {
	sum := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(sum[:])
	if err != nil {
		return fmt.Errorf("failed to create cipher: %w", err)
	}
	aead, err = cipher.NewGCM(block)
	if err != nil {
		return fmt.Errorf("failed to create GCM: %w", err)
	}
	lookupKey = []byte(lookupSecret)
	return nil
}

// Encrypt seals plaintext and returns a base64 token.
func Encrypt(plain string) (string, error) {
	if aead == nil {
		return "", ErrNotInitialized
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, []byte(plain), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt.
func Decrypt(token string) (string, error) {
	if aead == nil {
		return "", ErrNotInitialized
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", ErrInvalidCipher
	}
	if len(raw) < aead.NonceSize() {
		return "", ErrInvalidCipher
	}
	nonce, sealed := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrInvalidCipher
	}
	return string(plain), nil
}

// LookupKey returns a deterministic digest of value for unique-index columns.
// Input is lowercased and trimmed so lookups are case-insensitive.
func LookupKey(value string) string {
	mac := hmac.New(sha256.New, lookupKey)
	mac.Write([]byte(strings.ToLower(strings.TrimSpace(value))))
	return hex.EncodeToString(mac.Sum(nil))
}

// EncryptedString is a string column encrypted at rest. The repository layer
// never handles ciphertext: GORM calls Value on write and Scan on read, so
// callers only ever see plaintext domain objects.
type EncryptedString string

// GormDataType tells GORM how to declare the column.
func (EncryptedString) GormDataType() string {
	return "text"
}

// Value implements driver.Valuer; it encrypts on the way to the store.
func (s EncryptedString) Value() (driver.Value, error) {
	if s == "" {
		return "", nil
	}
	return Encrypt(string(s))
}

// Scan implements sql.Scanner; it decrypts on the way out of the store.
func (s *EncryptedString) Scan(value interface{}) error {
	if value == nil {
		*s = ""
		return nil
	}

	var token string
	switch v := value.(type) {
	case string:
		token = v
	case []byte:
		token = string(v)
	default:
		return fmt.Errorf("crypt: cannot scan %T into EncryptedString", value)
	}

	if token == "" {
		*s = ""
		return nil
	}

	plain, err := Decrypt(token)
	if err != nil {
		return err
	}
	*s = EncryptedString(plain)
	return nil
}

func (s EncryptedString) String() string {
	return string(s)
}
