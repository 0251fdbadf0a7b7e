// Package crypto protects exported snapshots with a passphrase.
//
// A sealed file has the layout magic (4 bytes) + salt (16 bytes) +
// nonce (12 bytes) + AES-256-GCM ciphertext with its auth tag. The
// magic and salt are authenticated as additional data.
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
)

const (
	// NonceSize - размер nonce для AES-GCM (12 bytes стандартный размер)
	NonceSize = 12
)

var sealedMagic = []byte("FSX1")

// ErrNotSealed is returned by Open for data without the sealed header
var ErrNotSealed = errors.New("data is not a sealed snapshot")

// IsSealed reports whether data starts with the sealed header
func IsSealed(data []byte) bool {
	return bytes.HasPrefix(data, sealedMagic)
}

// Encrypt шифрует данные с использованием AES-256-GCM
// Формат результата: nonce (12 bytes) + ciphertext + auth_tag (16 bytes)
func Encrypt(plaintext, key, additional []byte) ([]byte, error) {
	if len(plaintext) == 0 {
		return nil, fmt.Errorf("plaintext cannot be empty")
	}

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// GCM добавляет authentication tag в конец
	return aesGCM.Seal(nonce, nonce, plaintext, additional), nil
}

// Decrypt дешифрует данные, зашифрованные с помощью Encrypt
func Decrypt(encrypted, key, additional []byte) ([]byte, error) {
	if len(encrypted) < NonceSize {
		return nil, fmt.Errorf("encrypted data too short")
	}

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesGCM.Open(nil, encrypted[:NonceSize], encrypted[NonceSize:], additional)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: authentication failed or corrupted data: %w", err)
	}

	return plaintext, nil
}

// Seal encrypts plaintext with a key derived from passphrase
func Seal(plaintext []byte, passphrase string) ([]byte, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return nil, err
	}

	key, err := DeriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}

	header := make([]byte, 0, len(sealedMagic)+SaltSize)
	header = append(header, sealedMagic...)
	header = append(header, salt...)

	encrypted, err := Encrypt(plaintext, key, header)
	if err != nil {
		return nil, err
	}

	return append(header, encrypted...), nil
}

// Open reverses Seal. A wrong passphrase fails authentication.
func Open(sealed []byte, passphrase string) ([]byte, error) {
	if !IsSealed(sealed) {
		return nil, ErrNotSealed
	}

	headerLen := len(sealedMagic) + SaltSize
	if len(sealed) < headerLen+NonceSize {
		return nil, fmt.Errorf("sealed data too short")
	}

	header := sealed[:headerLen]
	key, err := DeriveKey(passphrase, header[len(sealedMagic):])
	if err != nil {
		return nil, err
	}

	return Decrypt(sealed[headerLen:], key, header)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", KeySize, len(key))
	}

	// Создаем AES cipher block
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
