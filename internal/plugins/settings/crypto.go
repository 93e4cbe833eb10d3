package settings

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
)

// errCiphertextTooShort is returned for stored values shorter than a nonce.
var errCiphertextTooShort = errors.New("ciphertext too short")

// secretBox seals WiFi passwords with AES-256-GCM. The key is SHA-256 of the
// application secret, so any length secret works consistently.
type secretBox struct {
	aead cipher.AEAD
}

// newSecretBox builds the AEAD once at startup.
func newSecretBox(secret string) (*secretBox, error) {
	key := sha256.Sum256([]byte(secret))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}

	return &secretBox{aead: gcm}, nil
}

// seal encrypts plaintext. The nonce is prepended to the ciphertext so open
// can extract it: [nonce][ciphertext+tag]. Returns nil for empty input.
func (b *secretBox) seal(plaintext []byte) ([]byte, error) {
	if len(plaintext) == 0 {
		return nil, nil
	}

	nonce := make([]byte, b.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	return b.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// open reverses seal. Returns nil for empty input.
func (b *secretBox) open(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 {
		return nil, nil
	}

	nonceSize := b.aead.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, errCiphertextTooShort
	}

	nonce, ct := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := b.aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypting: %w", err)
	}

	return plaintext, nil
}
