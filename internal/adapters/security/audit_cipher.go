package security

import (
	"XuBank/internal/core/ports"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

var (
	// ErrKeyMismatch means the envelope was sealed under a different key.
	ErrKeyMismatch = errors.New("envelope sealed with another key")
	// ErrMalformedEnvelope means the input is not "<key id>.<base64>".
	ErrMalformedEnvelope = errors.New("malformed envelope")
)

// auditCipher seals audit fields with AES-GCM. An envelope is
// "<key id>.<base64(nonce || ciphertext)>"; the key ID is the first four
// bytes of the key's SHA-256, so rows written under a rotated key are
// recognisable without trying to decrypt them.
type auditCipher struct {
	gcm   cipher.AEAD
	keyID string
	log   zerolog.Logger
}

var _ ports.SecurityPort = (*auditCipher)(nil)

// NewAuditCipher takes the hex-encoded ENCRYPTION_KEY (16 or 32 bytes).
func NewAuditCipher(hexKey string, baseLogger *zerolog.Logger) (ports.SecurityPort, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("encryption key must be hex-encoded: %w", err)
	}
	if len(key) != 16 && len(key) != 32 {
		return nil, fmt.Errorf("encryption key must be 16 or 32 bytes, got %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("could not create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("could not create GCM: %w", err)
	}

	sum := sha256.Sum256(key)
	keyID := hex.EncodeToString(sum[:4])

	log := baseLogger.With().Str("component", "audit_cipher").Str("key_id", keyID).Logger()
	log.Info().Int("key_bits", len(key)*8).Msg("Audit cipher initialized")

	return &auditCipher{gcm: gcm, keyID: keyID, log: log}, nil
}

func (c *auditCipher) KeyID() string { return c.keyID }

func (c *auditCipher) Seal(plaintext, associatedData []byte) (string, error) {
	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		c.log.Error().Err(err).Msg("Failed to generate nonce")
		return "", fmt.Errorf("could not generate nonce: %w", err)
	}
	sealed := c.gcm.Seal(nonce, nonce, plaintext, associatedData)
	return c.keyID + "." + base64.RawStdEncoding.EncodeToString(sealed), nil
}

func (c *auditCipher) Open(envelope string, associatedData []byte) ([]byte, error) {
	keyID, body, ok := strings.Cut(envelope, ".")
	if !ok {
		return nil, ErrMalformedEnvelope
	}
	if keyID != c.keyID {
		return nil, fmt.Errorf("%w: %s", ErrKeyMismatch, keyID)
	}

	raw, err := base64.RawStdEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	nonceSize := c.gcm.NonceSize()
	if len(raw) < nonceSize {
		return nil, fmt.Errorf("%w: too short", ErrMalformedEnvelope)
	}

	plaintext, err := c.gcm.Open(nil, raw[:nonceSize], raw[nonceSize:], associatedData)
	if err != nil {
		c.log.Warn().Err(err).Msg("Failed to open audit envelope (tampered or moved?)")
		return nil, fmt.Errorf("could not decrypt: %w", err)
	}
	return plaintext, nil
}
