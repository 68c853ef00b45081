package security

import (
	"XuBank/internal/core/ports"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/argon2"
)

const saltSize = 16

// Argon2Params tunes the argon2id key derivation.
type Argon2Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
	KeyLen    uint32
}

// DefaultArgon2Params follows the OWASP minimum for argon2id.
var DefaultArgon2Params = Argon2Params{Time: 2, MemoryKiB: 19 * 1024, Threads: 1, KeyLen: 32}

// credentialService implements the CredentialService port using argon2id.
type credentialService struct {
	params Argon2Params
	log    zerolog.Logger
}

var _ ports.CredentialService = (*credentialService)(nil) // Ensure compliance

// NewCredentialService validates params and builds the service.
func NewCredentialService(params Argon2Params, baseLogger *zerolog.Logger) (ports.CredentialService, error) {
	if params.Time == 0 || params.Threads == 0 || params.KeyLen < 16 {
		return nil, errors.New("argon2 time, threads and key length (>=16) must be set")
	}
	if params.MemoryKiB < 8*uint32(params.Threads) {
		return nil, fmt.Errorf("argon2 memory must be at least %d KiB for %d threads", 8*uint32(params.Threads), params.Threads)
	}

	log := baseLogger.With().Str("component", "credential_service").Logger()
	log.Info().
		Uint32("time", params.Time).
		Uint32("memory_kib", params.MemoryKiB).
		Uint8("threads", params.Threads).
		Msg("Credential service initialized")

	return &credentialService{params: params, log: log}, nil
}

// GenerateSalt returns 16 bytes from crypto/rand.
func (s *credentialService) GenerateSalt() ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		s.log.Error().Err(err).Msg("Failed to generate salt")
		return nil, fmt.Errorf("could not generate salt: %w", err)
	}
	return salt, nil
}

// Hash derives the digest of password and salt.
func (s *credentialService) Hash(password string, salt []byte) ([]byte, error) {
	if len(salt) == 0 {
		return nil, errors.New("salt must not be empty")
	}
	return argon2.IDKey([]byte(password), salt, s.params.Time, s.params.MemoryKiB, s.params.Threads, s.params.KeyLen), nil
}

// Verify fails closed on empty inputs, hash errors and length mismatch.
func (s *credentialService) Verify(password string, digest, salt []byte) bool {
	if len(digest) == 0 || len(salt) == 0 {
		return false
	}
	computed, err := s.Hash(password, salt)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to recompute digest")
		return false
	}
	// ConstantTimeCompare returns 0 when lengths differ.
	return subtle.ConstantTimeCompare(computed, digest) == 1
}
