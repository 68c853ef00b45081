package ports

// CredentialService derives and checks salted password digests.
type CredentialService interface {
	// GenerateSalt returns 16 cryptographically random bytes.
	GenerateSalt() ([]byte, error)

	// Hash deterministically derives a digest of password and salt.
	Hash(password string, salt []byte) ([]byte, error)

	// Verify recomputes the digest and compares it in constant time.
	// It fails closed: any error or length mismatch yields false.
	Verify(password string, digest, salt []byte) bool
}
