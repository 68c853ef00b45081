package ports

// SecurityPort seals data that leaves the process, such as audit messages
// written to the audit store.
type SecurityPort interface {
	// KeyID names the key new envelopes are sealed with.
	KeyID() string

	// Seal encrypts plaintext bound to associatedData and returns a
	// printable envelope that carries the key ID.
	Seal(plaintext, associatedData []byte) (string, error)

	// Open reverses Seal. It fails for an envelope sealed under another
	// key, with other associated data, or tampered with.
	Open(envelope string, associatedData []byte) ([]byte, error)
}
