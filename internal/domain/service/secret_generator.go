package service

// SecretGenerator produces the opaque bearer secrets handed to clients and
// the digests stored in their place.
type SecretGenerator interface {
	// RefreshToken returns 32 bytes of crypto randomness, hex-encoded.
	RefreshToken() (string, error)

	// VerificationToken returns 64 bytes of crypto randomness, base64-encoded.
	VerificationToken() (string, error)

	// Hash returns the storage digest of a secret.
	Hash(secret string) string
}
