// Package service provides credential handling primitives for authentication.
package service

import (
	"crypto/sha256"
	"encoding/hex"
)

// CredentialService derives safe representations of session credentials.
type CredentialService interface {
	// HashCredential returns the SHA-256 hex digest of a session credential.
	// The digest is the only representation of the credential allowed in
	// cache keys and log lines; the raw value must never leave the request.
	HashCredential(credential string) string
}

// credentialService implements CredentialService using SHA-256.
type credentialService struct{}

// NewCredentialService creates a CredentialService backed by SHA-256.
func NewCredentialService() CredentialService {
	return &credentialService{}
}

// HashCredential hashes a session credential using SHA-256.
// Returns the hash as a hexadecimal string.
func (c *credentialService) HashCredential(credential string) string {
	hash := sha256.Sum256([]byte(credential))
	return hex.EncodeToString(hash[:])
}
