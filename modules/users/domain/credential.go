package domain

import (
	"golang.org/x/crypto/bcrypt"
)

// Credential wraps a one-way password digest. The plaintext never leaves
// NewCredential and the digest never travels in outbound payloads - DTO
// mappers must not touch it.
type Credential struct {
	digest string
}

// NewCredential hashes a plaintext password into a Credential.
// Fails with ErrPasswordRequired on an empty password: a user cannot be
// created without one.
func NewCredential(plaintext string) (Credential, error) {
	if plaintext == "" {
		return Credential{}, ErrPasswordRequired
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return Credential{}, err
	}
	return Credential{digest: string(digest)}, nil
}

// CredentialFromDigest rebuilds a Credential from a stored digest.
// Used by repositories when reconstituting users.
func CredentialFromDigest(digest string) Credential {
	return Credential{digest: digest}
}

// Verify reports whether plaintext matches the stored digest.
func (c Credential) Verify(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.digest), []byte(plaintext)) == nil
}

// Digest exposes the raw digest for persistence only.
func (c Credential) Digest() string { return c.digest }

func (c Credential) IsZero() bool { return c.digest == "" }
