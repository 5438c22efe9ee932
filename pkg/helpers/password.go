package helpers

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	credentialIterations = 1000
	credentialKeyLen     = 64
)

// CredentialCodec turns a plaintext password into its stored form.
// The transform is deterministic for a given secret, so verifying a login
// re-encodes the attempt and compares it with the stored value.
type CredentialCodec struct {
	secret []byte
}

func NewCredentialCodec(secret string) *CredentialCodec {
	return &CredentialCodec{secret: []byte(secret)}
}

// Encode returns the hex encoded PBKDF2-SHA512 digest of plain
func (c *CredentialCodec) Encode(plain string) string {
	key := pbkdf2.Key([]byte(plain), c.secret, credentialIterations, credentialKeyLen, sha512.New)
	return hex.EncodeToString(key)
}

// Matches reports whether plain encodes to stored
func (c *CredentialCodec) Matches(plain, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(c.Encode(plain)), []byte(stored)) == 1
}
