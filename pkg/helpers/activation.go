package helpers

import (
	"crypto/rand"
	"encoding/hex"
)

// GenActivationCode generates an opaque random code embedded in activation links
func GenActivationCode() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
