package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, exp, err := m.Issue("user-1", "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.ID)
	assert.Equal(t, "admin", claims.Role)
}

func TestTokenExpired(t *testing.T) {
	m := NewTokenManager("test-secret", time.Minute)
	token, _, err := m.Issue("user-1", "user")
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("one", time.Hour).Issue("user-1", "user")
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenTampered(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	token, _, err := m.Issue("user-1", "user")
	require.NoError(t, err)

	segments := strings.Split(token, ".")
	require.Len(t, segments, 3)

	offset := 0
	for _, seg := range segments {
		// the last char of a raw base64 segment may carry only padding bits
		for i := 0; i < len(seg)-1; i++ {
			pos := offset + i
			replacement := byte('A')
			if token[pos] == 'A' {
				replacement = 'B'
			}
			tampered := token[:pos] + string(replacement) + token[pos+1:]

			_, err := m.Verify(tampered)
			require.ErrorIs(t, err, ErrInvalidToken, "tampered at %d", pos)
		}
		offset += len(seg) + 1
	}
}

func TestTokenRejectsOtherAlgorithms(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	claims := &Claims{
		ID:   "user-1",
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenGarbage(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	for _, s := range []string{"", "abc", "a.b.c"} {
		_, err := m.Verify(s)
		assert.ErrorIs(t, err, ErrInvalidToken, s)
	}
}

func TestGenActivationCode(t *testing.T) {
	a, err := GenActivationCode()
	require.NoError(t, err)
	b, err := GenActivationCode()
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
