package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/mywallet/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/pbkdf2"
)

// low cost keeps the suite fast; the format does not depend on it
const testIterations = 1000

func TestHash_Format(t *testing.T) {
	h := NewPasswordHasher(testIterations)

	hash, err := h.Hash("secret-password")
	require.NoError(t, err)

	parts := strings.Split(hash, ".")
	require.Len(t, parts, 3)
	assert.Equal(t, "1000", parts[0])

	salt, err := base64.StdEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	assert.Len(t, salt, SaltSize)

	key, err := base64.StdEncoding.DecodeString(parts[2])
	require.NoError(t, err)
	assert.Len(t, key, KeySize)
}

func TestHash_FreshSaltEachTime(t *testing.T) {
	h := NewPasswordHasher(testIterations)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "two hashes of the same secret must differ by salt")
}

func TestVerify_RoundTrip(t *testing.T) {
	h := NewPasswordHasher(testIterations)

	for _, secret := range []string{"secret-password", "", "пароль", "a.b.c"} {
		hash, err := h.Hash(secret)
		require.NoError(t, err)

		matched, needsUpgrade, err := h.Verify(hash, secret)
		require.NoError(t, err)
		assert.True(t, matched, "secret %q must verify", secret)
		assert.False(t, needsUpgrade)
	}
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	h := NewPasswordHasher(testIterations)

	hash, err := h.Hash("right")
	require.NoError(t, err)

	matched, needsUpgrade, err := h.Verify(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, matched)
	assert.False(t, needsUpgrade)
}

func TestVerify_UpgradeDetection(t *testing.T) {
	salt := []byte("0123456789abcdef")
	key := pbkdf2.Key([]byte("pw"), salt, 500, KeySize, sha256.New)
	stored := fmt.Sprintf("500.%s.%s",
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(key))

	h := NewPasswordHasher(testIterations)

	matched, needsUpgrade, err := h.Verify(stored, "pw")
	require.NoError(t, err)
	assert.True(t, matched, "old hash must still verify with its own iteration count")
	assert.True(t, needsUpgrade)

	matched, needsUpgrade, err = h.Verify(stored, "not-pw")
	require.NoError(t, err)
	assert.False(t, matched)
	assert.True(t, needsUpgrade, "upgrade flag is independent of the match outcome")
}

func TestVerify_OlderHasherSeesNewerHashAsStale(t *testing.T) {
	strong := NewPasswordHasher(2000)
	weak := NewPasswordHasher(testIterations)

	hash, err := strong.Hash("pw")
	require.NoError(t, err)

	matched, needsUpgrade, err := weak.Verify(hash, "pw")
	require.NoError(t, err)
	assert.True(t, matched)
	assert.True(t, needsUpgrade)
}

func TestVerify_Malformed(t *testing.T) {
	h := NewPasswordHasher(testIterations)
	b64 := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef"))

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"one field", "1000"},
		{"two fields", "1000." + b64},
		{"four fields", "1000." + b64 + "." + b64 + "." + b64},
		{"non numeric iterations", "many." + b64 + "." + b64},
		{"zero iterations", "0." + b64 + "." + b64},
		{"bad salt", "1000.!!!." + b64},
		{"bad key", "1000." + b64 + ".%%%"},
		{"empty key", "1000." + b64 + "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, needsUpgrade, err := h.Verify(tt.hash, "pw")
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrMalformedCredential))
			assert.False(t, matched)
			assert.False(t, needsUpgrade)
		})
	}
}

func TestNewPasswordHasher_DefaultsNonPositive(t *testing.T) {
	assert.Equal(t, DefaultIterations, NewPasswordHasher(0).Iterations())
	assert.Equal(t, DefaultIterations, NewPasswordHasher(-5).Iterations())
	assert.Equal(t, 42, NewPasswordHasher(42).Iterations())
}
