// Package cryptox implements the credential hash format stored for users:
//
//	<iterations>.<base64(salt)>.<base64(derivedKey)>
//
// The key is derived with PBKDF2-HMAC-SHA256. Because the iteration count is
// part of the stored string, old hashes keep verifying after the configured
// cost is raised; Verify flags them so callers can re-hash on login.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/mywallet/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize = 16
	KeySize  = 32

	// DefaultIterations is used when the hasher is built with a non-positive count.
	DefaultIterations = 100_000

	hashSeparator = "."
	hashFields    = 3
)

// PasswordHasher derives and verifies credential hashes. It is safe for
// concurrent use.
type PasswordHasher struct {
	iterations int
}

// NewPasswordHasher returns a hasher producing hashes with the given
// iteration count.
func NewPasswordHasher(iterations int) *PasswordHasher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &PasswordHasher{iterations: iterations}
}

// Iterations returns the cost new hashes are produced with.
func (h *PasswordHasher) Iterations() int {
	return h.iterations
}

// Hash returns a freshly salted credential hash of secret.
func (h *PasswordHasher) Hash(secret string) (string, error) {
	salt, err := common.GenerateRandByteArray(SaltSize)
	if err != nil {
		return "", fmt.Errorf("salt generation error: %w", err)
	}

	key := deriveKey(secret, salt, h.iterations)
	defer common.WipeByteArray(key)

	return strings.Join([]string{
		strconv.Itoa(h.iterations),
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(key),
	}, hashSeparator), nil
}

// Verify checks secret against a stored hash. The key is re-derived with the
// stored salt and iteration count. needsUpgrade reports whether the stored
// count differs from the hasher's, independently of matched.
//
// A hash that cannot be parsed yields an error wrapping
// common.ErrMalformedCredential.
func (h *PasswordHasher) Verify(hash, secret string) (matched bool, needsUpgrade bool, err error) {
	iterations, salt, key, err := parseHash(hash)
	if err != nil {
		return false, false, err
	}

	candidate := deriveKey(secret, salt, iterations)
	defer common.WipeByteArray(candidate)

	matched = subtle.ConstantTimeCompare(candidate, key) == 1
	needsUpgrade = iterations != h.iterations

	return matched, needsUpgrade, nil
}

func deriveKey(secret string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(secret), salt, iterations, KeySize, sha256.New)
}

func parseHash(hash string) (iterations int, salt, key []byte, err error) {
	parts := strings.Split(hash, hashSeparator)
	if len(parts) != hashFields {
		return 0, nil, nil, fmt.Errorf("%w: expected %d fields, got %d", common.ErrMalformedCredential, hashFields, len(parts))
	}

	iterations, err = strconv.Atoi(parts[0])
	if err != nil || iterations <= 0 {
		return 0, nil, nil, fmt.Errorf("%w: bad iteration count %q", common.ErrMalformedCredential, parts[0])
	}

	salt, err = base64.StdEncoding.DecodeString(parts[1])
	if err != nil || len(salt) == 0 {
		return 0, nil, nil, fmt.Errorf("%w: bad salt encoding", common.ErrMalformedCredential)
	}

	key, err = base64.StdEncoding.DecodeString(parts[2])
	if err != nil || len(key) == 0 {
		return 0, nil, nil, fmt.Errorf("%w: bad key encoding", common.ErrMalformedCredential)
	}

	return iterations, salt, key, nil
}
