// AngelaMos | 2026
// password.go

package core

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

type PasswordParams struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
	SaltLen int
}

var DefaultPasswordParams = PasswordParams{
	Time:    1,
	Memory:  64 * 1024,
	Threads: 4,
	KeyLen:  32,
	SaltLen: 16,
}

// PasswordHasher produces and checks argon2id hashes in the PHC string
// format. Hashes made with other parameters still verify and are flagged
// for rehash.
type PasswordHasher struct {
	params    PasswordParams
	dummyOnce sync.Once
	dummyHash string
}

func NewPasswordHasher(params PasswordParams) *PasswordHasher {
	return &PasswordHasher{params: params}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey(
		[]byte(password),
		salt,
		h.params.Time,
		h.params.Memory,
		h.params.Threads,
		h.params.KeyLen,
	)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Time,
		h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether password matches encoded. When it matches but the
// stored parameters are stale, a fresh hash is returned alongside.
func (h *PasswordHasher) Verify(password, encoded string) (bool, string, error) {
	params, salt, key, err := decodePasswordHash(encoded)
	if err != nil {
		return false, "", err
	}

	other := argon2.IDKey(
		[]byte(password),
		salt,
		params.Time,
		params.Memory,
		params.Threads,
		params.KeyLen,
	)

	if subtle.ConstantTimeCompare(key, other) != 1 {
		return false, "", nil
	}

	if params == h.currentParams(len(salt)) {
		return true, "", nil
	}

	rehash, err := h.Hash(password)
	if err != nil {
		//nolint:nilerr // password verified; rehash failure is non-critical
		return true, "", nil
	}
	return true, rehash, nil
}

// VerifyTimingSafe runs a full verification even when no stored hash
// exists, so unknown accounts cost the same as wrong passwords.
func (h *PasswordHasher) VerifyTimingSafe(
	password string,
	encoded *string,
) (bool, string, error) {
	if encoded == nil || *encoded == "" {
		h.dummyOnce.Do(func() {
			//nolint:errcheck // an empty dummy still fails decoding in constant time
			h.dummyHash, _ = h.Hash("dummy_password_for_timing_attack_prevention")
		})
		//nolint:errcheck // result is discarded
		_, _, _ = h.Verify(password, h.dummyHash)
		return false, "", nil
	}

	return h.Verify(password, *encoded)
}

func (h *PasswordHasher) currentParams(saltLen int) PasswordParams {
	p := h.params
	p.SaltLen = saltLen
	return p
}

func decodePasswordHash(encoded string) (PasswordParams, []byte, []byte, error) {
	var params PasswordParams

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return params, nil, nil, fmt.Errorf("invalid hash format")
	}

	if parts[1] != "argon2id" {
		return params, nil, nil, fmt.Errorf("unsupported algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params, nil, nil, fmt.Errorf("invalid version: %w", err)
	}

	if version != argon2.Version {
		return params, nil, nil, fmt.Errorf("incompatible version: %d", version)
	}

	if _, err := fmt.Sscanf(
		parts[3],
		"m=%d,t=%d,p=%d",
		&params.Memory,
		&params.Time,
		&params.Threads,
	); err != nil {
		return params, nil, nil, fmt.Errorf("invalid params: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, fmt.Errorf("decode salt: %w", err)
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return params, nil, nil, fmt.Errorf("decode hash: %w", err)
	}

	params.SaltLen = len(salt)
	//nolint:gosec // G115: key length is always small
	params.KeyLen = uint32(len(key))

	return params, salt, key, nil
}
