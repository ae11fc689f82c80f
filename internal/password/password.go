// Package password implements argon2id hashing and verification of login
// secrets. Hashes are encoded in the standard PHC string format so the salt
// and cost parameters travel with the hash itself.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters applied server-wide. RFC 9106 recommended settings.
const (
	timeCost    = 1
	memoryCost  = 64 * 1024
	parallelism = 4
	saltLen     = 16
	keyLen      = 32
)

// Hash derives an argon2id hash of raw with a fresh random salt and returns
// it as a PHC-encoded string.
func Hash(raw string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(raw), salt, timeCost, memoryCost, parallelism, keyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		memoryCost, timeCost, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// Verify reports whether raw matches the PHC-encoded hash. It never returns
// an error: malformed hashes and mismatches both report false.
func Verify(raw, encoded string) bool {
	salt, key, m, t, p, ok := decode(encoded)
	if !ok {
		return false
	}

	candidate := argon2.IDKey([]byte(raw), salt, t, m, p, uint32(len(key)))
	return subtle.ConstantTimeCompare(candidate, key) == 1
}

// decode parses a "$argon2id$v=19$m=...,t=...,p=...$salt$hash" string,
// returning the salt, derived key and cost parameters it embeds.
func decode(encoded string) (salt, key []byte, m, t uint32, p uint8, ok bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, 0, 0, 0, false
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return nil, nil, 0, 0, 0, false
	}

	var err error
	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, nil, 0, 0, 0, false
	}
	if key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, nil, 0, 0, 0, false
	}
	if len(salt) == 0 || len(key) == 0 {
		return nil, nil, 0, 0, 0, false
	}
	return salt, key, m, t, p, true
}
