package password

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/argon2"
)

func TestHashAndVerify(t *testing.T) {
	encoded, err := Hash("Secret123!")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	assert.True(t, Verify("Secret123!", encoded))
	assert.False(t, Verify("wrong", encoded))
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("same-password")
	assert.NoError(t, err)
	second, err := Hash("same-password")
	assert.NoError(t, err)

	// Two hashes of the same password must differ, yet both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, Verify("same-password", first))
	assert.True(t, Verify("same-password", second))
}

func TestVerifyMalformedHash(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"not a hash", "password"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"missing fields", "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA"},
		{"bad base64 salt", "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
		{"bad base64 key", "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, Verify("anything", tt.encoded))
		})
	}
}

func TestVerifyReadsParametersFromHash(t *testing.T) {
	// A hash produced with non-default costs still verifies because the
	// parameters travel inside the encoded string.
	salt := []byte("0123456789abcdef")
	key := argon2.IDKey([]byte("pw"), salt, 2, 32*1024, 2, 32)
	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, 32*1024, 2, 2,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	assert.True(t, Verify("pw", encoded))
	assert.False(t, Verify("other", encoded))
}

func TestHashFormat(t *testing.T) {
	encoded, err := Hash("pw")
	assert.NoError(t, err)

	parts := strings.Split(encoded, "$")
	assert.Len(t, parts, 6)
	assert.Equal(t, "argon2id", parts[1])
	assert.Contains(t, parts[3], "m=")
	assert.Contains(t, parts[3], "t=")
	assert.Contains(t, parts[3], "p=")
}
