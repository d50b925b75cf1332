// Package password hashes credentials with argon2id and verifies them
// against the stored PHC-format string. Hashes are salted per call; Verify
// recomputes with the parameters embedded in the hash so cost changes only
// affect new hashes.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Default argon2id parameters (RFC 9106 second recommended option).
const (
	defaultMemory  uint32 = 64 * 1024 // KiB
	defaultTime    uint32 = 1
	defaultThreads uint8  = 4
	saltLength            = 16
	keyLength      uint32 = 32
)

var errMalformedHash = errors.New("password: malformed hash")

// Hash derives a salted argon2id hash and encodes it as a PHC string:
// $argon2id$v=19$m=...,t=...,p=...$<salt>$<digest>.
func Hash(plaintext string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("password: salt: %w", err)
	}

	key := argon2.IDKey([]byte(plaintext), salt, defaultTime, defaultMemory, defaultThreads, keyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, defaultMemory, defaultTime, defaultThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether plaintext matches the stored hash. The digest
// comparison is constant-time. Malformed hashes verify as false.
func Verify(plaintext, encoded string) bool {
	salt, key, memory, time, threads, err := decode(encoded)
	if err != nil {
		return false
	}

	candidate := argon2.IDKey([]byte(plaintext), salt, time, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(candidate, key) == 1
}

func decode(encoded string) (salt, key []byte, memory, time uint32, threads uint8, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, errMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, 0, 0, 0, errMalformedHash
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, nil, 0, 0, 0, errMalformedHash
	}

	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, nil, 0, 0, 0, errMalformedHash
	}
	if key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, nil, 0, 0, 0, errMalformedHash
	}
	return salt, key, memory, time, threads, nil
}
