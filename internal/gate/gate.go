// Package gate verifies the startup PIN credential. Hashes are
// argon2id with the salt and cost parameters encoded alongside, so
// parameters can be raised later without breaking stored credentials.
// Bare hex values written by the v1 app are still verified as unsalted
// SHA-256.
package gate

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	// ErrInvalidPIN is returned when an empty PIN is supplied on set.
	ErrInvalidPIN = errors.New("pin must not be empty")

	// ErrAuthExhausted signals that the attempt budget is used up. The
	// gate never terminates the process; the caller decides what an
	// exhausted session means.
	ErrAuthExhausted = errors.New("too many wrong pin attempts")
)

// DefaultAttempts is the startup attempt budget.
const DefaultAttempts = 3

// argon2id cost parameters. PINs are short, so the KDF is what makes
// guessing expensive.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 2
	argonKeyLen  = 32
	saltLen      = 16
)

// Hash derives a salted argon2id hash of the PIN, encoded as
// $argon2id$v=19$m=...,t=...,p=...$<salt>$<key> (both parts base64).
func Hash(pin string) (string, error) {
	if pin == "" {
		return "", ErrInvalidPIN
	}
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(pin), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// Verify reports whether attempt matches the stored hash. Malformed
// stored values never match.
func Verify(attempt, stored string) bool {
	if stored == "" {
		return false
	}
	if !strings.HasPrefix(stored, "$argon2id$") {
		return verifyLegacy(attempt, stored)
	}

	parts := strings.Split(stored, "$")
	if len(parts) != 6 {
		return false
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}
	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}

	derived := argon2.IDKey([]byte(attempt), salt, time, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(derived, key) == 1
}

// verifyLegacy checks a bare hex value as an unsalted SHA-256 digest,
// the format the v1 app wrote to settings.json.
func verifyLegacy(attempt, stored string) bool {
	if _, err := hex.DecodeString(stored); err != nil || len(stored) != sha256.Size*2 {
		return false
	}
	sum := sha256.Sum256([]byte(attempt))
	return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(stored)) == 1
}

// Gate enforces a bounded number of verification attempts.
type Gate struct {
	attempts  int
	remaining int
}

// New creates a gate with the given attempt budget; values below one
// fall back to DefaultAttempts.
func New(attempts int) *Gate {
	if attempts < 1 {
		attempts = DefaultAttempts
	}
	return &Gate{attempts: attempts, remaining: attempts}
}

// Verify checks one attempt against the stored hash. A wrong attempt
// consumes budget; once the budget is spent every call fails with
// ErrAuthExhausted. A correct attempt restores the full budget.
func (g *Gate) Verify(attempt, stored string) (bool, error) {
	if g.remaining <= 0 {
		return false, ErrAuthExhausted
	}
	if Verify(attempt, stored) {
		g.remaining = g.attempts
		return true, nil
	}
	g.remaining--
	if g.remaining <= 0 {
		return false, ErrAuthExhausted
	}
	return false, nil
}

// Remaining returns how many attempts are left.
func (g *Gate) Remaining() int {
	return g.remaining
}

// Reset restores the full attempt budget.
func (g *Gate) Reset() {
	g.remaining = g.attempts
}
