package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters; keyLen and saltLen match the stored hash format
// "hex(key).hex(salt)".
const (
	scryptN = 16384
	scryptR = 8
	scryptP = 1
	keyLen  = 64
	saltLen = 16
)

// HashPassword derives a scrypt key from password with a fresh random salt
// and encodes both as "hex(key).hex(salt)".
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}

	return hex.EncodeToString(key) + "." + hex.EncodeToString(salt), nil
}

// ComparePasswords reports whether supplied matches the stored hash. The
// comparison is constant-time; a malformed stored value compares false with
// an error.
func ComparePasswords(supplied, stored string) (bool, error) {
	hashPart, saltPart, ok := strings.Cut(stored, ".")
	if !ok {
		return false, fmt.Errorf("malformed password hash")
	}

	storedKey, err := hex.DecodeString(hashPart)
	if err != nil {
		return false, fmt.Errorf("decode hash: %w", err)
	}
	salt, err := hex.DecodeString(saltPart)
	if err != nil {
		return false, fmt.Errorf("decode salt: %w", err)
	}

	suppliedKey, err := scrypt.Key([]byte(supplied), salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return false, fmt.Errorf("derive key: %w", err)
	}

	return subtle.ConstantTimeCompare(storedKey, suppliedKey) == 1, nil
}
