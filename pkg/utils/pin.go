package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
)

const (
	MinPinLength = 4
	MaxPinLength = 20
)

// HashPin hashes a journal entry PIN with SHA-256 and returns it base64
// encoded. PINs are short soft-access codes, not account credentials, so a
// fast unsalted digest matches their threat model and keeps hashes
// deterministic for direct comparison.
func HashPin(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// VerifyPinHash compares a candidate PIN against a stored base64 hash in
// constant time.
func VerifyPinHash(pin, storedHash string) bool {
	computed := HashPin(pin)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}

// ValidatePin validates PIN length when a PIN is supplied.
func ValidatePin(pin string) error {
	if len(pin) < MinPinLength || len(pin) > MaxPinLength {
		return &ValidationError{Field: "pin", Message: "PIN must be between 4 and 20 characters"}
	}
	return nil
}
