package utils

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// MinPINCost is the lowest bcrypt work factor accepted for PIN hashes.
const MinPINCost = bcrypt.DefaultCost

// HashPIN returns a salted bcrypt hash of the PIN. Costs below MinPINCost are raised to it.
func HashPIN(pin string, cost int) (string, error) {
	if cost < MinPINCost {
		cost = MinPINCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	return string(bytes), err
}

// CheckPINHash compares a PIN with a bcrypt hash.
func CheckPINHash(pin, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}

// CheckLegacyPIN compares a PIN with a plaintext PIN stored by an old app revision.
func CheckLegacyPIN(pin, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(pin), []byte(stored)) == 1
}
