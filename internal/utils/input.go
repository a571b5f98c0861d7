package utils

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

const (
	PhoneDigits = 10
	PINDigits   = 4
	MaxZipLen   = 6
)

// NormalizeDigits folds full-width digits to ASCII and trims surrounding space.
// Phone keypads on some locales emit full-width characters.
func NormalizeDigits(s string) string {
	return strings.TrimSpace(width.Narrow.String(s))
}

// NormalizeText trims space and puts free-form text into NFC so that equal
// names compare equal regardless of how they were typed.
func NormalizeText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// IsDigits reports whether s consists of exactly n ASCII digits.
func IsDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	return onlyDigits(s)
}

// IsValidPhone reports whether s is a 10-digit phone number.
func IsValidPhone(s string) bool {
	return IsDigits(s, PhoneDigits)
}

// IsValidPIN reports whether s is a 4-digit PIN.
func IsValidPIN(s string) bool {
	return IsDigits(s, PINDigits)
}

// IsValidZip reports whether s is empty or at most MaxZipLen digits.
func IsValidZip(s string) bool {
	return len(s) <= MaxZipLen && onlyDigits(s)
}

func onlyDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
