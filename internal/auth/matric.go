package auth

import (
	"errors"
	"regexp"
)

var ErrInvalidMatric = errors.New("matric number must be exactly 9 digits")

var matricPattern = regexp.MustCompile(`^\d{9}$`)

// ValidateMatric checks the local student identifier format. It is applied
// at sign-in and again before any snapshot write, so a malformed identifier
// can never reach storage.
func ValidateMatric(matric string) error {
	if !matricPattern.MatchString(matric) {
		return ErrInvalidMatric
	}
	return nil
}
