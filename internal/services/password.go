package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/pet-adoption-jtn/pet-adoption/internal/apperror"
)

// HashPassword produces a salted bcrypt digest of the plaintext. The salt is
// random, so hashing the same plaintext twice yields different digests.
func HashPassword(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// VerifyPassword reports whether plain matches the stored digest. A mismatch
// is a normal false, not an error; any other bcrypt failure means the stored
// digest itself is unusable and surfaces as a corrupt-credential error.
func VerifyPassword(plain, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, &apperror.AppError{
		Err:     apperror.ErrCorruptCredential,
		Message: "stored credential is corrupt",
	}
}
