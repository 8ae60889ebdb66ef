package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pet-adoption-jtn/pet-adoption/internal/apperror"
	"github.com/pet-adoption-jtn/pet-adoption/internal/models"
	"github.com/pet-adoption-jtn/pet-adoption/internal/services"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := services.NewTokenService("test_jwt_secret", 0)

	user := &models.User{
		ID:       "user-123",
		Username: "example",
		Email:    "example@mail.com",
	}
	tokenString, err := tokens.Issue(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := tokens.Verify(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.ID)
	assert.Equal(t, "example", claims.Username)
	assert.Equal(t, "example@mail.com", claims.Email)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := services.NewTokenService("one_secret", 0)
	verifier := services.NewTokenService("another_secret", 0)

	tokenString, err := issuer.Issue(&models.User{ID: "user-123"})
	assert.NoError(t, err)

	claims, err := verifier.Verify(tokenString)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, apperror.ErrAuthentication)
}

func TestTokenMalformed(t *testing.T) {
	tokens := services.NewTokenService("test_jwt_secret", 0)

	for _, tokenString := range []string{"", "garbage", "a.b.c", "invalid.token.string"} {
		claims, err := tokens.Verify(tokenString)
		assert.Nil(t, claims, "token %q should not verify", tokenString)
		assert.ErrorIs(t, err, apperror.ErrAuthentication)
	}
}

func TestTokenExpiry(t *testing.T) {
	tokens := services.NewTokenService("test_jwt_secret", time.Millisecond)

	tokenString, err := tokens.Issue(&models.User{ID: "user-123"})
	assert.NoError(t, err)

	time.Sleep(1100 * time.Millisecond) // exp has one-second resolution

	claims, err := tokens.Verify(tokenString)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, apperror.ErrAuthentication)
}
