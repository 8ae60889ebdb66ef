package services

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/pet-adoption-jtn/pet-adoption/internal/apperror"
	"github.com/pet-adoption-jtn/pet-adoption/internal/models"
)

// Claims are the identity fields carried inside a token.
type Claims struct {
	ID       string
	Username string
	Email    string
}

// TokenService issues and verifies signed identity tokens.
//
// Tokens carry the claims as of issuance and are never checked against the
// database, so an edited or deleted user's token stays valid until it expires.
// With ttl zero (the default) tokens never expire; set a ttl to add and
// enforce an exp claim.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService signing with the given secret.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token embedding the user's identity claims.
func (s *TokenService) Issue(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"iat":      time.Now().Unix(),
	}
	if s.ttl > 0 {
		claims["exp"] = time.Now().Add(s.ttl).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks the token's signature and returns its claims. The signing
// method is pinned to HMAC so a token claiming another algorithm is rejected
// outright. Every structural failure maps to the same authentication error.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.Authentication("Authentication Failed")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperror.Authentication("Authentication Failed")
	}

	id, _ := mapClaims["id"].(string)
	username, _ := mapClaims["username"].(string)
	email, _ := mapClaims["email"].(string)
	if id == "" {
		return nil, apperror.Authentication("Authentication Failed")
	}

	return &Claims{
		ID:       id,
		Username: username,
		Email:    email,
	}, nil
}
