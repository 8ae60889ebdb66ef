package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/pet-adoption-jtn/pet-adoption/internal/apperror"
	"github.com/pet-adoption-jtn/pet-adoption/internal/models"
	"github.com/pet-adoption-jtn/pet-adoption/internal/repositories"
	"github.com/pet-adoption-jtn/pet-adoption/pkg/googleauth"
)

// GoogleVerifier validates a federated sign-in token with the identity
// provider and returns the holder's profile.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*googleauth.Profile, error)
}

// emailPattern is the storage-schema pattern for account emails.
var emailPattern = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9-]+(?:\\.[a-zA-Z0-9-]+)*$")

// AuthService handles business logic for accounts and authentication.
type AuthService struct {
	userRepo repositories.UserRepository
	tokens   *TokenService
	google   GoogleVerifier
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, tokens *TokenService, google GoogleVerifier) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		google:   google,
	}
}

// RegisterRequest is the registration payload. Fields are pointers so an
// absent field is distinguishable from an empty string.
type RegisterRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
}

// Register validates and creates a new account. Checks run in a fixed order
// and the first failing one determines the message.
func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	if req.Username == nil || req.Email == nil || req.Password == nil || req.Address == nil || req.Phone == nil {
		return nil, apperror.Validation("Please fill all the columns")
	}
	username := *req.Username
	email := *req.Email
	password := *req.Password
	address := *req.Address
	phone := *req.Phone

	switch {
	case len(password) < 6:
		return nil, apperror.Validation("Minimum password is six characters")
	case len(username) < 6:
		return nil, apperror.Validation("Minimum username is six characters")
	case len(phone) < 11 && phone != "":
		return nil, apperror.Validation("Phone must have a minimum of eleven characters")
	case email == "" || address == "" || phone == "":
		return nil, apperror.Validation("Please fill all the columns")
	case !emailPattern.MatchString(email):
		return nil, apperror.Validation("Invalid email format")
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("Email already exists")
	}

	digest, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: digest,
		Address:  address,
		Phone:    phone,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	user.HasPassword = true
	return user, nil
}

// Login authenticates by email and password and issues an identity token.
// Unknown email, wrong password, and password-less federated accounts all fail
// with the same message so accounts cannot be enumerated.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", nil, apperror.Authentication("Invalid email/password")
	}
	if user.Password == "" {
		return "", nil, apperror.Authentication("Invalid email/password")
	}

	ok, err := VerifyPassword(password, user.Password)
	if err != nil {
		// Corrupt stored digest is a server fault, not a mismatch.
		return "", nil, err
	}
	if !ok {
		return "", nil, apperror.Authentication("Invalid email/password")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, user, nil
}

// GoogleSignIn verifies the provider token, provisions a local account on
// first sign-in, and issues an identity token. Provisioned accounts carry
// placeholder address/phone and no local password.
func (s *AuthService) GoogleSignIn(ctx context.Context, idToken string) (string, *models.User, error) {
	if s.google == nil {
		return "", nil, apperror.Upstream("Google sign-in is not configured")
	}

	profile, err := s.google.Verify(ctx, idToken)
	if err != nil {
		log.Printf("Google token verification failed: %v", err)
		return "", nil, apperror.Upstream("Google token verification failed")
	}

	user, err := s.userRepo.GetByEmail(profile.Email)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			return "", nil, err
		}
		username := profile.Name
		if username == "" {
			if local, _, ok := strings.Cut(profile.Email, "@"); ok {
				username = local
			} else {
				username = profile.Email
			}
		}
		user = &models.User{
			Username: username,
			Email:    profile.Email,
			Address:  "-",
			Phone:    "-",
		}
		if err := s.userRepo.Create(user); err != nil {
			return "", nil, err
		}
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, user, nil
}

// EditProfileRequest is the profile-edit payload.
type EditProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

// EditProfile updates the caller's own account. The ID comes from the
// authenticated identity, never from the request body.
func (s *AuthService) EditProfile(userID string, req *EditProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	user.Username = req.Username
	user.Email = req.Email
	user.Address = req.Address
	user.Phone = req.Phone

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
