package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"docgpt-backend/internal/auth"
	"docgpt-backend/internal/config"
	"docgpt-backend/internal/models"
	"docgpt-backend/internal/store"

	"github.com/google/uuid"
)

// Custom errors for auth service. The first three carry the exact messages
// the API exposes to clients.
var (
	ErrUserAlreadyExists  = errors.New("User already exists")
	ErrUserNotFound       = errors.New("User not found")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrHashingPassword    = errors.New("failed to hash password")
	ErrCreatingSession    = errors.New("failed to create session token")
	ErrCreatingUser       = errors.New("failed to create user")
	ErrValidation         = errors.New("input validation failed")
)

type AuthService struct {
	store store.Store
	cfg   *config.Config
}

func NewAuthService(s store.Store, cfg *config.Config) *AuthService {
	return &AuthService{
		store: s,
		cfg:   cfg,
	}
}

// Signup creates a new user and returns a session token bound to it.
func (s *AuthService) Signup(ctx context.Context, username, password string) (*models.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", fmt.Errorf("%w: username and password cannot be empty", ErrValidation)
	}

	// Check if user already exists
	_, err := s.store.GetUserByUsername(ctx, username)
	if err == nil {
		return nil, "", ErrUserAlreadyExists
	}
	if !errors.Is(err, store.ErrNotFound) {
		// Different error occurred during lookup
		log.Printf("Error checking user existence for %s: %v", username, err)
		return nil, "", fmt.Errorf("failed to check user existence: %w", err)
	}
	// User does not exist (store.ErrNotFound received), proceed.

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		log.Printf("Error hashing password for %s: %v", username, err)
		return nil, "", ErrHashingPassword
	}

	user := &models.User{
		ID:             uuid.New(),
		Username:       username,
		HashedPassword: hashedPassword,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		log.Printf("Error creating user %s: %v", username, err)
		return nil, "", fmt.Errorf("%w: %v", ErrCreatingUser, err)
	}

	token, err := auth.NewSessionToken(user.ID, s.cfg.SessionSecret)
	if err != nil {
		log.Printf("Error creating session token for new user %s (ID: %s): %v", username, user.ID, err)
		return nil, "", ErrCreatingSession
	}

	log.Printf("Successfully signed up user %s (ID: %s)", username, user.ID)
	return user, token, nil
}

// Signin verifies user credentials and returns a session token.
// A missing user and a bad password are reported as distinct errors, which
// the API maps to the same status code but different messages.
func (s *AuthService) Signin(ctx context.Context, username, password string) (*models.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrUserNotFound
		}
		log.Printf("Error retrieving user %s during signin: %v", username, err)
		return nil, "", fmt.Errorf("failed to retrieve user: %w", err)
	}

	if !auth.CheckPasswordHash(password, user.HashedPassword) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.NewSessionToken(user.ID, s.cfg.SessionSecret)
	if err != nil {
		log.Printf("Error creating session token for user %s (ID: %s): %v", username, user.ID, err)
		return nil, "", ErrCreatingSession
	}

	log.Printf("Successfully signed in user %s (ID: %s)", username, user.ID)
	return user, token, nil
}
