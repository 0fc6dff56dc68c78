package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"myflix/internal/common"
	"myflix/internal/common/security"
	"myflix/internal/common/validation"
	"myflix/internal/domain/model"
	"myflix/internal/domain/repository"
)

type AuthService struct {
	userRepo repository.UserRepository
	hasher   *security.PasswordHasher
	tokens   *security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, hasher *security.PasswordHasher, tokens *security.TokenManager) *AuthService {
	return &AuthService{userRepo: userRepo, hasher: hasher, tokens: tokens}
}

type RegisterRequest struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	Email    string     `json:"email"`
	Birthday *time.Time `json:"birthday,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	violations := validation.ValidateRegistration(validation.RegistrationInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if len(violations) > 0 {
		return nil, common.NewValidationError(violations)
	}

	// Uniqueness needs a store lookup, so it is checked here rather
	// than in the validator. The unique index backstops the race
	// between the check and the insert.
	_, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err == nil {
		return nil, fmt.Errorf("%s already exists: %w", req.Username, common.ErrConflict)
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username uniqueness: %w", err)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: hashed,
		Email:        req.Email,
		Birthday:     req.Birthday,
		Favorites:    []string{},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, fmt.Errorf("%s already exists: %w", req.Username, common.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, common.ErrUnauthorized
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Uniform response; never reveal whether the username exists.
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, common.ErrUnauthorized
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{User: user, Token: token}, nil
}
