package service

import (
	"context"
	"fmt"
	"time"

	"myflix/internal/common"
	"myflix/internal/common/security"
	"myflix/internal/common/validation"
	"myflix/internal/domain/model"
	"myflix/internal/domain/repository"
)

type UserService struct {
	userRepo repository.UserRepository
	hasher   *security.PasswordHasher
}

func NewUserService(userRepo repository.UserRepository, hasher *security.PasswordHasher) *UserService {
	return &UserService{userRepo: userRepo, hasher: hasher}
}

type UpdateProfileRequest struct {
	Password string     `json:"password,omitempty"`
	Email    string     `json:"email"`
	Birthday *time.Time `json:"birthday,omitempty"`
	Death    *time.Time `json:"death,omitempty"`
}

func (s *UserService) Get(ctx context.Context, username string) (*model.User, error) {
	return s.userRepo.FindByUsername(ctx, username)
}

// UpdateProfile re-validates the payload and re-hashes the password
// only when one was supplied. A missing account surfaces as NotFound,
// distinct from a validation failure.
func (s *UserService) UpdateProfile(ctx context.Context, username string, req UpdateProfileRequest) (*model.User, error) {
	violations := validation.ValidateProfileUpdate(validation.ProfileUpdateInput{
		Password: req.Password,
		Email:    req.Email,
	})
	if len(violations) > 0 {
		return nil, common.NewValidationError(violations)
	}

	update := model.UserUpdate{
		Email:    req.Email,
		Birthday: req.Birthday,
		Death:    req.Death,
	}
	if req.Password != "" {
		hashed, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		update.PasswordHash = &hashed
	}

	return s.userRepo.Update(ctx, username, update)
}

func (s *UserService) Delete(ctx context.Context, username string) error {
	return s.userRepo.Delete(ctx, username)
}

// AddFavorite appends the movie ID; repeats are allowed. The target
// movie is not checked for existence, matching the catalog boundary.
func (s *UserService) AddFavorite(ctx context.Context, username, movieID string) (*model.User, error) {
	return s.userRepo.PushFavorite(ctx, username, movieID)
}

// RemoveFavorite removes every occurrence of the movie ID, failing
// with NotFound when the user lacks the movie in favorites.
func (s *UserService) RemoveFavorite(ctx context.Context, username, movieID string) (*model.User, error) {
	return s.userRepo.PullFavorite(ctx, username, movieID)
}
