package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"spendly-be/internal/apperrors"
	"spendly-be/internal/models"
	"spendly-be/internal/repository"
)

// UserService defines the interface for user profile business logic
type UserService interface {
	GetUser(userID string) (*models.UserResponse, error)
	UpdateUser(userID string, req *models.UpdateUserRequest) (*models.UserResponse, error)
	DeactivateUser(userID string) (*models.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetUser returns the current user's profile
func (s *userService) GetUser(userID string) (*models.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// UpdateUser applies the provided profile changes, re-checking uniqueness
// for email and username
func (s *userService) UpdateUser(userID string, req *models.UpdateUserRequest) (*models.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(*req.Email); err == nil {
			return nil, fmt.Errorf("email already registered: %w", apperrors.ErrConflict)
		}
		user.Email = *req.Email
	}

	if req.Username != nil && *req.Username != user.Username {
		if _, err := s.userRepo.FindByUsername(*req.Username); err == nil {
			return nil, fmt.Errorf("username already taken: %w", apperrors.ErrConflict)
		}
		user.Username = *req.Username
	}

	if req.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	updated, err := s.userRepo.Update(user)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(updated)
	return &resp, nil
}

// DeactivateUser soft-deletes the account. The record stays in place so the
// user's categories, expenses and budgets keep a valid owner.
func (s *userService) DeactivateUser(userID string) (*models.UserResponse, error) {
	if err := s.userRepo.Deactivate(userID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}
