package service

import (
	"context"
	"errors"
	"fmt"

	"parakeet/internal/domain"
	"parakeet/internal/repository"
)

// ProfileUpdate carries the user-editable profile fields. Nil pointers leave
// the current value untouched.
type ProfileUpdate struct {
	FullName *string
	Email    *string
	Language *string
}

// UserService defines the interface for user business logic. Authentication
// is a demo-grade username/password compare; there are no sessions.
type UserService interface {
	GetUser(ctx context.Context, id int64) (domain.User, error)
	Login(ctx context.Context, username, password string) (domain.User, error)
	UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) (domain.User, error)
}

type userService struct {
	users repository.UserStore
}

// NewUserService creates a new instance of UserService
func NewUserService(users repository.UserStore) UserService {
	return &userService{users: users}
}

func (s *userService) GetUser(ctx context.Context, id int64) (domain.User, error) {
	return s.users.GetUser(ctx, id)
}

// Login checks the demo credentials. A missing user and a wrong password are
// indistinguishable to the caller.
func (s *userService) Login(ctx context.Context, username, password string) (domain.User, error) {
	if username == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: username and password required", ErrValidation)
	}
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if user.Password != password {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// UpdateProfile applies a shallow merge of the supplied fields.
func (s *userService) UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) (domain.User, error) {
	return s.users.UpdateUser(ctx, id, repository.UserUpdate{
		FullName: update.FullName,
		Email:    update.Email,
		Language: update.Language,
	})
}
