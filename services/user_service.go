package services

import (
	"context"
	"errors"
	"time"

	"linkup_server/models"

	"github.com/google/uuid"
)

// UserService manages user registration, login by name, and the profile
// read paths that attach a user's events and matches.
type UserService struct {
	Users   UserStore
	Events  *EventService
	Matches *MatchService
}

// CreateUserInput is a registration request. Name is the only required
// field; email is checked for duplicates when given.
type CreateUserInput struct {
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Location *models.Location `json:"location"`
}

// CreateUser registers a new user.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if input.Name == "" {
		return nil, NewValidationError("name", "required")
	}

	if input.Email != "" {
		_, err := s.Users.FindByEmail(ctx, input.Email)
		if err == nil {
			return nil, NewValidationError("email", "already exists")
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}

	user := models.User{
		UserID:    uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if input.Location != nil {
		user.Location = *input.Location
	}

	if err := s.Users.Insert(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login resolves a user by exact name.
func (s *UserService) Login(ctx context.Context, name string) (*models.User, error) {
	if name == "" {
		return nil, NewValidationError("name", "required")
	}
	return s.Users.FindByName(ctx, name)
}

// GetUserWithActivity returns the user together with their events (date
// ascending) and matches (newest first).
func (s *UserService) GetUserWithActivity(ctx context.Context, userID string) (*models.UserWithActivity, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	events, err := s.Events.GetEventsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	matches, err := s.Matches.GetMatchesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.UserWithActivity{
		User:    *user,
		Events:  events,
		Matches: matches,
	}, nil
}

// UpdateUserInput carries the mutable profile fields.
type UpdateUserInput struct {
	Location *models.Location `json:"location"`
	Photo    *string          `json:"photo"`
}

// UpdateUser applies the provided profile fields and returns the updated
// user.
func (s *UserService) UpdateUser(ctx context.Context, userID string, input UpdateUserInput) (*models.User, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Location != nil {
		user.Location = *input.Location
	}
	if input.Photo != nil {
		user.Photo = *input.Photo
	}

	if err := s.Users.Update(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}
