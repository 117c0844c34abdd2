package usecase

import (
	"context"
	"time"

	"notesvc/model"
	"notesvc/services"

	"github.com/google/uuid"
)

type UserStore interface {
	Insert(ctx context.Context, user *model.User) error
	// FindByUsername returns (nil, nil) when no user exists.
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

type UserService struct {
	Store UserStore
}

func NewUserService(store UserStore) *UserService {
	return &UserService{Store: store}
}

// Register creates a user with a hashed password. The username must be free.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	existing, err := s.Store.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := services.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserID:    uuid.NewString(),
		Username:  username,
		Email:     email,
		Password:  hash,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.Store.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate resolves a username/password pair to the stored user.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.Store.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	match, err := services.VerifyPassword(user.Password, password)
	if err != nil || !match {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
