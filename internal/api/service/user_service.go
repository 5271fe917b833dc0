package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"wardrobe/internal/api/models"
	"wardrobe/internal/api/repository"
	"wardrobe/internal/session"
)

// ErrUsernameTaken is returned when registering an already existing username.
var ErrUsernameTaken = errors.New("username already exists")

// ErrInvalidCredentials is returned for an unknown username or a wrong
// password; the two cases are not distinguished.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserService defines the interface for user-related business logic.
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, error)
}

type userService struct {
	userRepo repository.UserRepository
	sessions *session.Service
}

// NewUserService creates a new UserService issuing tokens from the given
// session service.
func NewUserService(userRepo repository.UserRepository, sessions *session.Service) UserService {
	return &userService{userRepo: userRepo, sessions: sessions}
}

// Register creates the user and immediately establishes a session, returning
// the new user and a signed session token.
func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, string, error) {
	existingUser, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, "", err
	}
	if existingUser != nil {
		return nil, "", ErrUsernameTaken
	}

	user := &models.User{
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
	}
	if err := s.userRepo.CreateUser(ctx, user, req.Password); err != nil {
		return nil, "", err
	}

	token, err := s.sessions.Issue(user.Username)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login checks the credentials and returns the user plus a signed session
// token on success.
func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(user.Username)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
