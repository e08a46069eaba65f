package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/taskboard/taskboard/internal/domain/entity"
	repo "github.com/taskboard/taskboard/internal/domain/repository"
	"github.com/taskboard/taskboard/pkg/helpers"
	"github.com/taskboard/taskboard/pkg/token"
)

// ErrInvalidCredentials covers both an unknown username and a wrong
// password. Callers get one shape so login responses cannot be used to
// enumerate registered usernames.
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	Repo   repo.UserRepository
	Tokens *token.Manager
	Logger *logrus.Logger
}

func NewAuthService(r repo.UserRepository, tokens *token.Manager, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: r, Tokens: tokens, Logger: logger}
}

// Register hashes the password and stores a new principal. Registration
// does not authenticate: no token is issued. A duplicate username surfaces
// as repository.ErrDuplicateUsername from the store's unique constraint.
func (s *AuthService) Register(ctx context.Context, username, password string) (*entity.User, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Username: username, Password: hash}
	if err := s.Repo.Create(u); err != nil {
		if errors.Is(err, repo.ErrDuplicateUsername) {
			return nil, err
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("username", username).Error("user insert failed")
		}
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and issues a bearer token bound to the
// username. A missing user and a failed password check both collapse into
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	u, err := s.Repo.GetByUsername(username)
	if err != nil || u == nil {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if !helpers.CheckPassword(u.Password, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}
	raw, exp, err := s.Tokens.Issue(u.Username)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("username", username).Error("token issue failed")
		}
		return "", time.Time{}, err
	}
	return raw, exp, nil
}
