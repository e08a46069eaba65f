package repository

import (
	"errors"

	"github.com/taskboard/taskboard/internal/domain/entity"
)

// ErrDuplicateUsername is returned by Create when the username is already
// taken. Uniqueness is enforced by the storage layer's constraint, so two
// concurrent registrations of the same name cannot both succeed.
var ErrDuplicateUsername = errors.New("username already registered")

// UserRepository defines the interface for credential-store operations.
type UserRepository interface {
	Create(u *entity.User) error
	GetByUsername(username string) (*entity.User, error)
}
