package repository

import (
	"errors"

	"github.com/taskboard/taskboard/internal/domain/entity"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

// TaskRepository defines the interface for task persistence.
type TaskRepository interface {
	Create(t *entity.Task) error
	GetByID(id int64) (*entity.Task, error)
	ListByOwner(owner string) ([]*entity.Task, error)
	Update(t *entity.Task) error
	Delete(id int64) error
}
