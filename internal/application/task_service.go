package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/taskboard/taskboard/internal/domain/entity"
	repo "github.com/taskboard/taskboard/internal/domain/repository"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	// ErrNotTaskOwner is returned when the task exists but belongs to a
	// different principal than the one resolved from the token.
	ErrNotTaskOwner = errors.New("not the task owner")
)

type TaskService struct {
	Repo   repo.TaskRepository
	Logger *logrus.Logger
}

func NewTaskService(r repo.TaskRepository, logger *logrus.Logger) *TaskService {
	return &TaskService{Repo: r, Logger: logger}
}

// Create stores a new task owned by the given principal. New tasks always
// start incomplete.
func (s *TaskService) Create(ctx context.Context, owner, title string) (*entity.Task, error) {
	t := &entity.Task{Title: title, Completed: false, Owner: owner}
	if err := s.Repo.Create(t); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("owner", owner).Error("task insert failed")
		}
		return nil, err
	}
	return t, nil
}

// List returns all tasks owned by the principal.
func (s *TaskService) List(ctx context.Context, owner string) ([]*entity.Task, error) {
	return s.Repo.ListByOwner(owner)
}

// Get returns a task by id if it is owned by the principal.
func (s *TaskService) Get(ctx context.Context, owner string, id int64) (*entity.Task, error) {
	return s.ownedTask(owner, id)
}

// Update replaces the title and completed flag of an owned task.
func (s *TaskService) Update(ctx context.Context, owner string, id int64, title string, completed bool) (*entity.Task, error) {
	t, err := s.ownedTask(owner, id)
	if err != nil {
		return nil, err
	}
	t.Title = title
	t.Completed = completed
	if err := s.Repo.Update(t); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}

// Delete removes an owned task.
func (s *TaskService) Delete(ctx context.Context, owner string, id int64) error {
	if _, err := s.ownedTask(owner, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return nil
}

func (s *TaskService) ownedTask(owner string, id int64) (*entity.Task, error) {
	t, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if t.Owner != owner {
		return nil, ErrNotTaskOwner
	}
	return t, nil
}
