package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskboard/taskboard/internal/domain/entity"
	"github.com/taskboard/taskboard/internal/domain/repository"
)

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(t *entity.Task) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (title, completed, owner)
		VALUES ($1, $2, $3)
		RETURNING id
	`, t.Title, t.Completed, t.Owner)

	return row.Scan(&t.ID)
}

func (r *TaskRepository) GetByID(id int64) (*entity.Task, error) {
	ctx := context.Background()
	t := &entity.Task{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, title, completed, owner
		FROM tasks
		WHERE id = $1
	`, id)

	if err := row.Scan(&t.ID, &t.Title, &t.Completed, &t.Owner); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return t, nil
}

func (r *TaskRepository) ListByOwner(owner string) ([]*entity.Task, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT id, title, completed, owner
		FROM tasks
		WHERE owner = $1
		ORDER BY id
	`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*entity.Task, 0)
	for rows.Next() {
		t := &entity.Task{}
		if err := rows.Scan(&t.ID, &t.Title, &t.Completed, &t.Owner); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) Update(t *entity.Task) error {
	ctx := context.Background()

	res, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET title = $1, completed = $2
		WHERE id = $3
	`, t.Title, t.Completed, t.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(id int64) error {
	ctx := context.Background()

	res, err := r.pool.Exec(ctx, `
		DELETE FROM tasks
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
