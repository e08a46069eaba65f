package entity

// Task is a resource owned by a single principal. Owner carries the
// username resolved from the bearer token; every operation on a task is
// scoped to it.
type Task struct {
	ID        int64
	Title     string
	Completed bool
	Owner     string
}
