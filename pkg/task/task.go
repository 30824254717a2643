package task

import (
	"context"
)

// Task is a unit of assigned work.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Employee    string `json:"employee"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Fields holds the client-supplied values of a task. Create and Update
// replace every field, so all of them are required.
type Fields struct {
	Title       string `json:"title"`
	Employee    string `json:"employee"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// withID builds a Task from the fields and the given identifier.
func (f Fields) withID(id string) Task {
	return Task{
		ID:          id,
		Title:       f.Title,
		Employee:    f.Employee,
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
		Description: f.Description,
	}
}

// Store is the contract for task persistence.
type Store interface {
	List(ctx context.Context) ([]Task, error)
	Get(ctx context.Context, id string) (*Task, error)
	Create(ctx context.Context, f Fields) (*Task, error)
	Update(ctx context.Context, id string, f Fields) (*Task, error)
	Delete(ctx context.Context, id string) (*Task, error)
}
