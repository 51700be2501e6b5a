// Package tareas holds the task model and its service.
package tareas

import "context"

// Tarea is a task owned by a single user.
type Tarea struct {
	ID          int64   `json:"id,omitempty"`
	UserID      int64   `json:"userId"`
	Titulo      string  `json:"titulo"`
	Descripcion *string `json:"descripcion"`
	Completada  bool    `json:"completada"`
}

// Store persists tareas. GetByID returns nil without error when no row
// matches.
type Store interface {
	GetByID(ctx context.Context, id int64) (*Tarea, error)
	List(ctx context.Context) ([]*Tarea, error)
	ListByUser(ctx context.Context, userID int64) ([]*Tarea, error)
	Create(ctx context.Context, tarea *Tarea) error
	Update(ctx context.Context, tarea *Tarea) error
	Delete(ctx context.Context, id int64) error
}
