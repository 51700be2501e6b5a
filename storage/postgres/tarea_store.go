package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/tareahub/go-tarea-server/tareas"
)

// TareaStore implements tareas.Store on top of the tareas table.
type TareaStore struct {
	pool *pgxpool.Pool
}

func NewTareaStore(pool *pgxpool.Pool) *TareaStore {
	return &TareaStore{pool: pool}
}

func (s *TareaStore) GetByID(ctx context.Context, id int64) (*tareas.Tarea, error) {
	var tarea tareas.Tarea
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, titulo, descripcion, completada FROM tareas WHERE id = $1`, id).
		Scan(&tarea.ID, &tarea.UserID, &tarea.Titulo, &tarea.Descripcion, &tarea.Completada)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[TareaStore GetByID] scan")
	}
	return &tarea, nil
}

func (s *TareaStore) List(ctx context.Context) ([]*tareas.Tarea, error) {
	return s.query(ctx, `SELECT id, user_id, titulo, descripcion, completada FROM tareas ORDER BY id`)
}

func (s *TareaStore) ListByUser(ctx context.Context, userID int64) ([]*tareas.Tarea, error) {
	return s.query(ctx,
		`SELECT id, user_id, titulo, descripcion, completada FROM tareas WHERE user_id = $1 ORDER BY id`,
		userID)
}

func (s *TareaStore) query(ctx context.Context, sql string, args ...any) ([]*tareas.Tarea, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "[TareaStore] query")
	}
	defer rows.Close()

	var all []*tareas.Tarea
	for rows.Next() {
		var tarea tareas.Tarea
		if err := rows.Scan(&tarea.ID, &tarea.UserID, &tarea.Titulo, &tarea.Descripcion, &tarea.Completada); err != nil {
			return nil, errors.Wrap(err, "[TareaStore] scan")
		}
		all = append(all, &tarea)
	}
	return all, errors.Wrap(rows.Err(), "[TareaStore] rows")
}

func (s *TareaStore) Create(ctx context.Context, tarea *tareas.Tarea) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO tareas (user_id, titulo, descripcion, completada) VALUES ($1, $2, $3, $4) RETURNING id`,
		tarea.UserID, tarea.Titulo, tarea.Descripcion, tarea.Completada).Scan(&tarea.ID)
	return errors.Wrap(err, "[TareaStore Create] insert")
}

func (s *TareaStore) Update(ctx context.Context, tarea *tareas.Tarea) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE tareas SET titulo = $2, descripcion = $3, completada = $4 WHERE id = $1`,
		tarea.ID, tarea.Titulo, tarea.Descripcion, tarea.Completada)
	return errors.Wrap(err, "[TareaStore Update] exec")
}

func (s *TareaStore) Delete(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM tareas WHERE id = $1`, id)
	return errors.Wrap(err, "[TareaStore Delete] exec")
}
