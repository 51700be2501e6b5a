package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/tareahub/go-tarea-server/users"
)

// UserStore implements users.Store on top of the usuarios table.
type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

func (s *UserStore) GetByEmail(ctx context.Context, correo string) (*users.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, nombre, correo, contrasena FROM usuarios WHERE correo = $1`, correo)
	return scanUser(row)
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (*users.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, nombre, correo, contrasena FROM usuarios WHERE id = $1`, id)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*users.User, error) {
	var user users.User
	err := row.Scan(&user.ID, &user.Nombre, &user.Correo, &user.Contrasena)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[UserStore] scan user")
	}
	return &user, nil
}

func (s *UserStore) List(ctx context.Context) ([]*users.User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, nombre, correo, contrasena FROM usuarios ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "[UserStore List] query")
	}
	defer rows.Close()

	var all []*users.User
	for rows.Next() {
		var user users.User
		if err := rows.Scan(&user.ID, &user.Nombre, &user.Correo, &user.Contrasena); err != nil {
			return nil, errors.Wrap(err, "[UserStore List] scan")
		}
		all = append(all, &user)
	}
	return all, errors.Wrap(rows.Err(), "[UserStore List] rows")
}

func (s *UserStore) Create(ctx context.Context, user *users.User) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO usuarios (nombre, correo, contrasena) VALUES ($1, $2, $3) RETURNING id`,
		user.Nombre, user.Correo, user.Contrasena).Scan(&user.ID)
	return errors.Wrap(err, "[UserStore Create] insert")
}

func (s *UserStore) Update(ctx context.Context, user *users.User) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE usuarios SET nombre = $2, contrasena = $3 WHERE id = $1`,
		user.ID, user.Nombre, user.Contrasena)
	return errors.Wrap(err, "[UserStore Update] exec")
}

func (s *UserStore) Delete(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	return errors.Wrap(err, "[UserStore Delete] exec")
}
