package users

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tareahub/go-tarea-server/internal/apperrors"
)

// Service exposes account management over a Store. Password hashing happens
// here so callers never handle plaintext beyond the request boundary.
type Service struct {
	store      Store
	bcryptCost int
}

// NewService creates a user service backed by store.
func NewService(store Store, bcryptCost int) (*Service, error) {
	if store == nil {
		return nil, errors.New("[users.NewService] store is required")
	}
	return &Service{store: store, bcryptCost: bcryptCost}, nil
}

// List returns all users, or NotFound when there are none.
func (s *Service) List(ctx context.Context) ([]*User, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("listing users")
		return nil, apperrors.Internalf(err, "an error occurred while retrieving users")
	}
	if len(all) == 0 {
		return nil, apperrors.NotFoundf("no users found")
	}
	return all, nil
}

// Get returns a single user by id.
func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("user_id", id).Msg("finding user")
		return nil, apperrors.Internalf(err, "an error occurred while finding user")
	}
	if user == nil {
		return nil, apperrors.NotFoundf("user not found")
	}
	return user, nil
}

// CreateParams is the input for Create; Contrasena is plaintext here and is
// hashed before it reaches the store.
type CreateParams struct {
	Nombre     string `json:"nombre"`
	Correo     string `json:"correo"`
	Contrasena string `json:"contrasena"`
}

func (p CreateParams) validate() error {
	if strings.TrimSpace(p.Nombre) == "" || strings.TrimSpace(p.Correo) == "" || p.Contrasena == "" {
		return apperrors.BadRequestf("invalid user data")
	}
	if !strings.Contains(p.Correo, "@") {
		return apperrors.BadRequestf("invalid user data")
	}
	return nil
}

// Create registers a new user with a hashed password.
func (s *Service) Create(ctx context.Context, params CreateParams) (*User, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	hash, err := HashPassword(params.Contrasena, s.bcryptCost)
	if err != nil {
		return nil, apperrors.Internalf(err, "an error occurred while creating user")
	}

	user := &User{
		Nombre:     params.Nombre,
		Correo:     params.Correo,
		Contrasena: hash,
	}
	if err := s.store.Create(ctx, user); err != nil {
		log.Error().Err(err).Str("correo", params.Correo).Msg("creating user")
		return nil, apperrors.Internalf(err, "an error occurred while creating user")
	}
	return user, nil
}

// UpdateParams carries the mutable user fields. An empty Contrasena leaves
// the stored hash untouched.
type UpdateParams struct {
	Nombre     string `json:"nombre"`
	Contrasena string `json:"contrasena"`
}

// Update changes a user's name and, when provided, password.
func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(params.Nombre) != "" {
		user.Nombre = params.Nombre
	}
	if params.Contrasena != "" {
		hash, err := HashPassword(params.Contrasena, s.bcryptCost)
		if err != nil {
			return nil, apperrors.Internalf(err, "an error occurred while updating user")
		}
		user.Contrasena = hash
	}

	if err := s.store.Update(ctx, user); err != nil {
		log.Error().Err(err).Int64("user_id", id).Msg("updating user")
		return nil, apperrors.Internalf(err, "an error occurred while updating user")
	}
	return user, nil
}

// Delete removes a user by id.
func (s *Service) Delete(ctx context.Context, id int64) (*User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		log.Error().Err(err).Int64("user_id", id).Msg("deleting user")
		return nil, apperrors.Internalf(err, "an error occurred while deleting user")
	}
	return user, nil
}
