package tareas

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tareahub/go-tarea-server/internal/apperrors"
)

// Service exposes tarea CRUD over a Store.
type Service struct {
	store Store
}

// NewService creates a tarea service backed by store.
func NewService(store Store) (*Service, error) {
	if store == nil {
		return nil, errors.New("[tareas.NewService] store is required")
	}
	return &Service{store: store}, nil
}

// List returns every tarea, or NotFound when there are none.
func (s *Service) List(ctx context.Context) ([]*Tarea, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("listing tareas")
		return nil, apperrors.Internalf(err, "an error occurred while retrieving tareas")
	}
	if len(all) == 0 {
		return nil, apperrors.NotFoundf("no tareas found")
	}
	return all, nil
}

// ListByUser returns the tareas owned by userID, or NotFound when there are
// none.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*Tarea, error) {
	owned, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("listing tareas by user")
		return nil, apperrors.Internalf(err, "an error occurred while retrieving tareas")
	}
	if len(owned) == 0 {
		return nil, apperrors.NotFoundf("no tareas found")
	}
	return owned, nil
}

// Get returns a single tarea by id.
func (s *Service) Get(ctx context.Context, id int64) (*Tarea, error) {
	tarea, err := s.store.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("tarea_id", id).Msg("finding tarea")
		return nil, apperrors.Internalf(err, "an error occurred while finding tarea")
	}
	if tarea == nil {
		return nil, apperrors.NotFoundf("tarea not found")
	}
	return tarea, nil
}

// Params carries the mutable tarea fields.
type Params struct {
	Titulo      string  `json:"titulo"`
	Descripcion *string `json:"descripcion"`
	Completada  bool    `json:"completada"`
}

func (p Params) validate() error {
	if strings.TrimSpace(p.Titulo) == "" {
		return apperrors.BadRequestf("invalid tarea data")
	}
	return nil
}

// Create stores a new tarea owned by userID. The owner always comes from the
// authenticated principal, never from the request body.
func (s *Service) Create(ctx context.Context, userID int64, params Params) (*Tarea, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	tarea := &Tarea{
		UserID:      userID,
		Titulo:      params.Titulo,
		Descripcion: params.Descripcion,
		Completada:  params.Completada,
	}
	if err := s.store.Create(ctx, tarea); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("creating tarea")
		return nil, apperrors.Internalf(err, "an error occurred while creating tarea")
	}
	return tarea, nil
}

// Update replaces the mutable fields of an existing tarea.
func (s *Service) Update(ctx context.Context, id int64, params Params) (*Tarea, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	tarea, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	tarea.Titulo = params.Titulo
	tarea.Descripcion = params.Descripcion
	tarea.Completada = params.Completada

	if err := s.store.Update(ctx, tarea); err != nil {
		log.Error().Err(err).Int64("tarea_id", id).Msg("updating tarea")
		return nil, apperrors.Internalf(err, "an error occurred while updating tarea")
	}
	return tarea, nil
}

// Delete removes a tarea by id.
func (s *Service) Delete(ctx context.Context, id int64) (*Tarea, error) {
	tarea, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		log.Error().Err(err).Int64("tarea_id", id).Msg("deleting tarea")
		return nil, apperrors.Internalf(err, "an error occurred while deleting tarea")
	}
	return tarea, nil
}
