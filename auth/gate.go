package auth

import (
	"context"
	"strconv"

	"github.com/tareahub/go-tarea-server/internal/apperrors"
)

// AuthorizeTareaOwner confirms that the authenticated principal owns the
// tarea named by idParam. It is a pure ownership check layered on top of
// Authenticate and does no token handling of its own.
func (s *Service) AuthorizeTareaOwner(ctx context.Context, principal *Principal, idParam string) error {
	if principal == nil || principal.User == nil {
		return apperrors.Unauthorizedf("user not found")
	}
	if idParam == "" {
		return apperrors.BadRequestf("invalid tarea id")
	}
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		return apperrors.BadRequestf("invalid tarea id")
	}

	tarea, err := s.stores.Tareas.GetByID(ctx, id)
	if err != nil {
		return apperrors.Internalf(err, "error during authorization")
	}
	if tarea == nil {
		return apperrors.NotFoundf("tarea not found")
	}
	if tarea.UserID != principal.User.ID {
		return apperrors.Unauthorizedf("not authorized")
	}
	return nil
}
