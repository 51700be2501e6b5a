package server

import (
	"encoding/json"
	"net/http"

	"github.com/tareahub/go-tarea-server/auth"
	"github.com/tareahub/go-tarea-server/internal/apperrors"
	"github.com/tareahub/go-tarea-server/tareas"
)

func (s *Server) ListTareasHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := s.tareas.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeResponse(w, successResponse("tareas found", all, http.StatusOK))
	}
}

// MyTareasHandler lists the tareas owned by the authenticated principal.
func (s *Server) MyTareasHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := auth.PrincipalFromContext(r.Context())
		if !ok {
			writeError(w, apperrors.Unauthorizedf("user not found"))
			return
		}

		owned, err := s.tareas.ListByUser(r.Context(), principal.User.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeResponse(w, successResponse("tareas found", owned, http.StatusOK))
	}
}

// CreateTareaHandler creates a tarea owned by the authenticated principal.
// Any userId in the body is ignored.
func (s *Server) CreateTareaHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := auth.PrincipalFromContext(r.Context())
		if !ok {
			writeError(w, apperrors.Unauthorizedf("user not found"))
			return
		}

		var params tareas.Params
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			writeError(w, apperrors.BadRequestf("invalid request body"))
			return
		}

		created, err := s.tareas.Create(r.Context(), principal.User.ID, params)
		if err != nil {
			writeError(w, err)
			return
		}
		writeResponse(w, successResponse("tarea created", created, http.StatusCreated))
	}
}

func (s *Server) UpdateTareaHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idPathValue(r)
		if err != nil {
			writeError(w, err)
			return
		}

		var params tareas.Params
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			writeError(w, apperrors.BadRequestf("invalid request body"))
			return
		}

		updated, err := s.tareas.Update(r.Context(), id, params)
		if err != nil {
			writeError(w, err)
			return
		}
		writeResponse(w, successResponse("tarea updated", updated, http.StatusOK))
	}
}

func (s *Server) DeleteTareaHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idPathValue(r)
		if err != nil {
			writeError(w, err)
			return
		}

		deleted, err := s.tareas.Delete(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeResponse(w, successResponse("tarea deleted", deleted, http.StatusOK))
	}
}
