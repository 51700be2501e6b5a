package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/tareahub/go-tarea-server/internal/apperrors"
	"github.com/tareahub/go-tarea-server/users"
)

func idPathValue(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.BadRequestf("invalid id")
	}
	return id, nil
}

func (s *Server) ListUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := s.users.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeResponse(w, successResponse("users found", all, http.StatusOK))
	}
}

func (s *Server) GetUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idPathValue(r)
		if err != nil {
			writeError(w, err)
			return
		}

		user, err := s.users.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeResponse(w, successResponse("user found", user, http.StatusOK))
	}
}

func (s *Server) CreateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params users.CreateParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			writeError(w, apperrors.BadRequestf("invalid request body"))
			return
		}

		created, err := s.users.Create(r.Context(), params)
		if err != nil {
			writeError(w, err)
			return
		}
		writeResponse(w, successResponse("user created", created, http.StatusCreated))
	}
}

func (s *Server) UpdateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idPathValue(r)
		if err != nil {
			writeError(w, err)
			return
		}

		var params users.UpdateParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			writeError(w, apperrors.BadRequestf("invalid request body"))
			return
		}

		updated, err := s.users.Update(r.Context(), id, params)
		if err != nil {
			writeError(w, err)
			return
		}
		writeResponse(w, successResponse("user updated", updated, http.StatusOK))
	}
}

func (s *Server) DeleteUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idPathValue(r)
		if err != nil {
			writeError(w, err)
			return
		}

		deleted, err := s.users.Delete(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeResponse(w, successResponse("user deleted", deleted, http.StatusOK))
	}
}
