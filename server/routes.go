package server

import "net/http"

func (s *Server) initRoutes() {
	authed := s.RequireAuth()
	ownsTarea := s.RequireTareaOwner()

	// SESSIONS
	s.RegisterRouteHandler("POST "+RouteSessionLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteSessionLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware(authed)...))
	s.RegisterRouteHandler("POST "+RouteSessionVerifyToken, ChainMiddleware(s.VerifyTokenHandler(), s.APIMiddleware(authed)...))

	// USERS (registration and reads are open; deletion requires a session)
	s.RegisterRouteHandler("GET "+RouteUsers, ChainMiddleware(s.ListUsersHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteUserByID, ChainMiddleware(s.GetUserHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteUsers, ChainMiddleware(s.CreateUserHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("PATCH "+RouteUserByID, ChainMiddleware(s.UpdateUserHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteUserByID, ChainMiddleware(s.DeleteUserHandler(), s.APIMiddleware(authed)...))

	// TAREAS (mutations require the principal to own the tarea)
	s.RegisterRouteHandler("GET "+RouteTareas, ChainMiddleware(s.ListTareasHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteTareasMine, ChainMiddleware(s.MyTareasHandler(), s.APIMiddleware(authed)...))
	s.RegisterRouteHandler("POST "+RouteTareas, ChainMiddleware(s.CreateTareaHandler(), s.APIMiddleware(authed)...))
	s.RegisterRouteHandler("PATCH "+RouteTareaByID, ChainMiddleware(s.UpdateTareaHandler(), s.APIMiddleware(authed, ownsTarea)...))
	s.RegisterRouteHandler("DELETE "+RouteTareaByID, ChainMiddleware(s.DeleteTareaHandler(), s.APIMiddleware(authed, ownsTarea)...))

	s.RegisterRouteFunc("/", s.NotFoundHandler())
}

// NotFoundHandler answers unmatched paths with the standard envelope.
func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, failureResponse("not found", http.StatusNotFound))
	}
}
