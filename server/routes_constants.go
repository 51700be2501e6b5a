package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Session Routes
	RouteSessionLogin       = "/sessions/login"
	RouteSessionLogout      = "/sessions/logout"
	RouteSessionVerifyToken = "/sessions/verify-token"

	// User Routes
	RouteUsers    = "/users"
	RouteUserByID = "/users/{id}"

	// Tarea Routes
	RouteTareas     = "/tareas"
	RouteTareasMine = "/tareas/user"
	RouteTareaByID  = "/tareas/{id}"
)

// HeaderRefreshToken carries the refresh token on both requests and
// responses. The lowercase spelling is the wire contract clients rely on.
const HeaderRefreshToken = "x-refreshtoken"
