package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/tareahub/go-tarea-server/auth"
	"github.com/tareahub/go-tarea-server/internal/config"
	"github.com/tareahub/go-tarea-server/tareas"
	"github.com/tareahub/go-tarea-server/token"
	"github.com/tareahub/go-tarea-server/users"
)

type Server struct {
	env    string // Environment (e.g., "development", "production")
	mux    *http.ServeMux
	routes []string
	config *config.Config

	auth   *auth.Service
	users  *users.Service
	tareas *tareas.Service
}

func New(cfg *config.Config, stores auth.Stores) (*Server, error) {
	codec, err := token.NewCodec(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create token codec: %w", err)
	}

	authService, err := auth.NewService(stores, codec,
		auth.WithTokenTTLs(cfg.AccessTokenTTL, cfg.RefreshTokenTTL))
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create auth service: %w", err)
	}

	userService, err := users.NewService(stores.Users, cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create user service: %w", err)
	}

	tareaService, err := tareas.NewService(stores.Tareas)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create tarea service: %w", err)
	}

	s := &Server{
		mux:    http.NewServeMux(),
		config: cfg,
		env:    cfg.Environment,
		auth:   authService,
		users:  userService,
		tareas: tareaService,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "development" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
