package server

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/clinicore/go-clinic-server/appointments"
	"github.com/clinicore/go-clinic-server/auth"
	"github.com/clinicore/go-clinic-server/doctors"
	"github.com/clinicore/go-clinic-server/internal/config"
	"github.com/clinicore/go-clinic-server/token"
	"github.com/clinicore/go-clinic-server/users"
)

// Repos bundles the persistence interfaces the server depends on. Handlers
// only ever reach storage through the domain services.
type Repos struct {
	Users        users.UserRepo
	Doctors      doctors.Repo
	Appointments appointments.Repo
}

type Server struct {
	env    string // Environment (e.g., "DEV", "production")
	mux    *http.ServeMux
	routes []string
	config config.Config
	logger zerolog.Logger

	sessions     *auth.SessionService
	guard        *auth.Guard
	doctors      *doctors.Service
	appointments *appointments.Service
}

func New(config config.Config, repos Repos, logger zerolog.Logger) (*Server, error) {
	codec, err := token.NewCodec(
		config.GetAccessTokenSecret(),
		config.GetRefreshTokenSecret(),
		token.WithExpiry(config.GetAccessTokenExpiry(), config.GetRefreshTokenExpiry()),
	)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create token codec: %w", err)
	}

	sessionService, err := auth.NewSessionService(repos.Users, codec, auth.WithBcryptCost(config.GetBcryptCost()))
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create session service: %w", err)
	}

	doctorService, err := doctors.NewService(repos.Doctors)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create doctor service: %w", err)
	}

	appointmentService, err := appointments.NewService(repos.Appointments, repos.Doctors)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create appointment service: %w", err)
	}

	s := &Server{
		mux:          http.NewServeMux(),
		config:       config,
		logger:       logger,
		sessions:     sessionService,
		guard:        auth.NewGuard(codec),
		doctors:      doctorService,
		appointments: appointmentService,
	}
	s.env = config.GetEnv()

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
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		s.logger.Info().Str("route", route).Msg("registered")
	}
}
