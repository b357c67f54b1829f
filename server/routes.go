package server

import (
	"net/http"

	"github.com/clinicore/go-clinic-server/users"
)

func (s *Server) initRoutes() {
	api := s.APIMiddleware()
	authed := s.APIMiddleware(s.RequireAuth())
	admin := s.APIMiddleware(s.RequireAuth(), s.RequireRole(string(users.RoleAdmin)))

	// AUTH
	s.RegisterRouteFunc("POST "+RouteAuthRegister, ChainMiddleware(s.RegisterHandler(), api...))
	s.RegisterRouteFunc("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), api...))
	s.RegisterRouteFunc("POST "+RouteAuthRefresh, ChainMiddleware(s.RefreshHandler(), api...))
	s.RegisterRouteFunc("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), api...))
	s.RegisterRouteFunc("POST "+RouteAPIValidatePassword, ChainMiddleware(s.ValidatePasswordHandler(), api...))

	// DOCTORS (reads need a valid token, writes need the admin role)
	s.RegisterRouteFunc("GET "+RouteDoctors, ChainMiddleware(s.ListDoctorsHandler(), authed...))
	s.RegisterRouteFunc("GET "+RouteDoctorByID, ChainMiddleware(s.GetDoctorHandler(), authed...))
	s.RegisterRouteFunc("GET "+RouteDoctorsByBusinessID, ChainMiddleware(s.GetDoctorByCodeHandler(), authed...))
	s.RegisterRouteFunc("POST "+RouteDoctors, ChainMiddleware(s.CreateDoctorHandler(), admin...))
	s.RegisterRouteFunc("PUT "+RouteDoctorByID, ChainMiddleware(s.UpdateDoctorHandler(), admin...))
	s.RegisterRouteFunc("POST "+RouteDoctorDeactivate, ChainMiddleware(s.DeactivateDoctorHandler(), admin...))
	s.RegisterRouteFunc("DELETE "+RouteDoctorByID, ChainMiddleware(s.DeleteDoctorHandler(), admin...))

	// APPOINTMENTS
	s.RegisterRouteFunc("GET "+RouteAppointments, ChainMiddleware(s.ListAppointmentsHandler(), authed...))
	s.RegisterRouteFunc("GET "+RouteAppointmentByID, ChainMiddleware(s.GetAppointmentHandler(), authed...))
	s.RegisterRouteFunc("POST "+RouteAppointments, ChainMiddleware(s.CreateAppointmentHandler(), authed...))
	s.RegisterRouteFunc("PATCH "+RouteAppointmentStatus, ChainMiddleware(s.UpdateAppointmentStatusHandler(), authed...))
	s.RegisterRouteFunc("DELETE "+RouteAppointmentByID, ChainMiddleware(s.DeleteAppointmentHandler(), authed...))

	// Preflight requests carry no method-specific route, so CORS answers them here.
	s.RegisterRouteFunc("OPTIONS /api/", ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, s.CorsMiddleware))

	s.RegisterRouteFunc("GET "+RouteHealthz, s.HealthzHandler())
}

func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"app":    s.config.GetAppName(),
		})
	}
}
