package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteAuthRegister        = "/api/auth/register"
	RouteAuthLogin           = "/api/auth/login"
	RouteAuthRefresh         = "/api/auth/refresh"
	RouteAuthLogout          = "/api/auth/logout"
	RouteAPIValidatePassword = "/api/auth/validate-password"

	// Doctor Routes
	RouteDoctors             = "/api/doctors"
	RouteDoctorByID          = "/api/doctors/{id}"
	RouteDoctorDeactivate    = "/api/doctors/{id}/deactivate"
	RouteDoctorsByBusinessID = "/api/doctors/code/{doctorId}"

	// Appointment Routes
	RouteAppointments      = "/api/appointments"
	RouteAppointmentByID   = "/api/appointments/{id}"
	RouteAppointmentStatus = "/api/appointments/{id}/status"

	// Health
	RouteHealthz = "/healthz"
)
