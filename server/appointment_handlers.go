package server

import (
	"net/http"

	"github.com/clinicore/go-clinic-server/appointments"
)

func (s *Server) CreateAppointmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var appointment appointments.Appointment
		if err := decodeJSON(r, &appointment); err != nil {
			s.writeError(w, r, err)
			return
		}

		created, err := s.appointments.Create(r.Context(), &appointment)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) GetAppointmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appointment, err := s.appointments.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, appointment)
	}
}

func (s *Server) ListAppointmentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.appointments.List(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if list == nil {
			list = []*appointments.Appointment{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

type updateStatusRequest struct {
	Status appointments.Status `json:"status"`
}

func (s *Server) UpdateAppointmentStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateStatusRequest
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}

		appointment, err := s.appointments.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, appointment)
	}
}

func (s *Server) DeleteAppointmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.appointments.Delete(r.Context(), r.PathValue("id")); err != nil {
			s.writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
