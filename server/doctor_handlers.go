package server

import (
	"net/http"

	"github.com/clinicore/go-clinic-server/doctors"
)

func (s *Server) CreateDoctorHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doctor doctors.Doctor
		if err := decodeJSON(r, &doctor); err != nil {
			s.writeError(w, r, err)
			return
		}

		created, err := s.doctors.Create(r.Context(), &doctor)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) GetDoctorHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctor, err := s.doctors.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, doctor)
	}
}

func (s *Server) GetDoctorByCodeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctor, err := s.doctors.GetByDoctorID(r.Context(), r.PathValue("doctorId"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, doctor)
	}
}

func (s *Server) ListDoctorsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.doctors.List(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if list == nil {
			list = []*doctors.Doctor{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) UpdateDoctorHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doctor doctors.Doctor
		if err := decodeJSON(r, &doctor); err != nil {
			s.writeError(w, r, err)
			return
		}
		doctor.ID = r.PathValue("id")

		updated, err := s.doctors.Update(r.Context(), &doctor)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func (s *Server) DeactivateDoctorHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctor, err := s.doctors.Deactivate(r.Context(), r.PathValue("id"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, doctor)
	}
}

func (s *Server) DeleteDoctorHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.doctors.Delete(r.Context(), r.PathValue("id")); err != nil {
			s.writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
