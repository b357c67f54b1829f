package fakedoctorrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/clinicore/go-clinic-server/doctors"
	apperrors "github.com/clinicore/go-clinic-server/internal/errors"
)

var _ doctors.Repo = (*FakeDoctorRepo)(nil)

type FakeDoctorRepo struct {
	doctors map[string]*doctors.Doctor
	lock    sync.RWMutex
}

func NewFakeDoctorRepo() *FakeDoctorRepo {
	return &FakeDoctorRepo{
		doctors: make(map[string]*doctors.Doctor),
	}
}

func (dr *FakeDoctorRepo) Create(_ context.Context, doctor *doctors.Doctor) error {
	dr.lock.Lock()
	defer dr.lock.Unlock()

	for _, existing := range dr.doctors {
		if existing.Email == doctor.Email {
			return apperrors.ErrConflict
		}
	}

	now := time.Now()
	doctor.CreatedAt = now
	doctor.UpdatedAt = now

	stored := *doctor
	dr.doctors[doctor.ID] = &stored
	return nil
}

func (dr *FakeDoctorRepo) GetByID(_ context.Context, id string) (*doctors.Doctor, error) {
	dr.lock.RLock()
	defer dr.lock.RUnlock()

	stored, ok := dr.doctors[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	doctor := *stored
	return &doctor, nil
}

func (dr *FakeDoctorRepo) GetByDoctorID(_ context.Context, doctorID string) (*doctors.Doctor, error) {
	dr.lock.RLock()
	defer dr.lock.RUnlock()

	for _, stored := range dr.doctors {
		if stored.DoctorID == doctorID {
			doctor := *stored
			return &doctor, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (dr *FakeDoctorRepo) GetByEmail(_ context.Context, email string) (*doctors.Doctor, error) {
	dr.lock.RLock()
	defer dr.lock.RUnlock()

	for _, stored := range dr.doctors {
		if stored.Email == email {
			doctor := *stored
			return &doctor, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (dr *FakeDoctorRepo) List(_ context.Context) ([]*doctors.Doctor, error) {
	dr.lock.RLock()
	defer dr.lock.RUnlock()

	list := make([]*doctors.Doctor, 0, len(dr.doctors))
	for _, stored := range dr.doctors {
		doctor := *stored
		list = append(list, &doctor)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].DoctorID < list[j].DoctorID
	})
	return list, nil
}

func (dr *FakeDoctorRepo) Update(_ context.Context, doctor *doctors.Doctor) error {
	dr.lock.Lock()
	defer dr.lock.Unlock()

	if _, ok := dr.doctors[doctor.ID]; !ok {
		return apperrors.ErrNotFound
	}

	doctor.UpdatedAt = time.Now()
	stored := *doctor
	dr.doctors[doctor.ID] = &stored
	return nil
}

func (dr *FakeDoctorRepo) Delete(_ context.Context, id string) error {
	dr.lock.Lock()
	defer dr.lock.Unlock()

	if _, ok := dr.doctors[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(dr.doctors, id)
	return nil
}
