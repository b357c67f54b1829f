package fakeappointmentrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/clinicore/go-clinic-server/appointments"
	apperrors "github.com/clinicore/go-clinic-server/internal/errors"
)

var _ appointments.Repo = (*FakeAppointmentRepo)(nil)

type FakeAppointmentRepo struct {
	appointments map[string]*appointments.Appointment
	lock         sync.RWMutex
}

func NewFakeAppointmentRepo() *FakeAppointmentRepo {
	return &FakeAppointmentRepo{
		appointments: make(map[string]*appointments.Appointment),
	}
}

func (ar *FakeAppointmentRepo) Create(_ context.Context, appointment *appointments.Appointment) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	now := time.Now()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	stored := *appointment
	ar.appointments[appointment.ID] = &stored
	return nil
}

func (ar *FakeAppointmentRepo) GetByID(_ context.Context, id string) (*appointments.Appointment, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	stored, ok := ar.appointments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	appointment := *stored
	return &appointment, nil
}

func (ar *FakeAppointmentRepo) List(_ context.Context) ([]*appointments.Appointment, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	list := make([]*appointments.Appointment, 0, len(ar.appointments))
	for _, stored := range ar.appointments {
		appointment := *stored
		list = append(list, &appointment)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].ScheduledAt.Before(list[j].ScheduledAt)
	})
	return list, nil
}

func (ar *FakeAppointmentRepo) Update(_ context.Context, appointment *appointments.Appointment) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	if _, ok := ar.appointments[appointment.ID]; !ok {
		return apperrors.ErrNotFound
	}

	appointment.UpdatedAt = time.Now()
	stored := *appointment
	ar.appointments[appointment.ID] = &stored
	return nil
}

func (ar *FakeAppointmentRepo) Delete(_ context.Context, id string) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	if _, ok := ar.appointments[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(ar.appointments, id)
	return nil
}
