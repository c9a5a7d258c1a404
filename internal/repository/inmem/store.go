// Package inmem is an in-memory BookingStore. A single mutex held for the
// whole transaction stands in for row-level locking: it gives the same
// serialization guarantee the pgx store gets from SELECT ... FOR UPDATE.
// Used by the test suite and the local demo seed.
package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/service"
)

type Store struct {
	mu           sync.Mutex
	slots        map[int64]*model.Slot
	appointments map[int64]*model.Appointment
	nextSlotID   int64
	nextApptID   int64
}

func NewStore() *Store {
	return &Store{
		slots:        make(map[int64]*model.Slot),
		appointments: make(map[int64]*model.Appointment),
		nextSlotID:   1,
		nextApptID:   1,
	}
}

// Begin locks the store until Commit or Rollback.
func (s *Store) Begin(_ context.Context) (service.BookingTx, error) {
	s.mu.Lock()
	return &tx{store: s}, nil
}

func (s *Store) SlotByID(_ context.Context, id int64) (*model.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSlot(s.slots[id]), nil
}

func (s *Store) ListSlotsByOwner(_ context.Context, ownerID int64, from, to time.Time) ([]*model.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*model.Slot
	for _, sl := range s.slots {
		if sl.OwnerID == ownerID && inRange(sl.StartTime, from, to) {
			out = append(out, cloneSlot(sl))
		}
	}
	sortSlots(out)
	return out, nil
}

func (s *Store) ListFreeSlots(_ context.Context, ownerID int64, from, to time.Time) ([]*model.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*model.Slot
	for _, sl := range s.slots {
		if sl.Status != model.SlotStatusFree {
			continue
		}
		if ownerID != 0 && sl.OwnerID != ownerID {
			continue
		}
		if inRange(sl.StartTime, from, to) {
			out = append(out, cloneSlot(sl))
		}
	}
	sortSlots(out)
	return out, nil
}

func (s *Store) AppointmentByID(_ context.Context, id int64) (*model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAppt(s.appointments[id]), nil
}

func (s *Store) ListAppointmentsBySubject(_ context.Context, subjectID int64) ([]*model.Appointment, error) {
	return s.listAppointments(func(a *model.Appointment) bool { return a.SubjectID == subjectID })
}

func (s *Store) ListAppointmentsByProfessional(_ context.Context, professionalID int64) ([]*model.Appointment, error) {
	return s.listAppointments(func(a *model.Appointment) bool { return a.ProfessionalID == professionalID })
}

func (s *Store) listAppointments(match func(*model.Appointment) bool) ([]*model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*model.Appointment
	for _, a := range s.appointments {
		if match(a) {
			out = append(out, cloneAppt(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (s *Store) UpdateAppointmentStatus(_ context.Context, id int64, status model.AppointmentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.appointments[id]
	if !ok {
		return nil
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	return nil
}

// AppointmentCount is a test helper.
func (s *Store) AppointmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appointments)
}

// tx stages writes and applies them on Commit, while the store mutex is
// held for the whole transaction.
type tx struct {
	store   *Store
	pending []func()
	done    bool
}

func (t *tx) LockOwner(_ context.Context, _ int64) error {
	// The store mutex already serializes everything.
	return nil
}

func (t *tx) SlotForUpdate(_ context.Context, id int64) (*model.Slot, error) {
	return cloneSlot(t.store.slots[id]), nil
}

func (t *tx) ActiveSlotsByOwner(_ context.Context, ownerID int64) ([]*model.Slot, error) {
	var out []*model.Slot
	for _, sl := range t.store.slots {
		if sl.OwnerID != ownerID {
			continue
		}
		if sl.Status == model.SlotStatusFree || sl.Status == model.SlotStatusReserved {
			out = append(out, cloneSlot(sl))
		}
	}
	sortSlots(out)
	return out, nil
}

func (t *tx) CreateSlot(_ context.Context, slot *model.Slot) error {
	slot.ID = t.store.nextSlotID
	t.store.nextSlotID++
	slot.CreatedAt = time.Now()

	stored := cloneSlot(slot)
	t.pending = append(t.pending, func() { t.store.slots[stored.ID] = stored })
	return nil
}

func (t *tx) UpdateSlotStatus(_ context.Context, id int64, status model.SlotStatus) error {
	t.pending = append(t.pending, func() {
		if sl, ok := t.store.slots[id]; ok {
			sl.Status = status
		}
	})
	return nil
}

func (t *tx) CreateAppointment(_ context.Context, appt *model.Appointment) error {
	appt.ID = t.store.nextApptID
	t.store.nextApptID++
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt

	stored := cloneAppt(appt)
	t.pending = append(t.pending, func() { t.store.appointments[stored.ID] = stored })
	return nil
}

func (t *tx) Commit(_ context.Context) error {
	if t.done {
		return nil
	}
	for _, apply := range t.pending {
		apply()
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}

func (t *tx) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}
	t.pending = nil
	t.done = true
	t.store.mu.Unlock()
	return nil
}

func cloneSlot(s *model.Slot) *model.Slot {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func cloneAppt(a *model.Appointment) *model.Appointment {
	if a == nil {
		return nil
	}
	c := *a
	c.Slot = nil
	c.Professional = nil
	return &c
}

func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}

func sortSlots(slots []*model.Slot) {
	sort.Slice(slots, func(i, j int) bool { return slots[i].StartTime.Before(slots[j].StartTime) })
}
