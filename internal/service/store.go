package service

import (
	"context"
	"time"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
)

// BookingStore is the persistence boundary of the booking engine. The pgx
// implementation lives in internal/repository/pg; internal/repository/inmem
// provides a lock-equivalent in-memory store used by the test suite.
type BookingStore interface {
	// Begin opens a transaction. Implementations must guarantee that
	// SlotForUpdate serializes concurrent transactions touching the same
	// slot, and that LockOwner serializes transactions for one owner.
	Begin(ctx context.Context) (BookingTx, error)

	SlotByID(ctx context.Context, id int64) (*model.Slot, error)
	ListSlotsByOwner(ctx context.Context, ownerID int64, from, to time.Time) ([]*model.Slot, error)
	ListFreeSlots(ctx context.Context, ownerID int64, from, to time.Time) ([]*model.Slot, error)

	AppointmentByID(ctx context.Context, id int64) (*model.Appointment, error)
	ListAppointmentsBySubject(ctx context.Context, subjectID int64) ([]*model.Appointment, error)
	ListAppointmentsByProfessional(ctx context.Context, professionalID int64) ([]*model.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id int64, status model.AppointmentStatus) error
}

// BookingTx is a single transaction over slots and appointments. Commit or
// Rollback must always be called; Rollback after Commit is a no-op.
type BookingTx interface {
	// LockOwner serializes the overlap-check-then-insert sequence for one
	// owner's slots against concurrent publishes by the same owner.
	LockOwner(ctx context.Context, ownerID int64) error

	// SlotForUpdate reads the slot under an exclusive row lock held until
	// the transaction ends. Returns nil when the slot does not exist.
	SlotForUpdate(ctx context.Context, id int64) (*model.Slot, error)

	ActiveSlotsByOwner(ctx context.Context, ownerID int64) ([]*model.Slot, error)
	CreateSlot(ctx context.Context, slot *model.Slot) error
	UpdateSlotStatus(ctx context.Context, id int64, status model.SlotStatus) error
	CreateAppointment(ctx context.Context, appt *model.Appointment) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
