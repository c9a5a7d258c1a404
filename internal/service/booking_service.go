package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/schedule"
)

// BookingService owns every mutation of slots and appointments. No other
// code path writes slot status.
type BookingService struct {
	store  BookingStore
	logger *zap.Logger
	now    func() time.Time
}

func NewBookingService(store BookingStore, logger *zap.Logger) *BookingService {
	return &BookingService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the time source. Used by tests and nowhere else.
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

// GenerateCandidates expands a recurrence rule without persisting anything.
func (s *BookingService) GenerateCandidates(rule schedule.Rule) ([]schedule.Interval, error) {
	return schedule.Candidates(rule)
}

// Publish persists candidate intervals as free slots for the owner,
// silently dropping any candidate that overlaps one of the owner's
// existing free or reserved slots. Overlap is a filtering policy, not an
// error: the survivors are returned.
//
// A candidate accepted earlier in the batch counts as existing for the
// ones after it, so a single call can never persist an overlapping pair.
func (s *BookingService) Publish(ctx context.Context, ownerID int64, candidates []schedule.Interval, location, note string) ([]*model.Slot, error) {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.LockOwner(ctx, ownerID); err != nil {
		return nil, fmt.Errorf("lock owner: %w", err)
	}

	existing, err := tx.ActiveSlotsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list active slots: %w", err)
	}

	var published []*model.Slot
	for _, cand := range candidates {
		if overlapsAny(existing, cand.Start, cand.End) {
			continue
		}

		slot := &model.Slot{
			OwnerID:   ownerID,
			StartTime: cand.Start,
			EndTime:   cand.End,
			Location:  location,
			Note:      note,
			Status:    model.SlotStatusFree,
		}
		if err := tx.CreateSlot(ctx, slot); err != nil {
			return nil, fmt.Errorf("create slot: %w", err)
		}

		existing = append(existing, slot)
		published = append(published, slot)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("Slots published",
		zap.Int64("owner_id", ownerID),
		zap.Int("candidates", len(candidates)),
		zap.Int("published", len(published)),
	)

	return published, nil
}

// Reserve atomically converts a free slot into a reserved slot plus a
// pending appointment. Among concurrent attempts on the same slot exactly
// one succeeds; the rest observe ErrSlotUnavailable after the winner's
// commit because the status check happens under the row lock.
func (s *BookingService) Reserve(ctx context.Context, slotID, subjectID, actorID int64) (*model.Appointment, error) {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	slot, err := tx.SlotForUpdate(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("lock slot: %w", err)
	}
	if slot == nil {
		return nil, ErrNotFound
	}
	if slot.Status != model.SlotStatusFree {
		return nil, ErrSlotUnavailable
	}
	if slot.StartTime.Before(s.now()) {
		return nil, ErrSlotExpired
	}

	if err := tx.UpdateSlotStatus(ctx, slotID, model.SlotStatusReserved); err != nil {
		return nil, fmt.Errorf("reserve slot: %w", err)
	}

	appt := &model.Appointment{
		SlotID:         slot.ID,
		ProfessionalID: slot.OwnerID,
		SubjectID:      subjectID,
		BookedByID:     actorID,
		StartTime:      slot.StartTime,
		EndTime:        slot.EndTime,
		Status:         model.AppointmentStatusPending,
	}
	if err := tx.CreateAppointment(ctx, appt); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("Slot reserved",
		zap.Int64("slot_id", slotID),
		zap.Int64("appointment_id", appt.ID),
		zap.Int64("subject_id", subjectID),
		zap.Int64("actor_id", actorID),
	)

	slot.Status = model.SlotStatusReserved
	appt.Slot = slot
	return appt, nil
}

// CancelSlot withdraws a free slot. Only the owner may cancel, and only
// while the slot is still free; a reserved slot stays reserved until its
// appointment is handled.
func (s *BookingService) CancelSlot(ctx context.Context, slotID, actorID int64) error {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	slot, err := tx.SlotForUpdate(ctx, slotID)
	if err != nil {
		return fmt.Errorf("lock slot: %w", err)
	}
	if slot == nil {
		return ErrNotFound
	}
	if slot.OwnerID != actorID {
		return ErrForbidden
	}
	if slot.Status != model.SlotStatusFree {
		return ErrInvalidState
	}

	if err := tx.UpdateSlotStatus(ctx, slotID, model.SlotStatusCancelled); err != nil {
		return fmt.Errorf("cancel slot: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("Slot cancelled",
		zap.Int64("slot_id", slotID),
		zap.Int64("owner_id", actorID),
	)
	return nil
}

// CancelAppointment moves a pending appointment to cancelled. The slot
// stays reserved; offering the window again means publishing a new slot.
func (s *BookingService) CancelAppointment(ctx context.Context, apptID, actorID int64) error {
	return s.transitionAppointment(ctx, apptID, actorID, model.AppointmentStatusCancelled, false)
}

// MarkRescheduled flags a pending appointment as rescheduled. The caller
// is expected to publish and reserve a replacement slot separately; no
// replacement is generated here.
func (s *BookingService) MarkRescheduled(ctx context.Context, apptID, actorID int64) error {
	return s.transitionAppointment(ctx, apptID, actorID, model.AppointmentStatusRescheduled, true)
}

// CompleteAppointment marks a pending appointment as attended.
func (s *BookingService) CompleteAppointment(ctx context.Context, apptID, actorID int64) error {
	return s.transitionAppointment(ctx, apptID, actorID, model.AppointmentStatusCompleted, true)
}

func (s *BookingService) transitionAppointment(ctx context.Context, apptID, actorID int64, target model.AppointmentStatus, professionalOnly bool) error {
	appt, err := s.store.AppointmentByID(ctx, apptID)
	if err != nil {
		return fmt.Errorf("get appointment: %w", err)
	}
	if appt == nil {
		return ErrNotFound
	}

	allowed := actorID == appt.ProfessionalID
	if !professionalOnly {
		allowed = allowed || actorID == appt.BookedByID || actorID == appt.SubjectID
	}
	if !allowed {
		return ErrForbidden
	}
	if appt.Status != model.AppointmentStatusPending {
		return ErrInvalidState
	}

	if err := s.store.UpdateAppointmentStatus(ctx, apptID, target); err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}

	s.logger.Info("Appointment status changed",
		zap.Int64("appointment_id", apptID),
		zap.Int64("actor_id", actorID),
		zap.String("status", string(target)),
	)
	return nil
}

// FreeSlots lists bookable slots, optionally restricted to one owner.
func (s *BookingService) FreeSlots(ctx context.Context, ownerID int64, from, to time.Time) ([]*model.Slot, error) {
	return s.store.ListFreeSlots(ctx, ownerID, from, to)
}

// OwnerSlots lists every slot of one professional in the range.
func (s *BookingService) OwnerSlots(ctx context.Context, ownerID int64, from, to time.Time) ([]*model.Slot, error) {
	return s.store.ListSlotsByOwner(ctx, ownerID, from, to)
}

func (s *BookingService) AppointmentByID(ctx context.Context, id int64) (*model.Appointment, error) {
	appt, err := s.store.AppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, ErrNotFound
	}
	return appt, nil
}

func (s *BookingService) SubjectAppointments(ctx context.Context, subjectID int64) ([]*model.Appointment, error) {
	return s.store.ListAppointmentsBySubject(ctx, subjectID)
}

func (s *BookingService) ProfessionalAppointments(ctx context.Context, professionalID int64) ([]*model.Appointment, error) {
	return s.store.ListAppointmentsByProfessional(ctx, professionalID)
}

func overlapsAny(slots []*model.Slot, start, end time.Time) bool {
	for _, sl := range slots {
		if sl.Overlaps(start, end) {
			return true
		}
	}
	return false
}
