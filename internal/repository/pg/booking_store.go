// Package pg is the Postgres BookingStore. It lives outside
// internal/repository because it implements the service interfaces, while
// the table repositories in internal/repository are themselves imported by
// the services.
package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/service"
)

const slotColumns = "id, owner_id, start_time, end_time, location, note, status, created_at"

const appointmentColumns = "id, slot_id, professional_id, subject_id, booked_by_id, start_time, end_time, status, created_at, updated_at"

// BookingStore is the Postgres implementation of service.BookingStore.
// Reservation correctness rests on SELECT ... FOR UPDATE: the status check
// and the paired writes happen while the slot row is exclusively locked.
type BookingStore struct {
	pool *pgxpool.Pool
}

func NewBookingStore(pool *pgxpool.Pool) *BookingStore {
	return &BookingStore{pool: pool}
}

func (s *BookingStore) Begin(ctx context.Context) (service.BookingTx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	return &bookingTx{tx: tx}, nil
}

func (s *BookingStore) SlotByID(ctx context.Context, id int64) (*model.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = $1`
	return scanSlot(s.pool.QueryRow(ctx, query, id))
}

func (s *BookingStore) ListSlotsByOwner(ctx context.Context, ownerID int64, from, to time.Time) ([]*model.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE owner_id = $1
		  AND start_time >= $2
		  AND start_time < $3
		ORDER BY start_time
	`
	rows, err := s.pool.Query(ctx, query, ownerID, orDistantPast(from), orDistantFuture(to))
	if err != nil {
		return nil, fmt.Errorf("list slots by owner: %w", err)
	}
	return collectSlots(rows)
}

func (s *BookingStore) ListFreeSlots(ctx context.Context, ownerID int64, from, to time.Time) ([]*model.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE status = 'free'
		  AND ($1 = 0 OR owner_id = $1)
		  AND start_time >= $2
		  AND start_time < $3
		ORDER BY start_time
	`
	rows, err := s.pool.Query(ctx, query, ownerID, orDistantPast(from), orDistantFuture(to))
	if err != nil {
		return nil, fmt.Errorf("list free slots: %w", err)
	}
	return collectSlots(rows)
}

func (s *BookingStore) AppointmentByID(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`
	return scanAppointmentRow(s.pool.QueryRow(ctx, query, id))
}

func (s *BookingStore) ListAppointmentsBySubject(ctx context.Context, subjectID int64) ([]*model.Appointment, error) {
	return s.listAppointments(ctx, "subject_id", subjectID)
}

func (s *BookingStore) ListAppointmentsByProfessional(ctx context.Context, professionalID int64) ([]*model.Appointment, error) {
	return s.listAppointments(ctx, "professional_id", professionalID)
}

func (s *BookingStore) listAppointments(ctx context.Context, column string, id int64) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE ` + column + ` = $1 ORDER BY start_time`
	rows, err := s.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var out []*model.Appointment
	for rows.Next() {
		appt, err := scanAppointmentRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, appt)
	}
	return out, rows.Err()
}

func (s *BookingStore) UpdateAppointmentStatus(ctx context.Context, id int64, status model.AppointmentStatus) error {
	query := `UPDATE appointments SET status = $1, updated_at = now() WHERE id = $2`
	if _, err := s.pool.Exec(ctx, query, status, id); err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	return nil
}

type bookingTx struct {
	tx pgx.Tx
}

// LockOwner takes a transaction-scoped advisory lock keyed by the owner id,
// serializing concurrent publishes for the same professional without
// blocking other owners.
func (t *bookingTx) LockOwner(ctx context.Context, ownerID int64) error {
	if _, err := t.tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, ownerID); err != nil {
		return fmt.Errorf("advisory lock: %w", err)
	}
	return nil
}

func (t *bookingTx) SlotForUpdate(ctx context.Context, id int64) (*model.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = $1 FOR UPDATE`
	return scanSlot(t.tx.QueryRow(ctx, query, id))
}

func (t *bookingTx) ActiveSlotsByOwner(ctx context.Context, ownerID int64) ([]*model.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE owner_id = $1
		  AND status IN ('free', 'reserved')
		ORDER BY start_time
	`
	rows, err := t.tx.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list active slots: %w", err)
	}
	return collectSlots(rows)
}

func (t *bookingTx) CreateSlot(ctx context.Context, slot *model.Slot) error {
	query := `
		INSERT INTO slots (owner_id, start_time, end_time, location, note, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := t.tx.QueryRow(ctx, query,
		slot.OwnerID,
		slot.StartTime,
		slot.EndTime,
		slot.Location,
		slot.Note,
		slot.Status,
	).Scan(&slot.ID, &slot.CreatedAt)
	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}
	return nil
}

func (t *bookingTx) UpdateSlotStatus(ctx context.Context, id int64, status model.SlotStatus) error {
	query := `UPDATE slots SET status = $1 WHERE id = $2`
	tag, err := t.tx.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update slot status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update slot status: slot %d not found", id)
	}
	return nil
}

func (t *bookingTx) CreateAppointment(ctx context.Context, appt *model.Appointment) error {
	query := `
		INSERT INTO appointments (slot_id, professional_id, subject_id, booked_by_id, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := t.tx.QueryRow(ctx, query,
		appt.SlotID,
		appt.ProfessionalID,
		appt.SubjectID,
		appt.BookedByID,
		appt.StartTime,
		appt.EndTime,
		appt.Status,
	).Scan(&appt.ID, &appt.CreatedAt, &appt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

func (t *bookingTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *bookingTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

func scanSlot(row pgx.Row) (*model.Slot, error) {
	var s model.Slot
	err := row.Scan(
		&s.ID,
		&s.OwnerID,
		&s.StartTime,
		&s.EndTime,
		&s.Location,
		&s.Note,
		&s.Status,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan slot: %w", err)
	}
	return &s, nil
}

func collectSlots(rows pgx.Rows) ([]*model.Slot, error) {
	defer rows.Close()

	var out []*model.Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, slot)
	}
	return out, rows.Err()
}

func orDistantPast(t time.Time) time.Time {
	if t.IsZero() {
		return time.Unix(0, 0)
	}
	return t
}

func orDistantFuture(t time.Time) time.Time {
	if t.IsZero() {
		return time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return t
}

func scanAppointmentRow(row pgx.Row) (*model.Appointment, error) {
	var a model.Appointment
	err := row.Scan(
		&a.ID,
		&a.SlotID,
		&a.ProfessionalID,
		&a.SubjectID,
		&a.BookedByID,
		&a.StartTime,
		&a.EndTime,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan appointment: %w", err)
	}
	return &a, nil
}
