package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
)

const attendanceColumns = "id, course_id, athlete_id, session_date, status, checked_in_at, lat, lng, verified, recorded_by, created_at"

type AttendanceRepository struct {
	pool *pgxpool.Pool
}

func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Upsert records attendance for one athlete and session date, replacing a
// previous mark so a teacher correction wins over a self check-in.
func (r *AttendanceRepository) Upsert(ctx context.Context, rec *model.AttendanceRecord) error {
	query := `
		INSERT INTO attendance (course_id, athlete_id, session_date, status, checked_in_at, lat, lng, verified, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (course_id, athlete_id, session_date)
		DO UPDATE SET status = EXCLUDED.status,
		              checked_in_at = EXCLUDED.checked_in_at,
		              lat = EXCLUDED.lat,
		              lng = EXCLUDED.lng,
		              verified = EXCLUDED.verified,
		              recorded_by = EXCLUDED.recorded_by
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		rec.CourseID,
		rec.AthleteID,
		rec.SessionDate,
		rec.Status,
		rec.CheckedInAt,
		rec.Lat,
		rec.Lng,
		rec.Verified,
		rec.RecordedBy,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert attendance: %w", err)
	}
	return nil
}

func (r *AttendanceRepository) ListByCourseDate(ctx context.Context, courseID int64, date time.Time) ([]*model.AttendanceRecord, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE course_id = $1 AND session_date = $2
		ORDER BY athlete_id
	`
	rows, err := r.pool.Query(ctx, query, courseID, date)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return collectAttendance(rows)
}

func (r *AttendanceRepository) ListByAthlete(ctx context.Context, athleteID int64, from, to time.Time) ([]*model.AttendanceRecord, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE athlete_id = $1 AND session_date >= $2 AND session_date < $3
		ORDER BY session_date
	`
	rows, err := r.pool.Query(ctx, query, athleteID, orDistantPast(from), orDistantFuture(to))
	if err != nil {
		return nil, fmt.Errorf("list athlete attendance: %w", err)
	}
	return collectAttendance(rows)
}

func collectAttendance(rows pgx.Rows) ([]*model.AttendanceRecord, error) {
	defer rows.Close()

	var out []*model.AttendanceRecord
	for rows.Next() {
		var rec model.AttendanceRecord
		err := rows.Scan(
			&rec.ID,
			&rec.CourseID,
			&rec.AthleteID,
			&rec.SessionDate,
			&rec.Status,
			&rec.CheckedInAt,
			&rec.Lat,
			&rec.Lng,
			&rec.Verified,
			&rec.RecordedBy,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

const sessionColumns = "id, teacher_id, clock_in_at, clock_out_at, in_lat, in_lng, out_lat, out_lng, created_at"

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) Create(ctx context.Context, s *model.StaffSession) error {
	query := `
		INSERT INTO staff_sessions (teacher_id, clock_in_at, in_lat, in_lng)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, s.TeacherID, s.ClockInAt, s.InLat, s.InLng).
		Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("create staff session: %w", err)
	}
	return nil
}

// GetOpen returns the teacher's session without a clock-out, nil if none.
func (r *SessionRepository) GetOpen(ctx context.Context, teacherID int64) (*model.StaffSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM staff_sessions WHERE teacher_id = $1 AND clock_out_at IS NULL`
	return scanSession(r.pool.QueryRow(ctx, query, teacherID))
}

func (r *SessionRepository) Close(ctx context.Context, id int64, at time.Time, lat, lng *float64) error {
	query := `
		UPDATE staff_sessions
		SET clock_out_at = $1, out_lat = $2, out_lng = $3
		WHERE id = $4 AND clock_out_at IS NULL
	`
	tag, err := r.pool.Exec(ctx, query, at, lat, lng, id)
	if err != nil {
		return fmt.Errorf("close staff session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("close staff session: session %d not open", id)
	}
	return nil
}

func (r *SessionRepository) ListByTeacher(ctx context.Context, teacherID int64, from, to time.Time) ([]*model.StaffSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM staff_sessions
		WHERE teacher_id = $1 AND clock_in_at >= $2 AND clock_in_at < $3
		ORDER BY clock_in_at DESC
	`
	rows, err := r.pool.Query(ctx, query, teacherID, orDistantPast(from), orDistantFuture(to))
	if err != nil {
		return nil, fmt.Errorf("list staff sessions: %w", err)
	}
	defer rows.Close()

	var out []*model.StaffSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSession(row pgx.Row) (*model.StaffSession, error) {
	var s model.StaffSession
	err := row.Scan(
		&s.ID,
		&s.TeacherID,
		&s.ClockInAt,
		&s.ClockOutAt,
		&s.InLat,
		&s.InLng,
		&s.OutLat,
		&s.OutLng,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan staff session: %w", err)
	}
	return &s, nil
}
