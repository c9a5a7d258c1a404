package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
)

const courseColumns = "id, name, discipline, teacher_id, venue_name, venue_lat, venue_lng, check_in_radius_m, schedule, capacity, is_active, created_at"

type CourseRepository struct {
	pool *pgxpool.Pool
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	query := `
		INSERT INTO courses (name, discipline, teacher_id, venue_name, venue_lat, venue_lng, check_in_radius_m, schedule, capacity, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		c.Name,
		c.Discipline,
		c.TeacherID,
		c.VenueName,
		c.VenueLat,
		c.VenueLng,
		c.CheckInRadius,
		c.Schedule,
		c.Capacity,
		c.IsActive,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	return scanCourse(r.pool.QueryRow(ctx, query, id))
}

func (r *CourseRepository) List(ctx context.Context) ([]*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE is_active ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return collectCourses(rows)
}

func (r *CourseRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE teacher_id = $1 AND is_active ORDER BY name`
	rows, err := r.pool.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list courses by teacher: %w", err)
	}
	return collectCourses(rows)
}

func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	query := `
		UPDATE courses
		SET name = $1, discipline = $2, teacher_id = $3, venue_name = $4, venue_lat = $5,
		    venue_lng = $6, check_in_radius_m = $7, schedule = $8, capacity = $9
		WHERE id = $10
	`
	tag, err := r.pool.Exec(ctx, query,
		c.Name, c.Discipline, c.TeacherID, c.VenueName, c.VenueLat,
		c.VenueLng, c.CheckInRadius, c.Schedule, c.Capacity, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update course: course %d not found", c.ID)
	}
	return nil
}

func (r *CourseRepository) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE courses SET is_active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deactivate course: course %d not found", id)
	}
	return nil
}

// Enroll inserts the enrollment if capacity allows, atomically against
// concurrent enrollments for the same course.
func (r *CourseRepository) Enroll(ctx context.Context, courseID, athleteID int64) (*model.Enrollment, error) {
	query := `
		INSERT INTO enrollments (course_id, athlete_id)
		SELECT $1, $2
		WHERE (SELECT count(*) FROM enrollments WHERE course_id = $1)
		      < (SELECT capacity FROM courses WHERE id = $1)
		RETURNING id, enrolled_at
	`
	e := &model.Enrollment{CourseID: courseID, AthleteID: athleteID}
	err := r.pool.QueryRow(ctx, query, courseID, athleteID).Scan(&e.ID, &e.EnrolledAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // capacity reached
		}
		return nil, fmt.Errorf("enroll athlete: %w", err)
	}
	return e, nil
}

func (r *CourseRepository) Withdraw(ctx context.Context, courseID, athleteID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM enrollments WHERE course_id = $1 AND athlete_id = $2`, courseID, athleteID)
	if err != nil {
		return fmt.Errorf("withdraw athlete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("withdraw athlete: enrollment not found")
	}
	return nil
}

func (r *CourseRepository) Roster(ctx context.Context, courseID int64) ([]*model.Enrollment, error) {
	query := `
		SELECT e.id, e.course_id, e.athlete_id, e.enrolled_at, ` + prefixedAthleteColumns("a") + `
		FROM enrollments e
		JOIN athletes a ON a.id = e.athlete_id
		WHERE e.course_id = $1
		ORDER BY a.last_name, a.first_name
	`
	rows, err := r.pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("course roster: %w", err)
	}
	defer rows.Close()

	var out []*model.Enrollment
	for rows.Next() {
		var (
			e model.Enrollment
			a model.Athlete
		)
		err := rows.Scan(
			&e.ID, &e.CourseID, &e.AthleteID, &e.EnrolledAt,
			&a.ID, &a.UserID, &a.FirstName, &a.LastName, &a.NationalID, &a.BirthDate,
			&a.GuardianID, &a.EmergencyContact, &a.HasMedicalAlert, &a.IsActive, &a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan roster row: %w", err)
		}
		e.Athlete = &a
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (r *CourseRepository) IsEnrolled(ctx context.Context, courseID, athleteID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM enrollments WHERE course_id = $1 AND athlete_id = $2)`,
		courseID, athleteID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return exists, nil
}

func (r *CourseRepository) CourseIDsByAthlete(ctx context.Context, athleteID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT course_id FROM enrollments WHERE athlete_id = $1`, athleteID)
	if err != nil {
		return nil, fmt.Errorf("list courses by athlete: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan course id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *CourseRepository) EnrolledCount(ctx context.Context, courseID int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM enrollments WHERE course_id = $1`, courseID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count enrollments: %w", err)
	}
	return n, nil
}

func scanCourse(row pgx.Row) (*model.Course, error) {
	var c model.Course
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Discipline,
		&c.TeacherID,
		&c.VenueName,
		&c.VenueLat,
		&c.VenueLng,
		&c.CheckInRadius,
		&c.Schedule,
		&c.Capacity,
		&c.IsActive,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan course: %w", err)
	}
	return &c, nil
}

func collectCourses(rows pgx.Rows) ([]*model.Course, error) {
	defer rows.Close()

	var out []*model.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func prefixedAthleteColumns(alias string) string {
	return alias + ".id, " + alias + ".user_id, " + alias + ".first_name, " + alias + ".last_name, " +
		alias + ".national_id, " + alias + ".birth_date, " + alias + ".guardian_id, " +
		alias + ".emergency_contact, " + alias + ".has_medical_alert, " + alias + ".is_active, " + alias + ".created_at"
}
