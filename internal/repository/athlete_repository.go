package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
)

const athleteColumns = "id, user_id, first_name, last_name, national_id, birth_date, guardian_id, emergency_contact, has_medical_alert, is_active, created_at"

type AthleteRepository struct {
	pool *pgxpool.Pool
}

func NewAthleteRepository(pool *pgxpool.Pool) *AthleteRepository {
	return &AthleteRepository{pool: pool}
}

func (r *AthleteRepository) Create(ctx context.Context, a *model.Athlete) error {
	query := `
		INSERT INTO athletes (user_id, first_name, last_name, national_id, birth_date, guardian_id, emergency_contact, has_medical_alert, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		a.UserID,
		a.FirstName,
		a.LastName,
		a.NationalID,
		a.BirthDate,
		a.GuardianID,
		a.EmergencyContact,
		a.HasMedicalAlert,
		a.IsActive,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("create athlete: %w", err)
	}
	return nil
}

func (r *AthleteRepository) GetByID(ctx context.Context, id int64) (*model.Athlete, error) {
	query := `SELECT ` + athleteColumns + ` FROM athletes WHERE id = $1`
	return scanAthlete(r.pool.QueryRow(ctx, query, id))
}

// GetByUserID returns the athlete row linked to a user login, nil if none.
func (r *AthleteRepository) GetByUserID(ctx context.Context, userID int64) (*model.Athlete, error) {
	query := `SELECT ` + athleteColumns + ` FROM athletes WHERE user_id = $1`
	return scanAthlete(r.pool.QueryRow(ctx, query, userID))
}

func (r *AthleteRepository) List(ctx context.Context, limit, offset int) ([]*model.Athlete, error) {
	query := `SELECT ` + athleteColumns + ` FROM athletes WHERE is_active ORDER BY last_name, first_name LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list athletes: %w", err)
	}
	return collectAthletes(rows)
}

func (r *AthleteRepository) ListByGuardian(ctx context.Context, guardianID int64) ([]*model.Athlete, error) {
	query := `SELECT ` + athleteColumns + ` FROM athletes WHERE guardian_id = $1 ORDER BY last_name, first_name`
	rows, err := r.pool.Query(ctx, query, guardianID)
	if err != nil {
		return nil, fmt.Errorf("list athletes by guardian: %w", err)
	}
	return collectAthletes(rows)
}

func (r *AthleteRepository) Update(ctx context.Context, a *model.Athlete) error {
	query := `
		UPDATE athletes
		SET first_name = $1, last_name = $2, birth_date = $3, guardian_id = $4,
		    emergency_contact = $5, has_medical_alert = $6
		WHERE id = $7
	`
	tag, err := r.pool.Exec(ctx, query,
		a.FirstName,
		a.LastName,
		a.BirthDate,
		a.GuardianID,
		a.EmergencyContact,
		a.HasMedicalAlert,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("update athlete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update athlete: athlete %d not found", a.ID)
	}
	return nil
}

func (r *AthleteRepository) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE athletes SET is_active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate athlete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deactivate athlete: athlete %d not found", id)
	}
	return nil
}

func scanAthlete(row pgx.Row) (*model.Athlete, error) {
	var a model.Athlete
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.FirstName,
		&a.LastName,
		&a.NationalID,
		&a.BirthDate,
		&a.GuardianID,
		&a.EmergencyContact,
		&a.HasMedicalAlert,
		&a.IsActive,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan athlete: %w", err)
	}
	return &a, nil
}

func collectAthletes(rows pgx.Rows) ([]*model.Athlete, error) {
	defer rows.Close()

	var out []*model.Athlete
	for rows.Next() {
		a, err := scanAthlete(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
