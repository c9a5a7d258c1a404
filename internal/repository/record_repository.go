package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
)

const recordColumns = "id, athlete_id, professional_id, specialty, appointment_id, title, body, created_at"

type RecordRepository struct {
	pool *pgxpool.Pool
}

func NewRecordRepository(pool *pgxpool.Pool) *RecordRepository {
	return &RecordRepository{pool: pool}
}

func (r *RecordRepository) Create(ctx context.Context, rec *model.ClinicalRecord) error {
	query := `
		INSERT INTO clinical_records (athlete_id, professional_id, specialty, appointment_id, title, body)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		rec.AthleteID,
		rec.ProfessionalID,
		rec.Specialty,
		rec.AppointmentID,
		rec.Title,
		rec.Body,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("create clinical record: %w", err)
	}
	return nil
}

func (r *RecordRepository) GetByID(ctx context.Context, id int64) (*model.ClinicalRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM clinical_records WHERE id = $1`
	return scanRecord(r.pool.QueryRow(ctx, query, id))
}

func (r *RecordRepository) ListByAthlete(ctx context.Context, athleteID int64) ([]*model.ClinicalRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM clinical_records WHERE athlete_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, athleteID)
	if err != nil {
		return nil, fmt.Errorf("list records by athlete: %w", err)
	}
	return collectRecords(rows)
}

func (r *RecordRepository) ListByProfessional(ctx context.Context, professionalID int64) ([]*model.ClinicalRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM clinical_records WHERE professional_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, professionalID)
	if err != nil {
		return nil, fmt.Errorf("list records by professional: %w", err)
	}
	return collectRecords(rows)
}

func scanRecord(row pgx.Row) (*model.ClinicalRecord, error) {
	var rec model.ClinicalRecord
	err := row.Scan(
		&rec.ID,
		&rec.AthleteID,
		&rec.ProfessionalID,
		&rec.Specialty,
		&rec.AppointmentID,
		&rec.Title,
		&rec.Body,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan clinical record: %w", err)
	}
	return &rec, nil
}

func collectRecords(rows pgx.Rows) ([]*model.ClinicalRecord, error) {
	defer rows.Close()

	var out []*model.ClinicalRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
