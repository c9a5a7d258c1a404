package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
)

const guardianColumns = "id, user_id, first_name, last_name, national_id, phone, email, relationship, created_at"

type GuardianRepository struct {
	pool *pgxpool.Pool
}

func NewGuardianRepository(pool *pgxpool.Pool) *GuardianRepository {
	return &GuardianRepository{pool: pool}
}

func (r *GuardianRepository) Create(ctx context.Context, g *model.Guardian) error {
	query := `
		INSERT INTO guardians (user_id, first_name, last_name, national_id, phone, email, relationship)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		g.UserID,
		g.FirstName,
		g.LastName,
		g.NationalID,
		g.Phone,
		g.Email,
		g.Relationship,
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return fmt.Errorf("create guardian: %w", err)
	}
	return nil
}

func (r *GuardianRepository) GetByID(ctx context.Context, id int64) (*model.Guardian, error) {
	query := `SELECT ` + guardianColumns + ` FROM guardians WHERE id = $1`
	return scanGuardian(r.pool.QueryRow(ctx, query, id))
}

func (r *GuardianRepository) GetByUserID(ctx context.Context, userID int64) (*model.Guardian, error) {
	query := `SELECT ` + guardianColumns + ` FROM guardians WHERE user_id = $1`
	return scanGuardian(r.pool.QueryRow(ctx, query, userID))
}

func (r *GuardianRepository) List(ctx context.Context, limit, offset int) ([]*model.Guardian, error) {
	query := `SELECT ` + guardianColumns + ` FROM guardians ORDER BY last_name, first_name LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list guardians: %w", err)
	}
	defer rows.Close()

	var out []*model.Guardian
	for rows.Next() {
		g, err := scanGuardian(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *GuardianRepository) Update(ctx context.Context, g *model.Guardian) error {
	query := `
		UPDATE guardians
		SET first_name = $1, last_name = $2, phone = $3, email = $4, relationship = $5
		WHERE id = $6
	`
	tag, err := r.pool.Exec(ctx, query, g.FirstName, g.LastName, g.Phone, g.Email, g.Relationship, g.ID)
	if err != nil {
		return fmt.Errorf("update guardian: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update guardian: guardian %d not found", g.ID)
	}
	return nil
}

func scanGuardian(row pgx.Row) (*model.Guardian, error) {
	var g model.Guardian
	err := row.Scan(
		&g.ID,
		&g.UserID,
		&g.FirstName,
		&g.LastName,
		&g.NationalID,
		&g.Phone,
		&g.Email,
		&g.Relationship,
		&g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan guardian: %w", err)
	}
	return &g, nil
}
