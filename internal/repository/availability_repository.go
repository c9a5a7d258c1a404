package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
)

const ruleColumns = "id, group_id, owner_id, weekday, window_start_min, window_end_min, duration_minutes, step_minutes, location, is_active, created_at, updated_at"

type AvailabilityRepository struct {
	pool *pgxpool.Pool
}

func NewAvailabilityRepository(pool *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{pool: pool}
}

func (r *AvailabilityRepository) Create(ctx context.Context, rule *model.AvailabilityRule) error {
	query := `
		INSERT INTO availability_rules (group_id, owner_id, weekday, window_start_min, window_end_min, duration_minutes, step_minutes, location, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		rule.GroupID,
		rule.OwnerID,
		rule.Weekday,
		rule.WindowStartMin,
		rule.WindowEndMin,
		rule.DurationMinutes,
		rule.StepMinutes,
		rule.Location,
		rule.IsActive,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create availability rule: %w", err)
	}
	return nil
}

func (r *AvailabilityRepository) GetByID(ctx context.Context, id int64) (*model.AvailabilityRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM availability_rules WHERE id = $1`
	return scanRule(r.pool.QueryRow(ctx, query, id))
}

func (r *AvailabilityRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*model.AvailabilityRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM availability_rules WHERE owner_id = $1 ORDER BY weekday, window_start_min`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list rules by owner: %w", err)
	}
	return collectRules(rows)
}

func (r *AvailabilityRepository) ListActive(ctx context.Context) ([]*model.AvailabilityRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM availability_rules WHERE is_active ORDER BY owner_id, weekday`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active rules: %w", err)
	}
	return collectRules(rows)
}

func (r *AvailabilityRepository) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE availability_rules SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deactivate rule: rule %d not found", id)
	}
	return nil
}

func (r *AvailabilityRepository) DeactivateGroup(ctx context.Context, groupID string) error {
	if _, err := r.pool.Exec(ctx,
		`UPDATE availability_rules SET is_active = false, updated_at = now() WHERE group_id = $1`, groupID); err != nil {
		return fmt.Errorf("deactivate rule group: %w", err)
	}
	return nil
}

func scanRule(row pgx.Row) (*model.AvailabilityRule, error) {
	var rule model.AvailabilityRule
	err := row.Scan(
		&rule.ID,
		&rule.GroupID,
		&rule.OwnerID,
		&rule.Weekday,
		&rule.WindowStartMin,
		&rule.WindowEndMin,
		&rule.DurationMinutes,
		&rule.StepMinutes,
		&rule.Location,
		&rule.IsActive,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan availability rule: %w", err)
	}
	return &rule, nil
}

func collectRules(rows pgx.Rows) ([]*model.AvailabilityRule, error) {
	defer rows.Close()

	var out []*model.AvailabilityRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rule)
	}
	return out, rows.Err()
}
