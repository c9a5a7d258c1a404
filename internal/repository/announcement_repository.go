package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
)

const announcementColumns = "id, author_id, audience, course_id, role, title, body, published_at"

type AnnouncementRepository struct {
	pool *pgxpool.Pool
}

func NewAnnouncementRepository(pool *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{pool: pool}
}

func (r *AnnouncementRepository) Create(ctx context.Context, a *model.Announcement) error {
	query := `
		INSERT INTO announcements (author_id, audience, course_id, role, title, body)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, published_at
	`
	err := r.pool.QueryRow(ctx, query,
		a.AuthorID,
		a.Audience,
		a.CourseID,
		nullableRole(a.Role),
		a.Title,
		a.Body,
	).Scan(&a.ID, &a.PublishedAt)
	if err != nil {
		return fmt.Errorf("create announcement: %w", err)
	}
	return nil
}

// ListVisible returns announcements addressed to everyone, to the viewer's
// role, or to any of the given courses.
func (r *AnnouncementRepository) ListVisible(ctx context.Context, role model.Role, courseIDs []int64, limit int) ([]*model.Announcement, error) {
	query := `
		SELECT ` + announcementColumns + `
		FROM announcements
		WHERE audience = 'all'
		   OR (audience = 'role' AND role = $1)
		   OR (audience = 'course' AND course_id = ANY($2))
		ORDER BY published_at DESC
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, role, courseIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	var out []*model.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete announcement: announcement %d not found", id)
	}
	return nil
}

func (r *AnnouncementRepository) GetByID(ctx context.Context, id int64) (*model.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE id = $1`
	a, err := scanAnnouncement(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return a, nil
}

func scanAnnouncement(row pgx.Row) (*model.Announcement, error) {
	var (
		a    model.Announcement
		role *string
	)
	err := row.Scan(
		&a.ID,
		&a.AuthorID,
		&a.Audience,
		&a.CourseID,
		&role,
		&a.Title,
		&a.Body,
		&a.PublishedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan announcement: %w", err)
	}
	if role != nil {
		a.Role = model.Role(*role)
	}
	return &a, nil
}

func nullableRole(role model.Role) *string {
	if role == "" {
		return nil
	}
	v := string(role)
	return &v
}
