package repository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/accessguide/accessguide-backend/internal/sitemap/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the sitemaps table.
//
//go:embed schema.sql
var Schema string

const (
	// DefaultListLimit applies when the caller passes a non-positive limit.
	DefaultListLimit = 50
	// MaxListLimit is the largest page List returns.
	MaxListLimit = 200
)

// ClampLimit maps a requested page size onto [1, MaxListLimit].
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}

// Store persists generated sitemaps.
type Store interface {
	Save(ctx context.Context, rec *domain.Record) error
	Get(ctx context.Context, id string) (*domain.Record, error)
	List(ctx context.Context, limit int) ([]domain.Record, error)
	SetPublishedURL(ctx context.Context, id, url string) error
}

// SitemapRepository handles PostgreSQL operations for archived sitemaps
type SitemapRepository struct {
	pool *pgxpool.Pool
}

// NewSitemapRepository creates a new SitemapRepository
func NewSitemapRepository(pool *pgxpool.Pool) *SitemapRepository {
	return &SitemapRepository{pool: pool}
}

// Migrate applies Schema.
func (r *SitemapRepository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate sitemaps: %w", err)
	}
	return nil
}

// Save inserts rec, assigning an id and creation time when missing.
func (r *SitemapRepository) Save(ctx context.Context, rec *domain.Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	const q = `
INSERT INTO sitemaps (id, name, url_count, xml, published_url, created_at)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6);
`
	_, err := r.pool.Exec(ctx, q, rec.ID, rec.Name, rec.URLCount, rec.XML, rec.PublishedURL, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save sitemap: %w", err)
	}
	return nil
}

// SetPublishedURL records where an archived sitemap was published.
func (r *SitemapRepository) SetPublishedURL(ctx context.Context, id, url string) error {
	const q = `UPDATE sitemaps SET published_url = $2 WHERE id = $1;`
	tag, err := r.pool.Exec(ctx, q, id, url)
	if err != nil {
		return fmt.Errorf("failed to set published url: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSitemapNotFound
	}
	return nil
}

// Get retrieves a sitemap by id, including its XML.
func (r *SitemapRepository) Get(ctx context.Context, id string) (*domain.Record, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrSitemapNotFound
	}

	const q = `
SELECT id, name, url_count, xml, COALESCE(published_url, ''), created_at
FROM sitemaps
WHERE id = $1;
`
	var rec domain.Record
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&rec.ID, &rec.Name, &rec.URLCount, &rec.XML, &rec.PublishedURL, &rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSitemapNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sitemap: %w", err)
	}
	return &rec, nil
}

// List returns the newest sitemaps without their XML.
func (r *SitemapRepository) List(ctx context.Context, limit int) ([]domain.Record, error) {
	limit = ClampLimit(limit)

	const q = `
SELECT id, name, url_count, COALESCE(published_url, ''), created_at
FROM sitemaps
ORDER BY created_at DESC
LIMIT $1;
`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sitemaps: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Record, 0)
	for rows.Next() {
		var rec domain.Record
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.URLCount, &rec.PublishedURL, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sitemap: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sitemaps: %w", err)
	}
	return out, nil
}
