package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/accessguide/accessguide-backend/internal/contact/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Schema creates the contact_submissions table.
//
//go:embed schema.sql
var Schema string

const (
	// DefaultListLimit applies when List is called without a limit.
	DefaultListLimit = 100
	// MaxListLimit bounds a single List call.
	MaxListLimit = 500
)

// ErrDuplicateSubmission is returned when an ID is already taken.
var ErrDuplicateSubmission = errors.New("contact submission already exists")

// SubmissionRepository provides persistence operations for contact submissions
type SubmissionRepository struct {
	db *sql.DB
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Migrate applies Schema.
func (r *SubmissionRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("migrate contact_submissions: %w", err)
	}
	return nil
}

// Create inserts s as pending, filling in ID and CreatedAt.
func (r *SubmissionRepository) Create(ctx context.Context, s *domain.Submission) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	s.Status = domain.StatusPending

	const q = `
INSERT INTO contact_submissions (id, name, email, subject, message, client_ip, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING created_at;
`
	err := r.db.QueryRowContext(ctx, q, s.ID, s.Name, s.Email, s.Subject, s.Message, s.ClientIP, string(s.Status)).
		Scan(&s.CreatedAt)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateSubmission
		}
		return fmt.Errorf("insert contact submission: %w", err)
	}
	return nil
}

// UpdateStatus records the outcome of forwarding a submission.
func (r *SubmissionRepository) UpdateStatus(ctx context.Context, id string, status domain.Status, lastErr string) error {
	const q = `
UPDATE contact_submissions
SET status = $2,
    last_error = $3,
    forwarded_at = CASE WHEN $2 = 'forwarded' THEN now() ELSE forwarded_at END
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, id, string(status), lastErr)
	if err != nil {
		return fmt.Errorf("update contact submission: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}

// List returns submissions newest first, optionally filtered by status.
func (r *SubmissionRepository) List(ctx context.Context, status domain.Status, limit int) ([]domain.Submission, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	const q = `
SELECT id, name, email, subject, message, client_ip, status, last_error, created_at, forwarded_at
FROM contact_submissions
WHERE ($1 = '' OR status = $1)
ORDER BY created_at DESC
LIMIT $2;
`
	rows, err := r.db.QueryContext(ctx, q, string(status), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Submission, 0, 16)
	for rows.Next() {
		var (
			s         domain.Submission
			st        string
			forwarded sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Subject, &s.Message, &s.ClientIP,
			&st, &s.LastError, &s.CreatedAt, &forwarded); err != nil {
			return nil, err
		}
		s.Status = domain.Status(st)
		if forwarded.Valid {
			t := forwarded.Time
			s.ForwardedAt = &t
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// PurgeOlderThan deletes submissions created before cutoff and returns how
// many were removed.
func (r *SubmissionRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	const q = `DELETE FROM contact_submissions WHERE created_at < $1;`

	res, err := r.db.ExecContext(ctx, q, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge contact submissions: %w", err)
	}
	return res.RowsAffected()
}
