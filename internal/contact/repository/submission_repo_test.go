package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/accessguide/accessguide-backend/internal/contact/domain"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*SubmissionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewSubmissionRepository(db), mock
}

func TestSubmissionRepository_Create(t *testing.T) {
	repo, mock := newMock(t)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO contact_submissions")).
		WithArgs(sqlmock.AnyArg(), "Ada", "ada@example.com", "", "hello", "10.0.0.1", "pending").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	s := &domain.Submission{Name: "Ada", Email: "ada@example.com", Message: "hello", ClientIP: "10.0.0.1"}
	require.NoError(t, repo.Create(context.Background(), s))
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, domain.StatusPending, s.Status)
	assert.Equal(t, created, s.CreatedAt)
}

func TestSubmissionRepository_CreateDuplicate(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO contact_submissions")).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &domain.Submission{ID: "dup", Name: "a", Email: "a@b.c", Message: "m"})
	assert.ErrorIs(t, err, ErrDuplicateSubmission)
}

func TestSubmissionRepository_UpdateStatus(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE contact_submissions")).
		WithArgs("id-1", "forwarded", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateStatus(context.Background(), "id-1", domain.StatusForwarded, ""))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE contact_submissions")).
		WithArgs("missing", "failed", "timeout").
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.UpdateStatus(context.Background(), "missing", domain.StatusFailed, "timeout")
	assert.ErrorIs(t, err, domain.ErrSubmissionNotFound)
}

func TestSubmissionRepository_List(t *testing.T) {
	repo, mock := newMock(t)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	forwarded := created.Add(time.Second)

	cols := []string{"id", "name", "email", "subject", "message", "client_ip", "status", "last_error", "created_at", "forwarded_at"}
	mock.ExpectQuery(regexp.QuoteMeta("FROM contact_submissions")).
		WithArgs("", DefaultListLimit).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("id-2", "Bo", "bo@example.com", "", "hi", "", "failed", "boom", created, nil).
			AddRow("id-1", "Ada", "ada@example.com", "Q", "hello", "10.0.0.1", "forwarded", "", created, forwarded))

	subs, err := repo.List(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, domain.StatusFailed, subs[0].Status)
	assert.Equal(t, "boom", subs[0].LastError)
	assert.Nil(t, subs[0].ForwardedAt)
	require.NotNil(t, subs[1].ForwardedAt)
	assert.Equal(t, forwarded, *subs[1].ForwardedAt)
}

func TestSubmissionRepository_ListCapsLimit(t *testing.T) {
	repo, mock := newMock(t)

	cols := []string{"id", "name", "email", "subject", "message", "client_ip", "status", "last_error", "created_at", "forwarded_at"}
	mock.ExpectQuery(regexp.QuoteMeta("FROM contact_submissions")).
		WithArgs("", MaxListLimit).
		WillReturnRows(sqlmock.NewRows(cols))

	subs, err := repo.List(context.Background(), "", 1_000_000)
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestSubmissionRepository_ListError(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM contact_submissions")).
		WithArgs("pending", 5).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.List(context.Background(), domain.StatusPending, 5)
	assert.Error(t, err)
}

func TestSubmissionRepository_PurgeOlderThan(t *testing.T) {
	repo, mock := newMock(t)
	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM contact_submissions WHERE created_at < $1")).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 7))

	n, err := repo.PurgeOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.EqualValues(t, 7, n)
}
