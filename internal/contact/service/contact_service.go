package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/accessguide/accessguide-backend/internal/apperr"
	"github.com/accessguide/accessguide-backend/internal/contact/domain"
	"github.com/accessguide/accessguide-backend/internal/contact/forwarder"
	"github.com/accessguide/accessguide-backend/internal/logging"
	"github.com/google/uuid"
)

// Store persists contact submissions.
type Store interface {
	Create(ctx context.Context, s *domain.Submission) error
	UpdateStatus(ctx context.Context, id string, status domain.Status, lastErr string) error
	List(ctx context.Context, status domain.Status, limit int) ([]domain.Submission, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ContactService validates, stores and forwards contact submissions.
type ContactService struct {
	store     Store
	forwarder forwarder.Forwarder
	now       func() time.Time
}

// NewContactService creates a new ContactService
func NewContactService(store Store, fwd forwarder.Forwarder) *ContactService {
	return &ContactService{
		store:     store,
		forwarder: fwd,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Submit handles one posted form. Honeypot hits get a normal looking receipt
// and are neither stored nor forwarded.
func (s *ContactService) Submit(ctx context.Context, form domain.Form, clientIP string) (*domain.Receipt, error) {
	logger := logging.NewLogger(ctx)

	form.Normalize()
	if form.IsSpam() {
		logger.LogWarnf("submit_contact", "honeypot filled, dropping submission from %s", clientIP)
		return &domain.Receipt{ID: uuid.New().String(), Status: domain.StatusForwarded}, nil
	}
	if err := form.Validate(); err != nil {
		return nil, apperr.E("contact.Submit", apperr.KindValidation, err)
	}

	sub := &domain.Submission{
		Name:     form.Name,
		Email:    form.Email,
		Subject:  form.Subject,
		Message:  form.Message,
		ClientIP: clientIP,
	}
	if err := s.store.Create(ctx, sub); err != nil {
		logger.LogError("save_contact", err)
		return nil, err
	}

	if err := s.forwarder.Forward(ctx, sub); err != nil {
		logger.LogErrorf("forward_contact", "submission %s: %v", sub.ID, err)
		if uerr := s.store.UpdateStatus(context.WithoutCancel(ctx), sub.ID, domain.StatusFailed, err.Error()); uerr != nil {
			logger.LogError("update_contact_status", uerr)
		}
		return nil, apperr.E("contact.Submit", apperr.KindUpstream, domain.ErrDeliveryFailed)
	}

	if err := s.store.UpdateStatus(ctx, sub.ID, domain.StatusForwarded, ""); err != nil {
		// Delivered already; the sender should not resend.
		logger.LogError("update_contact_status", err)
	}
	logger.LogInfof("forward_contact", "forwarded submission %s", sub.ID)
	return &domain.Receipt{ID: sub.ID, Status: domain.StatusForwarded}, nil
}

// List returns stored submissions for the admin view.
func (s *ContactService) List(ctx context.Context, status domain.Status, limit int) ([]domain.Submission, error) {
	switch status {
	case "", domain.StatusPending, domain.StatusForwarded, domain.StatusFailed:
	default:
		return nil, apperr.E("contact.List", apperr.KindValidation,
			fmt.Errorf("unknown status %q", status)).WithField("status")
	}
	return s.store.List(ctx, status, limit)
}

// Purge deletes submissions older than retention.
func (s *ContactService) Purge(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, errors.New("retention must be positive")
	}
	cutoff := s.now().Add(-retention)
	n, err := s.store.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	logging.NewLogger(ctx).LogInfof("purge_contact", "removed %d submissions created before %s", n, cutoff.Format(time.RFC3339))
	return n, nil
}
