package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/accessguide/accessguide-backend/internal/apperr"
	"github.com/accessguide/accessguide-backend/internal/logging"
	"github.com/accessguide/accessguide-backend/internal/sitemap/domain"
	"github.com/accessguide/accessguide-backend/internal/sitemap/publisher"
	"github.com/accessguide/accessguide-backend/internal/sitemap/repository"
)

// ErrArchiveDisabled is returned by archive operations when no store is configured.
var ErrArchiveDisabled = errors.New("sitemap archive is not configured")

// ErrPublishDisabled is returned when publishing is requested without a publisher.
var ErrPublishDisabled = errors.New("sitemap publishing is not configured")

// Input is either explicit entries or a newline separated URL list.
type Input struct {
	Name     string          `json:"name"`
	Entries  []domain.Entry  `json:"entries"`
	URLs     string          `json:"urls"`
	Defaults domain.Defaults `json:"defaults"`
	Publish  bool            `json:"publish"`
}

// Resolve returns the entries described by in with defaults applied.
func (in Input) Resolve() []domain.Entry {
	out := make([]domain.Entry, 0, len(in.Entries))
	for _, e := range in.Entries {
		out = append(out, in.Defaults.Apply(e))
	}
	if strings.TrimSpace(in.URLs) != "" {
		out = append(out, domain.ParseURLList(in.URLs, in.Defaults)...)
	}
	return out
}

// SitemapService handles sitemap generation and archiving
type SitemapService struct {
	store     repository.Store
	publisher publisher.Publisher
	now       func() time.Time
}

// NewSitemapService creates a new SitemapService. store and pub may be nil.
func NewSitemapService(store repository.Store, pub publisher.Publisher) *SitemapService {
	return &SitemapService{
		store:     store,
		publisher: pub,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Generate builds the sitemap XML for in.
func (s *SitemapService) Generate(in Input) ([]byte, int, error) {
	entries := in.Resolve()
	out, err := domain.Generate(entries)
	if err != nil {
		return nil, 0, classify("sitemap.Generate", err)
	}
	return out, len(entries), nil
}

// Create generates and archives a sitemap, then publishes it when asked.
func (s *SitemapService) Create(ctx context.Context, in Input) (*domain.Record, error) {
	logger := logging.NewLogger(ctx)

	if s.store == nil {
		return nil, ErrArchiveDisabled
	}
	if in.Publish && s.publisher == nil {
		return nil, apperr.E("sitemap.Create", apperr.KindValidation, ErrPublishDisabled).WithField("publish")
	}

	xml, count, err := s.Generate(in)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = "sitemap"
	}

	rec := &domain.Record{
		Name:      name,
		URLCount:  count,
		XML:       xml,
		CreatedAt: s.now(),
	}

	if err := s.store.Save(ctx, rec); err != nil {
		logger.LogError("save_sitemap", err)
		return nil, err
	}

	if !in.Publish {
		return rec, nil
	}

	u, err := s.publisher.Publish(ctx, name, xml)
	if err != nil {
		logger.LogError("publish_sitemap", err)
		return nil, apperr.E("sitemap.Create", apperr.KindUpstream,
			fmt.Errorf("publish sitemap (archived as %s): %w", rec.ID, err))
	}
	rec.PublishedURL = u
	logger.LogInfof("publish_sitemap", "published %s with %d urls to %s", name, count, u)

	// The object is already live, so a failed update only loses the link.
	if err := s.store.SetPublishedURL(ctx, rec.ID, u); err != nil {
		logger.LogWarnf("publish_sitemap", "record published url for %s: %v", rec.ID, err)
	}
	return rec, nil
}

// Get returns an archived sitemap.
func (s *SitemapService) Get(ctx context.Context, id string) (*domain.Record, error) {
	if s.store == nil {
		return nil, ErrArchiveDisabled
	}
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, classify("sitemap.Get", err)
	}
	return rec, nil
}

// List returns the newest archived sitemaps.
func (s *SitemapService) List(ctx context.Context, limit int) ([]domain.Record, error) {
	if s.store == nil {
		return nil, ErrArchiveDisabled
	}
	return s.store.List(ctx, repository.ClampLimit(limit))
}

// Parse reads sitemap XML back into entries.
func (s *SitemapService) Parse(data []byte) ([]domain.Entry, error) {
	entries, err := domain.Parse(data)
	if err != nil {
		return nil, classify("sitemap.Parse", err)
	}
	return entries, nil
}

func classify(op string, err error) error {
	var be *domain.BatchError
	switch {
	case errors.As(err, &be),
		errors.Is(err, domain.ErrNoURLs),
		errors.Is(err, domain.ErrTooManyURLs),
		errors.Is(err, domain.ErrMalformedXML):
		return apperr.E(op, apperr.KindValidation, err)
	case errors.Is(err, domain.ErrSitemapNotFound):
		return apperr.E(op, apperr.KindNotFound, err)
	}
	return err
}
