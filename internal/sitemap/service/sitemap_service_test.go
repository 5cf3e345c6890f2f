package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/accessguide/accessguide-backend/internal/apperr"
	"github.com/accessguide/accessguide-backend/internal/sitemap/domain"
	"github.com/accessguide/accessguide-backend/internal/sitemap/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu        sync.Mutex
	recs      map[string]domain.Record
	err       error
	lastLimit int
}

func newMemStore() *memStore { return &memStore{recs: map[string]domain.Record{}} }

func (m *memStore) Save(_ context.Context, rec *domain.Record) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.ID == "" {
		rec.ID = "id-" + rec.Name
	}
	m.recs[rec.ID] = *rec
	return nil
}

func (m *memStore) Get(_ context.Context, id string) (*domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[id]
	if !ok {
		return nil, domain.ErrSitemapNotFound
	}
	return &rec, nil
}

func (m *memStore) List(_ context.Context, limit int) ([]domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLimit = limit
	out := make([]domain.Record, 0, len(m.recs))
	for _, r := range m.recs {
		out = append(out, r)
	}
	return out, nil
}

func (m *memStore) SetPublishedURL(_ context.Context, id, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[id]
	if !ok {
		return domain.ErrSitemapNotFound
	}
	rec.PublishedURL = url
	m.recs[id] = rec
	return nil
}

func (m *memStore) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.recs)
}

type fakePublisher struct {
	name  string
	err   error
	store *memStore
	// archived is the store size seen at publish time.
	archived int
}

func (f *fakePublisher) Publish(_ context.Context, name string, _ []byte) (string, error) {
	if f.store != nil {
		f.archived = f.store.len()
	}
	if f.err != nil {
		return "", f.err
	}
	f.name = name
	return "https://cdn.example.com/" + name + ".xml", nil
}

func TestInput_Resolve(t *testing.T) {
	p := 0.7
	in := Input{
		Entries:  []domain.Entry{{Loc: "https://example.com/"}},
		URLs:     "https://example.com/a\nhttps://example.com/b\n",
		Defaults: domain.Defaults{ChangeFreq: domain.ChangeMonthly, Priority: &p},
	}

	got := in.Resolve()
	require.Len(t, got, 3)
	for _, e := range got {
		assert.Equal(t, domain.ChangeMonthly, e.ChangeFreq)
		assert.Equal(t, 0.7, *e.Priority)
	}
}

func TestSitemapService_Generate(t *testing.T) {
	svc := NewSitemapService(nil, nil)

	t.Run("valid input", func(t *testing.T) {
		xml, n, err := svc.Generate(Input{URLs: "https://example.com/\nhttps://example.com/x"})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Contains(t, string(xml), "<loc>https://example.com/x</loc>")
	})

	t.Run("invalid entries are a validation error", func(t *testing.T) {
		_, _, err := svc.Generate(Input{URLs: "https://example.com/\nnot-a-url"})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))

		var be *domain.BatchError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, 1, be.Entries[0].Index)
	})

	t.Run("empty input", func(t *testing.T) {
		_, _, err := svc.Generate(Input{URLs: "\n  \n"})
		assert.ErrorIs(t, err, domain.ErrNoURLs)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})
}

func TestSitemapService_Create(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("archives without publishing", func(t *testing.T) {
		store := newMemStore()
		svc := NewSitemapService(store, nil)
		svc.now = func() time.Time { return fixed }

		rec, err := svc.Create(context.Background(), Input{Name: " main ", URLs: "https://example.com/"})
		require.NoError(t, err)
		assert.Equal(t, "main", rec.Name)
		assert.Equal(t, 1, rec.URLCount)
		assert.Equal(t, fixed, rec.CreatedAt)
		assert.Empty(t, rec.PublishedURL)

		got, err := svc.Get(context.Background(), rec.ID)
		require.NoError(t, err)
		assert.Equal(t, rec.XML, got.XML)
	})

	t.Run("archives before publishing", func(t *testing.T) {
		store := newMemStore()
		pub := &fakePublisher{store: store}
		svc := NewSitemapService(store, pub)

		rec, err := svc.Create(context.Background(), Input{URLs: "https://example.com/", Publish: true})
		require.NoError(t, err)
		assert.Equal(t, "sitemap", pub.name)
		assert.Equal(t, 1, pub.archived)
		assert.Equal(t, "https://cdn.example.com/sitemap.xml", rec.PublishedURL)

		got, err := svc.Get(context.Background(), rec.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/sitemap.xml", got.PublishedURL)
	})

	t.Run("store failure never publishes", func(t *testing.T) {
		store := newMemStore()
		store.err = errors.New("db down")
		pub := &fakePublisher{}
		svc := NewSitemapService(store, pub)

		_, err := svc.Create(context.Background(), Input{URLs: "https://example.com/", Publish: true})
		assert.EqualError(t, err, "db down")
		assert.Empty(t, pub.name)
	})

	t.Run("publish requested without publisher", func(t *testing.T) {
		svc := NewSitemapService(newMemStore(), nil)
		_, err := svc.Create(context.Background(), Input{URLs: "https://example.com/", Publish: true})
		assert.ErrorIs(t, err, ErrPublishDisabled)
		assert.Equal(t, "publish", apperr.FieldOf(err))
	})

	t.Run("publish failure is an upstream error and keeps the archive", func(t *testing.T) {
		store := newMemStore()
		svc := NewSitemapService(store, &fakePublisher{err: errors.New("denied")})
		_, err := svc.Create(context.Background(), Input{URLs: "https://example.com/", Publish: true})
		assert.True(t, apperr.IsKind(err, apperr.KindUpstream))

		recs, err := svc.List(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Empty(t, recs[0].PublishedURL)
	})

	t.Run("no store", func(t *testing.T) {
		svc := NewSitemapService(nil, nil)
		_, err := svc.Create(context.Background(), Input{URLs: "https://example.com/"})
		assert.ErrorIs(t, err, ErrArchiveDisabled)
	})

	t.Run("store failure", func(t *testing.T) {
		store := newMemStore()
		store.err = errors.New("db down")
		svc := NewSitemapService(store, nil)
		_, err := svc.Create(context.Background(), Input{URLs: "https://example.com/"})
		assert.EqualError(t, err, "db down")
	})
}

func TestSitemapService_ListClampsLimit(t *testing.T) {
	store := newMemStore()
	svc := NewSitemapService(store, nil)

	for requested, want := range map[int]int{
		0:       repository.DefaultListLimit,
		-3:      repository.DefaultListLimit,
		10:      10,
		1000000: repository.MaxListLimit,
	} {
		_, err := svc.List(context.Background(), requested)
		require.NoError(t, err)
		assert.Equal(t, want, store.lastLimit, requested)
	}
}

func TestSitemapService_GetNotFound(t *testing.T) {
	svc := NewSitemapService(newMemStore(), nil)
	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrSitemapNotFound)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestSitemapService_Parse(t *testing.T) {
	svc := NewSitemapService(nil, nil)

	_, err := svc.Parse([]byte("<urlset"))
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	entries, err := svc.Parse([]byte(`<urlset><url><loc>https://example.com/</loc></url></urlset>`))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
