package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authmw "github.com/accessguide/accessguide-backend/internal/auth/middleware"
	"github.com/accessguide/accessguide-backend/internal/sitemap/domain"
	"github.com/accessguide/accessguide-backend/internal/sitemap/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	recs []domain.Record
}

func (m *memStore) Save(_ context.Context, rec *domain.Record) error {
	rec.ID = "sm-1"
	m.recs = append(m.recs, *rec)
	return nil
}

func (m *memStore) Get(_ context.Context, id string) (*domain.Record, error) {
	for _, r := range m.recs {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, domain.ErrSitemapNotFound
}

func (m *memStore) List(_ context.Context, _ int) ([]domain.Record, error) {
	return m.recs, nil
}

func (m *memStore) SetPublishedURL(_ context.Context, id, url string) error {
	for i := range m.recs {
		if m.recs[i].ID == id {
			m.recs[i].PublishedURL = url
			return nil
		}
	}
	return domain.ErrSitemapNotFound
}

const testAPIKey = "secret"

func setupRouter(svc *service.SitemapService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(svc).Register(r.Group("/api/v1"), authmw.APIKeyMiddleware(testAPIKey))
	return r
}

func postRaw(r http.Handler, path string, body []byte, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set(authmw.APIKeyHeader, apiKey)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func post(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	return postRaw(r, path, b, testAPIKey)
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(authmw.APIKeyHeader, testAPIKey)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestGenerate(t *testing.T) {
	r := setupRouter(service.NewSitemapService(nil, nil))

	t.Run("returns XML", func(t *testing.T) {
		rr := post(t, r, "/api/v1/sitemaps/generate", map[string]any{
			"entries": []map[string]any{{"loc": "https://example.com/", "priority": 0.9, "changefreq": "daily"}},
		})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/xml; charset=utf-8", rr.Header().Get("Content-Type"))
		assert.Contains(t, rr.Body.String(), "<priority>0.9</priority>")
	})

	t.Run("reports invalid entries", func(t *testing.T) {
		rr := post(t, r, "/api/v1/sitemaps/generate", map[string]any{
			"urls": "https://example.com/\nnot valid\nmailto:someone@example.com",
		})
		require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

		var body struct {
			Error   string              `json:"error"`
			Entries []domain.EntryError `json:"entries"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		require.Len(t, body.Entries, 2)
		assert.Equal(t, 1, body.Entries[0].Index)
		assert.Equal(t, "mailto:someone@example.com", body.Entries[1].Loc)
	})

	t.Run("no URLs", func(t *testing.T) {
		rr := post(t, r, "/api/v1/sitemaps/generate", map[string]any{"urls": ""})
		require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(t, rr.Body.String(), "no valid URLs found")
	})
}

func TestCreateGetList(t *testing.T) {
	r := setupRouter(service.NewSitemapService(&memStore{}, nil))

	rr := post(t, r, "/api/v1/sitemaps", map[string]any{"name": "docs", "urls": "https://example.com/docs"})
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":"sm-1"`)
	assert.NotContains(t, rr.Body.String(), "urlset", "XML is not embedded in JSON")

	got := get(r, "/api/v1/sitemaps/sm-1")
	require.Equal(t, http.StatusOK, got.Code)
	assert.Contains(t, got.Body.String(), "<loc>https://example.com/docs</loc>")

	missing := get(r, "/api/v1/sitemaps/missing")
	assert.Equal(t, http.StatusNotFound, missing.Code)

	list := get(r, "/api/v1/sitemaps?limit=5")
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), `"name":"docs"`)
}

func TestArchive_RequiresAdmin(t *testing.T) {
	store := &memStore{}
	r := setupRouter(service.NewSitemapService(store, nil))
	body := []byte(`{"name":"sitemap","urls":"https://example.com/","publish":true}`)

	rr := postRaw(r, "/api/v1/sitemaps", body, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = postRaw(r, "/api/v1/sitemaps", body, "wrong")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Empty(t, store.recs)

	for _, path := range []string{"/api/v1/sitemaps", "/api/v1/sitemaps/sm-1"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rr = postRaw(r, "/api/v1/sitemaps/generate", []byte(`{"urls":"https://example.com/"}`), "")
	assert.Equal(t, http.StatusOK, rr.Code, "generation stays public")
}

func TestBodyTooLarge(t *testing.T) {
	r := setupRouter(service.NewSitemapService(&memStore{}, nil))
	big := []byte(`{"urls":"` + strings.Repeat("a", maxJSONBody) + `"}`)

	for _, path := range []string{"/api/v1/sitemaps/generate", "/api/v1/sitemaps"} {
		rr := postRaw(r, path, big, testAPIKey)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code, path)
	}
}

func TestCreate_ArchiveDisabled(t *testing.T) {
	r := setupRouter(service.NewSitemapService(nil, nil))

	rr := post(t, r, "/api/v1/sitemaps", map[string]any{"urls": "https://example.com/"})
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestParse(t *testing.T) {
	r := setupRouter(service.NewSitemapService(nil, nil))

	xml := `<?xml version="1.0"?><urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"><url><loc>https://example.com/</loc><changefreq>weekly</changefreq></url></urlset>`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/sitemaps/parse", strings.NewReader(xml))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Entries []domain.Entry `json:"entries"`
		Count   int            `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, domain.ChangeWeekly, body.Entries[0].ChangeFreq)

	req, _ = http.NewRequest(http.MethodPost, "/api/v1/sitemaps/parse", strings.NewReader("<urlset"))
	bad := httptest.NewRecorder()
	r.ServeHTTP(bad, req)
	assert.Equal(t, http.StatusUnprocessableEntity, bad.Code)
}
